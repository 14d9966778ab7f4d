package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"tablebook/internal/models"
)

type EmailService interface {
	SendReservationConfirmation(email, name string, res *models.Reservation) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendReservationConfirmation(email, name string, res *models.Reservation) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Ваша бронь принята")

	body := fmt.Sprintf(`
		<h2>Здравствуйте, %s!</h2>
		<p>Мы приняли вашу бронь №%d на %s.</p>
		<p>Статус: %s. Менеджер подтвердит бронь в ближайшее время.</p>
		<p>Команда TableBook</p>
	`, name, res.ID, res.DateTime.Format("02.01.2006 15:04"), res.Status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send reservation confirmation: %w", err)
	}
	return nil
}
