package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tablebook/internal/models"
)

// TelegramNotifier шлёт алерты о новых бронях в чат менеджеров.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier возвращает nil, если токен не задан — nil-ресивер
// безопасен, уведомления просто выключены.
func NewTelegramNotifier(botToken string, chatID int64) *TelegramNotifier {
	if botToken == "" || chatID == 0 {
		log.Printf("[tg] disabled: no token or chat id")
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] init failed: %v", err)
		return nil
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (t *TelegramNotifier) NotifyNewReservation(res *models.Reservation, userName string) error {
	if t == nil {
		return nil
	}
	text := fmt.Sprintf(
		"Новая бронь №%d\nГость: %s\nСтол: %d\nВремя: %s\nСумма: %.2f",
		res.ID, userName, res.TableID,
		res.DateTime.Format("02.01.2006 15:04"),
		float64(res.PriceCents)/100,
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
