package services

import (
	"errors"
	"log"
	"time"

	"tablebook/internal/models"
	"tablebook/internal/repositories"
)

var (
	ErrReservationConflict = errors.New("table already reserved around this time")
	ErrPastDateTime        = errors.New("date_time must be in the future")
	ErrReservationMissing  = errors.New("reservation not found")
)

type FoodLine struct {
	FoodID   int64
	Quantity int
}

type CreateReservationInput struct {
	UserID     int64
	TableID    int64
	DateTime   time.Time
	PriceCents int64
	Foods      []FoodLine
}

type ReservationService interface {
	Create(in CreateReservationInput) (*models.Reservation, error)
	GetByID(id int64) (*models.Reservation, error)
	List(filter repositories.ReservationFilter) ([]*models.Reservation, error)
	UpdateStatus(id int64, status string) (*models.Reservation, error)
	Delete(id int64) error
	CheckAvailability(tableID int64, at time.Time, excludeID int64) (bool, *models.Reservation, error)
	ExpireStale() error
}

type reservationService struct {
	reservations repositories.ReservationRepository
	tables       repositories.TableRepository
	foods        repositories.FoodRepository
	users        repositories.UserRepository
	email        EmailService       // может быть nil
	telegram     *TelegramNotifier  // может быть nil
}

func NewReservationService(
	reservations repositories.ReservationRepository,
	tables repositories.TableRepository,
	foods repositories.FoodRepository,
	users repositories.UserRepository,
	email EmailService,
	telegram *TelegramNotifier,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		tables:       tables,
		foods:        foods,
		users:        users,
		email:        email,
		telegram:     telegram,
	}
}

func (s *reservationService) Create(in CreateReservationInput) (*models.Reservation, error) {
	if !in.DateTime.After(time.Now()) {
		return nil, ErrPastDateTime
	}

	table, err := s.tables.GetByID(in.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}

	foods, foodsTotal, err := s.resolveFoods(in.Foods)
	if err != nil {
		return nil, err
	}

	// цена не меньше суммы заказанных блюд
	price := in.PriceCents
	if foodsTotal > price {
		price = foodsTotal
	}

	conflict, err := s.reservations.FindConflict(in.TableID, in.DateTime, 0)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrReservationConflict
	}

	res := &models.Reservation{
		UserID:     in.UserID,
		TableID:    in.TableID,
		DateTime:   in.DateTime,
		Status:     models.ReservationPending,
		PriceCents: price,
		Foods:      foods,
	}
	if err := s.reservations.Create(res); err != nil {
		return nil, err
	}

	s.notify(res)
	return res, nil
}

func (s *reservationService) resolveFoods(lines []FoodLine) ([]models.ReservationFood, int64, error) {
	if len(lines) == 0 {
		return nil, 0, nil
	}
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.FoodID)
	}
	found, err := s.foods.GetByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*models.Food, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}

	var out []models.ReservationFood
	var total int64
	for _, l := range lines {
		f, ok := byID[l.FoodID]
		if !ok {
			return nil, 0, ErrFoodNotFound
		}
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		out = append(out, models.ReservationFood{
			FoodID:     f.ID,
			Name:       f.Name,
			PriceCents: f.PriceCents,
			Quantity:   qty,
		})
		total += f.PriceCents * int64(qty)
	}
	return out, total, nil
}

// notify — подтверждение на почту и алерт менеджерам; ошибки не
// роняют запрос, только пишутся в лог.
func (s *reservationService) notify(res *models.Reservation) {
	user, err := s.users.GetByID(res.UserID)
	if err != nil || user == nil {
		log.Printf("[reservations][notify] user lookup failed: id=%d err=%v", res.UserID, err)
		return
	}
	if s.email != nil {
		if err := s.email.SendReservationConfirmation(user.Email, user.Name, res); err != nil {
			log.Printf("[reservations][notify] email failed: reservation=%d err=%v", res.ID, err)
		}
	}
	if err := s.telegram.NotifyNewReservation(res, user.Name); err != nil {
		log.Printf("[reservations][notify] telegram failed: reservation=%d err=%v", res.ID, err)
	}
}

func (s *reservationService) GetByID(id int64) (*models.Reservation, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationMissing
	}
	return res, nil
}

func (s *reservationService) List(filter repositories.ReservationFilter) ([]*models.Reservation, error) {
	return s.reservations.List(filter)
}

func (s *reservationService) UpdateStatus(id int64, status string) (*models.Reservation, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationMissing
	}
	if err := s.reservations.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	res.Status = status
	return res, nil
}

func (s *reservationService) Delete(id int64) error {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		return err
	}
	if res == nil {
		return ErrReservationMissing
	}
	return s.reservations.Delete(id)
}

func (s *reservationService) CheckAvailability(tableID int64, at time.Time, excludeID int64) (bool, *models.Reservation, error) {
	existing, err := s.reservations.FindConflict(tableID, at, excludeID)
	if err != nil {
		return false, nil, err
	}
	return existing == nil, existing, nil
}

// ExpireStale — ночная уборка: просроченные pending-брони помечаем expired.
func (s *reservationService) ExpireStale() error {
	n, err := s.reservations.ExpirePending(time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("[reservations][expire] marked %d stale reservations", n)
	}
	return nil
}
