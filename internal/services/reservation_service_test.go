package services

import (
	"errors"
	"testing"
	"time"

	"tablebook/internal/models"
	"tablebook/internal/repositories"
)

type fakeReservationRepo struct {
	nextID       int64
	reservations map[int64]*models.Reservation
	conflict     *models.Reservation
	expired      int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{nextID: 1, reservations: map[int64]*models.Reservation{}}
}

func (r *fakeReservationRepo) Create(res *models.Reservation) error {
	res.ID = r.nextID
	r.nextID++
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(id int64) (*models.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) Exists(id int64) (bool, error) {
	_, ok := r.reservations[id]
	return ok, nil
}

func (r *fakeReservationRepo) List(filter repositories.ReservationFilter) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, res := range r.reservations {
		if filter.UserID != 0 && res.UserID != filter.UserID {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeReservationRepo) UpdateStatus(id int64, status string) error {
	res, ok := r.reservations[id]
	if !ok {
		return errors.New("unknown reservation")
	}
	res.Status = status
	return nil
}

func (r *fakeReservationRepo) Delete(id int64) error {
	delete(r.reservations, id)
	return nil
}

func (r *fakeReservationRepo) FindConflict(tableID int64, at time.Time, excludeID int64) (*models.Reservation, error) {
	return r.conflict, nil
}

func (r *fakeReservationRepo) ExpirePending(before time.Time) (int64, error) {
	return r.expired, nil
}

type fakeTableRepo struct {
	tables map[int64]*models.Table
}

func (r *fakeTableRepo) Create(table *models.Table) error { return nil }
func (r *fakeTableRepo) GetByID(id int64) (*models.Table, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}
func (r *fakeTableRepo) ListByRestaurant(restaurantID int64) ([]*models.Table, error) {
	return nil, nil
}
func (r *fakeTableRepo) Update(table *models.Table) error { return nil }
func (r *fakeTableRepo) Delete(id int64) error            { return nil }
func (r *fakeTableRepo) NumberTaken(restaurantID int64, number int, excludeID int64) (bool, error) {
	return false, nil
}

type fakeFoodRepo struct {
	foods map[int64]*models.Food
}

func (r *fakeFoodRepo) Create(food *models.Food) error          { return nil }
func (r *fakeFoodRepo) GetByID(id int64) (*models.Food, error)  { return r.foods[id], nil }
func (r *fakeFoodRepo) List() ([]*models.Food, error)           { return nil, nil }
func (r *fakeFoodRepo) Update(food *models.Food) error          { return nil }
func (r *fakeFoodRepo) Delete(id int64) error                   { return nil }
func (r *fakeFoodRepo) GetByIDs(ids []int64) ([]*models.Food, error) {
	var out []*models.Food
	for _, id := range ids {
		if f, ok := r.foods[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[int64]*models.User
}

func (r *fakeUserRepo) Create(user *models.User) error            { return nil }
func (r *fakeUserRepo) GetByID(id int64) (*models.User, error)    { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (r *fakeUserRepo) ListByRole(role string) ([]*models.User, error) { return nil, nil }
func (r *fakeUserRepo) ListAll() ([]*models.User, error)          { return nil, nil }
func (r *fakeUserRepo) SetBlocked(id int64, blocked bool) error   { return nil }
func (r *fakeUserRepo) Delete(id int64) error                     { return nil }

func newTestReservationService(resRepo *fakeReservationRepo) ReservationService {
	return NewReservationService(
		resRepo,
		&fakeTableRepo{tables: map[int64]*models.Table{
			5: {ID: 5, RestaurantID: 1, Number: 3, Seats: 4},
		}},
		&fakeFoodRepo{foods: map[int64]*models.Food{
			10: {ID: 10, Name: "Борщ", PriceCents: 45000},
			11: {ID: 11, Name: "Оливье", PriceCents: 30000},
		}},
		&fakeUserRepo{users: map[int64]*models.User{
			7: {ID: 7, Name: "Иван", Email: "ivan@example.com"},
		}},
		nil, // email выключен
		nil, // telegram выключен
	)
}

func futureTime() time.Time {
	return time.Now().Add(48 * time.Hour)
}

func TestCreateReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	res, err := svc.Create(CreateReservationInput{
		UserID:     7,
		TableID:    5,
		DateTime:   futureTime(),
		PriceCents: 100000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID == 0 {
		t.Error("reservation must get an id")
	}
	if res.Status != models.ReservationPending {
		t.Errorf("status = %q, want pending", res.Status)
	}
	if res.PriceCents != 100000 {
		t.Errorf("price_cents = %d, want 100000", res.PriceCents)
	}
}

func TestCreateReservationPriceFloorsAtFoodTotal(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	// борщ x2 + оливье = 120000, заявленная цена меньше
	res, err := svc.Create(CreateReservationInput{
		UserID:     7,
		TableID:    5,
		DateTime:   futureTime(),
		PriceCents: 50000,
		Foods: []FoodLine{
			{FoodID: 10, Quantity: 2},
			{FoodID: 11},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.PriceCents != 120000 {
		t.Errorf("price_cents = %d, want 120000", res.PriceCents)
	}
	if len(res.Foods) != 2 {
		t.Fatalf("foods = %d, want 2", len(res.Foods))
	}
	if res.Foods[1].Quantity != 1 {
		t.Errorf("quantity defaults to 1, got %d", res.Foods[1].Quantity)
	}
}

func TestCreateReservationRejectsPast(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	_, err := svc.Create(CreateReservationInput{
		UserID:   7,
		TableID:  5,
		DateTime: time.Now().Add(-time.Hour),
	})
	if !errors.Is(err, ErrPastDateTime) {
		t.Errorf("err = %v, want ErrPastDateTime", err)
	}
}

func TestCreateReservationUnknownTable(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	_, err := svc.Create(CreateReservationInput{
		UserID:   7,
		TableID:  99,
		DateTime: futureTime(),
	})
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
}

func TestCreateReservationUnknownFood(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	_, err := svc.Create(CreateReservationInput{
		UserID:   7,
		TableID:  5,
		DateTime: futureTime(),
		Foods:    []FoodLine{{FoodID: 99}},
	})
	if !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("err = %v, want ErrFoodNotFound", err)
	}
}

func TestCreateReservationConflict(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.conflict = &models.Reservation{ID: 42, TableID: 5, Status: models.ReservationConfirmed}
	svc := newTestReservationService(repo)

	_, err := svc.Create(CreateReservationInput{
		UserID:   7,
		TableID:  5,
		DateTime: futureTime(),
	})
	if !errors.Is(err, ErrReservationConflict) {
		t.Errorf("err = %v, want ErrReservationConflict", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	available, existing, err := svc.CheckAvailability(5, futureTime(), 0)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !available || existing != nil {
		t.Error("expected free table")
	}

	repo.conflict = &models.Reservation{ID: 42, TableID: 5}
	available, existing, err = svc.CheckAvailability(5, futureTime(), 0)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if available || existing == nil || existing.ID != 42 {
		t.Error("expected the conflicting reservation back")
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	res, err := svc.Create(CreateReservationInput{UserID: 7, TableID: 5, DateTime: futureTime()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpdateStatus(res.ID, models.ReservationConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.ReservationConfirmed {
		t.Errorf("status = %q, want confirmed", updated.Status)
	}

	if _, err := svc.UpdateStatus(999, models.ReservationCanceled); !errors.Is(err, ErrReservationMissing) {
		t.Errorf("err = %v, want ErrReservationMissing", err)
	}
}

func TestDeleteReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := newTestReservationService(repo)

	res, err := svc.Create(CreateReservationInput{UserID: 7, TableID: 5, DateTime: futureTime()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(res.ID); !errors.Is(err, ErrReservationMissing) {
		t.Errorf("second delete: err = %v, want ErrReservationMissing", err)
	}
}
