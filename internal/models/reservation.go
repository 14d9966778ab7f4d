package models

import "time"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCanceled  = "canceled"
	ReservationExpired   = "expired"
)

type Reservation struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	TableID    int64     `json:"table_id"`
	DateTime   time.Time `json:"date_time"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`

	Foods []ReservationFood `json:"foods,omitempty"`
}

// ReservationFood — строка заказа блюд к брони (pivot food_reservation).
type ReservationFood struct {
	FoodID     int64  `json:"food_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}
