package models

import "time"

type Food struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ImageURL    *string   `json:"image_url"`
	Calories    *int      `json:"calories"`
	Ingredients *string   `json:"ingredients"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
}
