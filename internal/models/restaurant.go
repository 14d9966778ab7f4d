package models

import (
	"encoding/json"
	"time"
)

type Restaurant struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Description *string         `json:"description"`
	LayoutData  json.RawMessage `json:"layout_data"` // схема зала из редактора, произвольный JSON
	TablesCount int             `json:"tables_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Table struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Number       int       `json:"number"`
	Seats        int       `json:"seats"`
	CreatedAt    time.Time `json:"created_at"`
}
