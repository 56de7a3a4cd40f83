package models

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the wire format of order timestamps: UTC with
// millisecond precision, always three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// OrderLine is one product entry within an order. Stock and Price are the
// catalog values captured when the product was selected.
type OrderLine struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"min=1"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
}

// Order represents a customer order.
type Order struct {
	ID           string      `json:"id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	CustomerName string      `json:"customerName" validate:"required"`
	Email        string      `json:"email" gorm:"index" validate:"required,email"`
	Products     []OrderLine `json:"products" gorm:"serializer:json;type:text" validate:"required,min=1,dive"`
	Total        float64     `json:"total"`
	OrderCode    string      `json:"orderCode"`
	Timestamp    time.Time   `json:"timestamp"`
}

// ItemCount returns the sum of quantities across the order's lines.
func (o Order) ItemCount() int {
	count := 0
	for _, line := range o.Products {
		count += line.Quantity
	}
	return count
}

// MarshalJSON writes the timestamp in TimestampLayout.
func (o Order) MarshalJSON() ([]byte, error) {
	type wire Order
	return json.Marshal(struct {
		wire
		Timestamp string `json:"timestamp"`
	}{
		wire:      wire(o),
		Timestamp: o.Timestamp.UTC().Format(TimestampLayout),
	})
}
