package models

// Product is a catalog entry as served by the order backend.
type Product struct {
	ID    string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}
