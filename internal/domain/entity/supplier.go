package entity

import "time"

// Supplier proveedor de productos. Name es único.
type Supplier struct {
	ID         int64
	Name       string
	StateID    int64
	Phone      string
	Email      string
	CategoryID int64
	CreatedAt  time.Time
}
