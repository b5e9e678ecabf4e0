package entity

import "time"

// Supplier representa un proveedor (contraparte de las compras).
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
