package entity

import "time"

// Customer representa un cliente (contraparte de las ventas).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string // E.164 cuando se pudo normalizar
	Address   string
	Document  string // documento tributario (CPF/CNPJ, NIT, etc.)
	CreatedAt time.Time
	UpdatedAt time.Time
}
