package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste a un valor absoluto
)

// DefaultActor se usa cuando la operación no informa quién la ejecuta.
const DefaultActor = "system"

// StockMovement es un asiento inmutable del libro de stock.
// Quantity es siempre la magnitud (nunca negativa); BalanceAfter es el saldo resultante
// y es la única fuente de verdad del stock actual.
type StockMovement struct {
	ID           string
	Seq          int64 // asignado por el almacenamiento; desempata CreatedAt
	ProductID    string
	Type         string
	Quantity     int
	BalanceAfter int
	Reason       string
	CreatedAt    time.Time
	CreatedBy    string
}
