package entity

import "time"

// StockAdjustment es un registro manual de ajuste de inventario.
// Change es un delta con signo: positivo suma stock, negativo lo reduce.
// El delta se aplica a Product.Stock en la misma transacción que inserta el registro.
type StockAdjustment struct {
	ID        int64
	ProductID int64
	Change    int64
	Reason    string // opcional
	CreatedBy *int64 // nil si el usuario fue eliminado
	CreatedAt time.Time
}
