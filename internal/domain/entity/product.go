package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es un contador plano que solo se modifica vía ajustes de inventario;
// la creación de facturas NO lo descuenta (decisión documentada en DESIGN.md).
type Product struct {
	ID                  int64
	Name                string
	SKU                 string // único
	Barcode             string // opcional
	HSCode              string // opcional, código arancelario (Harmonized System)
	Price               decimal.Decimal
	Stock               int64 // nunca negativo
	AvailableForInvoice bool  // visible en el selector de productos al facturar
	CreatedAt           time.Time
}
