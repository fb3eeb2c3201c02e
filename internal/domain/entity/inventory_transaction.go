package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeSale       = "SALE"
	TransactionTypeRestock    = "RESTOCK"
	TransactionTypeAdjustment = "ADJUSTMENT"
	TransactionTypeLoss       = "LOSS"
)

// InventoryTransaction es una entrada del log append-only de movimientos de
// un producto. El delta sobre InventoryItem.Quantity lo aplica el caso de
// uso de inventario dentro de una transacción de BD; el forecaster solo lee
// este log para calcular la velocidad de venta.
type InventoryTransaction struct {
	ID        string
	ShopID    string
	ItemID    string
	Type      string // SALE | RESTOCK | ADJUSTMENT | LOSS
	Quantity  int    // SALE/RESTOCK/LOSS: positivo; ADJUSTMENT: delta con signo
	Note      string
	CreatedAt time.Time
}

// IsValidTransactionType valida el tipo de movimiento.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeSale, TransactionTypeRestock, TransactionTypeAdjustment, TransactionTypeLoss:
		return true
	}
	return false
}
