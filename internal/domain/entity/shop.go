package entity

import "time"

// Shop representa una tienda (tenant). Todas las entidades de negocio
// pertenecen a una tienda y se filtran por ShopID.
type Shop struct {
	ID         string
	Name       string
	OwnerPhone string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
