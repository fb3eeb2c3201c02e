package entity

import "time"

// Roles de usuario dentro de una tienda.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User representa un usuario del sistema (dueño o empleado de la tienda).
// El login es por teléfono + password.
type User struct {
	ID           string
	ShopID       string
	Phone        string
	PasswordHash string
	Name         string
	Role         string // owner | staff
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
