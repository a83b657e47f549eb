package entity

import "time"

// Roles de sistema predefinidos. El claim de rol del JWT usa estos nombres.
const (
	RoleStoreManager   = "Store Manager"
	RoleCashier        = "Cashier"
	RoleReceivingClerk = "Receiving Clerk"
)

// Employee representa un empleado del supermercado.
// PasswordHash es bcrypt; nunca viaja en respuestas HTTP.
type Employee struct {
	ID           string
	Name         string
	PhoneNumber  string
	Email        string
	Address      string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
