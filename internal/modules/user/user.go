package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's access level. The role→permission mapping is fixed.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Permission names an action a role may perform.
type Permission string

const (
	PermManageUsers     Permission = "users:manage"
	PermManageInventory Permission = "inventory:manage"
	PermViewInventory   Permission = "inventory:view"
	PermManageOrders    Permission = "orders:manage"
	PermViewOrders      Permission = "orders:view"
	PermManageCustomers Permission = "customers:manage"
	PermViewCustomers   Permission = "customers:view"
	PermViewReports     Permission = "reports:view"
)

// rolePermissions is the fixed mapping from role to granted permissions.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermManageUsers, PermManageInventory, PermViewInventory,
		PermManageOrders, PermViewOrders, PermManageCustomers,
		PermViewCustomers, PermViewReports,
	},
	RoleManager: {
		PermManageInventory, PermViewInventory, PermManageOrders,
		PermViewOrders, PermManageCustomers, PermViewCustomers,
		PermViewReports,
	},
	RoleStaff: {
		PermViewInventory, PermManageOrders, PermViewOrders,
		PermViewCustomers,
	},
}

// HasPermission reports whether the role grants the permission.
func (r Role) HasPermission(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// User represents an operator of the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
