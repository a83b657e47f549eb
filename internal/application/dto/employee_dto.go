package dto

// CreateEmployeeRequest body para POST /api/employees (solo Store Manager).
type CreateEmployeeRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	Password    string `json:"password,omitempty"` // vacío = contraseña por defecto
}

// UpdateEmployeeRequest body para PUT /api/employees/:id.
type UpdateEmployeeRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

// EmployeeResponse empleado sin campos sensibles.
type EmployeeResponse struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

// RolePermissionDTO una ruta permitida para un rol.
type RolePermissionDTO struct {
	PermissionID int64  `json:"permission_id,omitempty"`
	RoutePath    string `json:"route_path"`
	RouteName    string `json:"route_name"`
}

// RoleRequest body para POST/PUT de roles.
type RoleRequest struct {
	RoleName        string              `json:"role_name"`
	RoleDescription *string             `json:"role_description,omitempty"`
	Permissions     []RolePermissionDTO `json:"permissions"`
}

// RoleResponse rol con permisos.
type RoleResponse struct {
	RoleID          int64               `json:"role_id"`
	RoleName        string              `json:"role_name"`
	RoleDescription *string             `json:"role_description,omitempty"`
	IsSystemRole    bool                `json:"is_system_role"`
	Permissions     []RolePermissionDTO `json:"permissions"`
}
