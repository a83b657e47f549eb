package dto

// LoginRequest body para POST /api/auth/login.
// Role es opcional: si viene, debe coincidir con el rol del empleado.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginResponse token JWT más el empleado autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}

// ChangePasswordRequest body para PUT /api/profile/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
