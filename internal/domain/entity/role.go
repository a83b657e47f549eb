package entity

// RolePermission asocia un rol con una ruta de la aplicación.
type RolePermission struct {
	ID        int64
	RoutePath string
	RouteName string
}

// Role representa un rol configurable con sus permisos de ruta.
// Los roles de sistema (isSystemRole) no pueden eliminarse.
type Role struct {
	ID           int64
	Name         string
	Description  *string
	IsSystemRole bool
	Permissions  []RolePermission
}
