package authz

const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// IsStaff — менеджеры и админы видят чужие брони и платежи.
func IsStaff(role string) bool {
	return role == RoleManager || role == RoleAdmin
}

func IsAdmin(role string) bool {
	return role == RoleAdmin
}
