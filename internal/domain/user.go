package domain

// Role — роль учётной записи.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User — учётная запись пользователя.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

func NewUser(username, passwordHash string, role Role) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
}
