package mapper

import "github.com/Apurer/voucher-portal/internal/domains/staff/domain"

// LoginRequest is the body of POST /staff/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// User is the public JSON shape of a staff member.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func ToUser(u domain.User) User {
	return User{ID: u.ID, Username: u.Username, Name: u.Name, Role: string(u.Role)}
}
