package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrEmptyID       = errors.New("staff id is required")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidHash   = errors.New("password hash must be a hex SHA-256 digest")
	ErrInvalidRole   = errors.New("role must be admin or staff")
)

// Role is the back-office role of a staff member.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a back-office member allowed to review voucher requests.
type User struct {
	ID           string
	Username     string
	Name         string
	Role         Role
	PasswordHash string
}

// HashPassword returns the hex SHA-256 digest stored for a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword compares the digest of password with the stored hash in constant time.
func (u User) CheckPassword(password string) bool {
	if password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashPassword(password)), []byte(u.PasswordHash)) == 1
}

// Public returns the user without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Validate checks the invariants of a directory entry.
func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.Role != RoleAdmin && u.Role != RoleStaff {
		return ErrInvalidRole
	}
	if _, err := hex.DecodeString(u.PasswordHash); err != nil || len(u.PasswordHash) != sha256.Size*2 {
		return ErrInvalidHash
	}
	return nil
}
