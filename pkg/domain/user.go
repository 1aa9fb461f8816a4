package domain

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role controls access to admin-only routes.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an authenticated owner of finance data. Every persisted entity
// carries the owning user's ID and all queries are scoped to it.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string // bcrypt hash
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with a freshly hashed password.
func NewUser(username, email, password string) (*User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     RoleUser,
	}, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail reports whether s parses as an RFC 5322 address.
func IsEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}
