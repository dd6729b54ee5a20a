package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/domain/property"
)

// StaffLoginRequest is the staff credential: an email is only valid together
// with the tower being signed into.
type StaffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	TowerID  string `json:"tower_id" binding:"required,uuid"`
	Password string `json:"password" binding:"required"`
}

// FlatLoginRequest is the flat-owner credential.
type FlatLoginRequest struct {
	Number   int    `json:"number" binding:"required,gt=0"`
	Floor    int    `json:"floor" binding:"gte=0"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the signed-in principal.
type LoginResponse struct {
	Token     string     `json:"token"`
	TokenType string     `json:"token_type"`
	ExpiresAt time.Time  `json:"expires_at"`
	Role      string     `json:"role"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	FlatID    *uuid.UUID `json:"flat_id,omitempty"`
	TowerID   *uuid.UUID `json:"tower_id,omitempty"`
	UserName  string     `json:"user_name,omitempty"`
}

// TowerOption is a tower entry for the login page selector.
type TowerOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserResponse is the external representation of a staff account.
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      string     `json:"role"`
	Image     string     `json:"image"`
	TowerID   *uuid.UUID `json:"tower_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateUserRequest creates a staff account.
type CreateUserRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
	TowerID  string `json:"tower_id"`
}

// UpdateUserRequest updates a staff account. Empty password keeps the
// current one.
type UpdateUserRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Image    string `json:"image"`
	TowerID  string `json:"tower_id"`
}

// ToUserResponse converts a domain user to its external representation
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Image:     u.Image,
		TowerID:   u.TowerID,
		CreatedAt: u.CreatedAt,
	}
}

// ToTowerOptions converts towers to login page selector entries
func ToTowerOptions(towers []property.Tower) []TowerOption {
	options := make([]TowerOption, len(towers))
	for i, t := range towers {
		options[i] = TowerOption{ID: t.ID, Name: t.Name}
	}
	return options
}
