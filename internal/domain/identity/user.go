// Package identity holds the staff accounts and the role policy that decides
// who may reach the administration pages.
package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role classifies a signed-in principal.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	// RoleFlat is assumed by flat owners signing in with number and floor.
	// It only grants access to the flat's own records.
	RoleFlat Role = "flat"
)

// IsValid checks whether the role is a known one.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleFlat:
		return true
	}
	return false
}

// IsStaff reports whether the role may reach the administration pages.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a staff account. TowerID is the tower the user is currently
// working in; it scopes every record listing.
type User struct {
	shared.BaseEntity
	UserName     string     `json:"user_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Image        string     `json:"image"`
	TowerID      *uuid.UUID `json:"tower_id"`
}

// NewUser creates a staff account.
func NewUser(userName, email string, role Role) (*User, error) {
	if userName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		UserName:   userName,
		Email:      email,
		Role:       role,
	}, nil
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword checks a candidate password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SwitchTower moves the user's working context to another tower.
func (u *User) SwitchTower(towerID uuid.UUID) {
	if towerID == uuid.Nil {
		u.TowerID = nil
	} else {
		id := towerID
		u.TowerID = &id
	}
	u.UpdatedAt = time.Now()
}
