package property

import (
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Flat represents a billable unit within a tower. Flat owners sign in with
// the unit number, floor and a password, so flats carry their own credential.
type Flat struct {
	shared.BaseEntity
	TowerID      uuid.UUID `json:"tower_id"`
	Number       int       `json:"number"`
	Floor        int       `json:"floor"`
	PasswordHash string    `json:"-"`
}

// NewFlat creates a new flat within a tower.
func NewFlat(towerID uuid.UUID, number, floor int) (*Flat, error) {
	if towerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TOWER", "Tower ID cannot be empty")
	}
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Flat number must be positive")
	}
	if floor < 0 {
		return nil, shared.NewDomainError("INVALID_FLOOR", "Floor cannot be negative")
	}

	return &Flat{
		BaseEntity: shared.NewBaseEntity(),
		TowerID:    towerID,
		Number:     number,
		Floor:      floor,
	}, nil
}

// SetPassword hashes and stores the owner password.
func (f *Flat) SetPassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	f.PasswordHash = string(hash)
	return nil
}

// VerifyPassword checks a candidate password against the stored hash.
func (f *Flat) VerifyPassword(password string) bool {
	if f.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(f.PasswordHash), []byte(password)) == nil
}
