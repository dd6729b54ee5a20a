// Package identity implements authentication and staff account management.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for any failed login attempt. The cause
// (unknown account, wrong password) is deliberately not disclosed.
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")

// AuthService handles staff and flat-owner sign-in
type AuthService struct {
	userRepo  identity.UserRepository
	flatRepo  property.FlatRepository
	towerRepo property.TowerRepository
	jwt       *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	flatRepo property.FlatRepository,
	towerRepo property.TowerRepository,
	jwt *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		flatRepo:  flatRepo,
		towerRepo: towerRepo,
		jwt:       jwt,
	}
}

// TowersForEmail returns the towers a staff email can sign into. The login
// page calls this before authentication, so unknown emails yield an empty
// list rather than an error.
func (s *AuthService) TowersForEmail(ctx context.Context, email string) ([]TowerOption, error) {
	towers, err := s.towerRepo.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return ToTowerOptions(towers), nil
}

// LoginStaff authenticates a staff user by email, tower and password
func (s *AuthService) LoginStaff(ctx context.Context, req StaffLoginRequest) (*LoginResponse, error) {
	towerID, err := uuid.Parse(req.TowerID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid tower ID")
	}

	user, err := s.userRepo.FindByEmailAndTower(ctx, req.Email, towerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		UserID:  user.ID,
		TowerID: towerID,
		Role:    string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	userID := user.ID
	return &LoginResponse{
		Token:     token.Value,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		Role:      string(user.Role),
		UserID:    &userID,
		TowerID:   &towerID,
		UserName:  user.UserName,
	}, nil
}

// LoginFlat authenticates a flat owner by unit number, floor and password
func (s *AuthService) LoginFlat(ctx context.Context, req FlatLoginRequest) (*LoginResponse, error) {
	flat, err := s.flatRepo.FindByNumberAndFloor(ctx, req.Number, req.Floor)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !flat.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		FlatID:  flat.ID,
		TowerID: flat.TowerID,
		Role:    string(identity.RoleFlat),
	})
	if err != nil {
		return nil, err
	}

	flatID := flat.ID
	towerID := flat.TowerID
	return &LoginResponse{
		Token:     token.Value,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		Role:      string(identity.RoleFlat),
		FlatID:    &flatID,
		TowerID:   &towerID,
	}, nil
}
