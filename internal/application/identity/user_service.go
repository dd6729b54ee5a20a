package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/domain/shared"
)

// UserService handles staff account management
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create creates a staff account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.UserName, req.Email, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.Phone = req.Phone

	if req.TowerID != "" {
		towerID, err := uuid.Parse(req.TowerID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TOWER", "Invalid tower ID")
		}
		user.SwitchTower(towerID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID retrieves a staff account
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List returns all staff accounts
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses, nil
}

// Update updates a staff account
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.UserName = req.UserName
	user.Phone = req.Phone
	user.Image = req.Image

	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if req.TowerID != "" {
		towerID, err := uuid.Parse(req.TowerID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TOWER", "Invalid tower ID")
		}
		user.SwitchTower(towerID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// SwitchTower moves a staff user's working context to another tower
func (s *UserService) SwitchTower(ctx context.Context, id, towerID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.SwitchTower(towerID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete removes a staff account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
