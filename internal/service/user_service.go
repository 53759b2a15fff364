package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/platform/identity"
	"github.com/homenest/homenest-api/internal/repo/mongostore"
	"github.com/homenest/homenest-api/pkg/events"
	"github.com/homenest/homenest-api/pkg/logger"
)

type UserService interface {
	Register(ctx context.Context, req *domain.UserCreateReq) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	MarkFraud(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo     mongostore.UserRepository
	propertyRepo mongostore.PropertyRepository
	identity     identity.Provider
	eventBus     events.Publisher
}

func NewUserService(
	userRepo mongostore.UserRepository,
	propertyRepo mongostore.PropertyRepository,
	idp identity.Provider,
	eventBus events.Publisher,
) UserService {
	return &userService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		identity:     idp,
		eventBus:     eventBus,
	}
}

// Register creates a user if the email is not already present. Duplicates
// surface as ErrDuplicate regardless of whether the existing record was seen
// here or raced in through the unique index.
func (s *userService) Register(ctx context.Context, req *domain.UserCreateReq) (*domain.User, error) {
	if err := validateUserReq(req); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if r, ok := domain.ParseRole(req.Role); ok {
		role = r
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Role:      role,
		AuthUID:   req.AuthUID,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return s.userRepo.UpdateRole(ctx, id, role)
}

// MarkFraud flags the user and delists every property carrying their agent
// email, so a fraudulent agent's listings disappear immediately.
func (s *userService) MarkFraud(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if err := s.userRepo.MarkFraud(ctx, id); err != nil {
		return err
	}

	if user.Role == domain.RoleAgent {
		delisted, err := s.propertyRepo.RejectAllByAgent(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("delist fraud agent properties: %w", err)
		}
		logger.InfoContext(ctx, "Delisted properties of fraud agent",
			"agent_email", user.Email, "count", delisted)
	}

	return nil
}

// Delete removes the account and asks the identity provider to drop the
// credential. The provider call is best-effort cleanup: failure is logged,
// never surfaced, since the local record is already gone.
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if user.AuthUID != "" {
		if err := s.identity.DeleteUser(ctx, user.AuthUID); err != nil {
			logger.ErrorContext(ctx, "Identity provider cleanup failed",
				"error", err, "user_id", id, "auth_uid", user.AuthUID)
		}
	}

	event := events.UserDeletedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		DeletedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.UserDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user deleted event", "error", err, "user_id", id)
	}

	return nil
}

func validateUserReq(req *domain.UserCreateReq) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalid)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: email is malformed", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalid)
	}
	if req.Role != "" {
		if _, ok := domain.ParseRole(req.Role); !ok {
			return fmt.Errorf("%w: role must be user, agent or admin", domain.ErrInvalid)
		}
	}
	return nil
}
