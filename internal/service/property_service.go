package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/repo/mongostore"
	"github.com/homenest/homenest-api/pkg/events"
	"github.com/homenest/homenest-api/pkg/logger"
)

type PropertyService interface {
	Create(ctx context.Context, req *domain.PropertyReq) (*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListAll(ctx context.Context) ([]domain.Property, error)
	ListVerified(ctx context.Context) ([]domain.Property, error)
	ListAdvertised(ctx context.Context) ([]domain.Property, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]domain.Property, error)
	Replace(ctx context.Context, id string, req *domain.PropertyReq) error
	UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error
	SetAdvertised(ctx context.Context, id string, advertised bool) error
	Delete(ctx context.Context, id string) error
}

type propertyService struct {
	propertyRepo mongostore.PropertyRepository
	eventBus     events.Publisher
}

func NewPropertyService(propertyRepo mongostore.PropertyRepository, eventBus events.Publisher) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		eventBus:     eventBus,
	}
}

// Create inserts a listing at status pending. Verification is admin-only and
// happens later through UpdateStatus.
func (s *propertyService) Create(ctx context.Context, req *domain.PropertyReq) (*domain.Property, error) {
	if err := validatePropertyReq(req); err != nil {
		return nil, err
	}

	now := time.Now()
	property := &domain.Property{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Location:    req.Location,
		Image:       req.Image,
		Description: req.Description,
		AgentName:   req.AgentName,
		AgentEmail:  strings.ToLower(req.AgentEmail),
		Status:      domain.PropertyPending,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) ListAll(ctx context.Context) ([]domain.Property, error) {
	return s.propertyRepo.ListAll(ctx)
}

func (s *propertyService) ListVerified(ctx context.Context) ([]domain.Property, error) {
	return s.propertyRepo.ListVerified(ctx)
}

func (s *propertyService) ListAdvertised(ctx context.Context) ([]domain.Property, error) {
	return s.propertyRepo.ListAdvertised(ctx)
}

func (s *propertyService) ListByAgent(ctx context.Context, agentEmail string) ([]domain.Property, error) {
	return s.propertyRepo.ListByAgent(ctx, strings.ToLower(agentEmail))
}

func (s *propertyService) Replace(ctx context.Context, id string, req *domain.PropertyReq) error {
	if err := validatePropertyReq(req); err != nil {
		return err
	}
	return s.propertyRepo.Replace(ctx, id, req)
}

func (s *propertyService) UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if property == nil {
		return domain.ErrNotFound
	}

	if err := s.propertyRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	event := events.PropertyStatusChangedEvent{
		PropertyID: id,
		AgentEmail: property.AgentEmail,
		Status:     string(status),
		ChangedAt:  time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.PropertyStatusChanged, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish property status event", "error", err, "property_id", id)
	}

	return nil
}

func (s *propertyService) SetAdvertised(ctx context.Context, id string, advertised bool) error {
	return s.propertyRepo.SetAdvertised(ctx, id, advertised)
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	return s.propertyRepo.Delete(ctx, id)
}

func validatePropertyReq(req *domain.PropertyReq) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.AgentEmail) == "" {
		return fmt.Errorf("%w: agent_email is required", domain.ErrInvalid)
	}
	if req.MinPrice < 0 || req.MaxPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", domain.ErrInvalid)
	}
	if req.MaxPrice > 0 && req.MinPrice > req.MaxPrice {
		return fmt.Errorf("%w: min_price must not exceed max_price", domain.ErrInvalid)
	}
	return nil
}
