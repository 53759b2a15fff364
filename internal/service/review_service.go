package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/repo/mongostore"
)

type ReviewService interface {
	Create(ctx context.Context, req *domain.ReviewReq) (*domain.Review, error)
	ListLatest(ctx context.Context, limit int64) ([]domain.Review, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error)
	ListByReviewer(ctx context.Context, reviewerEmail string) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	reviewRepo mongostore.ReviewRepository
}

func NewReviewService(reviewRepo mongostore.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) Create(ctx context.Context, req *domain.ReviewReq) (*domain.Review, error) {
	if err := validateReviewReq(req); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:            uuid.NewString(),
		PropertyID:    req.PropertyID,
		PropertyTitle: req.PropertyTitle,
		AgentName:     req.AgentName,
		ReviewerEmail: strings.ToLower(req.ReviewerEmail),
		ReviewerName:  req.ReviewerName,
		Rating:        req.Rating,
		Text:          req.Text,
		CreatedAt:     time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ListLatest(ctx context.Context, limit int64) ([]domain.Review, error) {
	return s.reviewRepo.ListLatest(ctx, limit)
}

func (s *reviewService) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	return s.reviewRepo.ListByProperty(ctx, propertyID)
}

func (s *reviewService) ListByReviewer(ctx context.Context, reviewerEmail string) ([]domain.Review, error) {
	return s.reviewRepo.ListByReviewer(ctx, strings.ToLower(reviewerEmail))
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	return s.reviewRepo.Delete(ctx, id)
}

func validateReviewReq(req *domain.ReviewReq) error {
	if strings.TrimSpace(req.PropertyID) == "" {
		return fmt.Errorf("%w: property_id is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.ReviewerEmail) == "" {
		return fmt.Errorf("%w: reviewer_email is required", domain.ErrInvalid)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalid)
	}
	return nil
}
