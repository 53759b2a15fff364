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

type WishlistService interface {
	Add(ctx context.Context, req *domain.WishlistReq) (*domain.WishlistItem, error)
	ListByUser(ctx context.Context, userEmail string) ([]domain.WishlistItem, error)
	Remove(ctx context.Context, id string) error
}

type wishlistService struct {
	wishlistRepo mongostore.WishlistRepository
}

func NewWishlistService(wishlistRepo mongostore.WishlistRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo}
}

func (s *wishlistService) Add(ctx context.Context, req *domain.WishlistReq) (*domain.WishlistItem, error) {
	if strings.TrimSpace(req.UserEmail) == "" {
		return nil, fmt.Errorf("%w: user_email is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.PropertyID) == "" {
		return nil, fmt.Errorf("%w: property_id is required", domain.ErrInvalid)
	}

	status := domain.PropertyPending
	if st, ok := domain.ParsePropertyStatus(req.Status); ok {
		status = st
	}

	item := &domain.WishlistItem{
		ID:         uuid.NewString(),
		UserEmail:  strings.ToLower(req.UserEmail),
		PropertyID: req.PropertyID,
		Title:      req.Title,
		Location:   req.Location,
		Image:      req.Image,
		AgentName:  req.AgentName,
		Status:     status,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		CreatedAt:  time.Now(),
	}

	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return item, nil
}

func (s *wishlistService) ListByUser(ctx context.Context, userEmail string) ([]domain.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, strings.ToLower(userEmail))
}

func (s *wishlistService) Remove(ctx context.Context, id string) error {
	return s.wishlistRepo.Delete(ctx, id)
}
