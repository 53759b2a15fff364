package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/platform/mailer"
	"github.com/homenest/homenest-api/internal/repo/mongostore"
	"github.com/homenest/homenest-api/pkg/events"
	"github.com/homenest/homenest-api/pkg/logger"
)

type OfferService interface {
	Create(ctx context.Context, req *domain.OfferReq) (*domain.Offer, error)
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]domain.Offer, error)
	ListBoughtByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error)
	Accept(ctx context.Context, id string) (*domain.Offer, error)
	Reject(ctx context.Context, id string) error
	MarkBought(ctx context.Context, id, transactionID string) (*domain.Offer, error)
}

type offerService struct {
	offerRepo mongostore.OfferRepository
	eventBus  events.Publisher
	mailer    mailer.Service
}

func NewOfferService(offerRepo mongostore.OfferRepository, eventBus events.Publisher, mail mailer.Service) OfferService {
	return &offerService{
		offerRepo: offerRepo,
		eventBus:  eventBus,
		mailer:    mail,
	}
}

func (s *offerService) Create(ctx context.Context, req *domain.OfferReq) (*domain.Offer, error) {
	if err := validateOfferReq(req); err != nil {
		return nil, err
	}

	now := time.Now()
	offer := &domain.Offer{
		ID:         uuid.NewString(),
		PropertyID: req.PropertyID,
		Title:      req.Title,
		Location:   req.Location,
		AgentEmail: strings.ToLower(req.AgentEmail),
		BuyerEmail: strings.ToLower(req.BuyerEmail),
		BuyerName:  req.BuyerName,
		Amount:     req.Amount,
		Status:     domain.OfferPending,
		BuyingDate: req.BuyingDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	event := events.OfferCreatedEvent{
		OfferID:    offer.ID,
		PropertyID: offer.PropertyID,
		BuyerEmail: offer.BuyerEmail,
		AgentEmail: offer.AgentEmail,
		Amount:     offer.Amount,
		CreatedAt:  offer.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.OfferCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish offer created event", "error", err, "offer_id", offer.ID)
	}

	return offer, nil
}

func (s *offerService) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	return s.offerRepo.GetByID(ctx, id)
}

func (s *offerService) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	return s.offerRepo.ListByBuyer(ctx, strings.ToLower(buyerEmail))
}

func (s *offerService) ListByAgent(ctx context.Context, agentEmail string) ([]domain.Offer, error) {
	return s.offerRepo.ListByAgent(ctx, strings.ToLower(agentEmail))
}

func (s *offerService) ListBoughtByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	return s.offerRepo.ListBoughtByBuyer(ctx, strings.ToLower(buyerEmail))
}

// Accept moves the target offer to accepted and rejects every other pending
// offer on the same property.
//
// The accept itself is a compare-and-set on status pending, so a concurrent
// accept of the same offer loses cleanly. The sibling reject is a second,
// independent write: between the two, a reader can observe the accepted
// offer alongside still-pending siblings, and a crash leaves them that way.
func (s *offerService) Accept(ctx context.Context, id string) (*domain.Offer, error) {
	existing, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if existing.Status != domain.OfferPending {
		return nil, fmt.Errorf("%w: offer is %s, only pending offers can be accepted", domain.ErrConflict, existing.Status)
	}

	offer, err := s.offerRepo.AcceptPending(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			// Lost a race: the offer left pending between the read and the CAS.
			return nil, fmt.Errorf("%w: offer is no longer pending", domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to accept offer: %w", err)
	}

	rejected, err := s.offerRepo.RejectSiblings(ctx, offer.PropertyID, offer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reject sibling offers: %w", err)
	}

	event := events.OfferAcceptedEvent{
		OfferID:       offer.ID,
		PropertyID:    offer.PropertyID,
		BuyerEmail:    offer.BuyerEmail,
		RejectedCount: rejected,
		AcceptedAt:    time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.OfferAccepted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish offer accepted event", "error", err, "offer_id", offer.ID)
	}

	if err := s.mailer.SendOfferAccepted(offer.BuyerEmail, offer.BuyerName, offer.Title); err != nil {
		logger.ErrorContext(ctx, "Failed to send offer accepted email", "error", err, "offer_id", offer.ID)
	}

	return offer, nil
}

// Reject sets the offer to rejected regardless of its current state.
func (s *offerService) Reject(ctx context.Context, id string) error {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return domain.ErrNotFound
	}

	if err := s.offerRepo.Reject(ctx, id); err != nil {
		return err
	}

	event := events.OfferRejectedEvent{
		OfferID:    offer.ID,
		PropertyID: offer.PropertyID,
		BuyerEmail: offer.BuyerEmail,
		RejectedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.OfferRejected, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish offer rejected event", "error", err, "offer_id", offer.ID)
	}

	return nil
}

// MarkBought records the payment transaction and moves the offer from
// accepted to bought. A non-accepted offer is a conflict, not a not-found.
func (s *offerService) MarkBought(ctx context.Context, id, transactionID string) (*domain.Offer, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, fmt.Errorf("%w: transaction_id is required", domain.ErrInvalid)
	}

	offer, err := s.offerRepo.MarkBought(ctx, id, transactionID)
	if err != nil {
		if err == domain.ErrNotFound {
			existing, getErr := s.offerRepo.GetByID(ctx, id)
			if getErr != nil {
				return nil, fmt.Errorf("failed to get offer: %w", getErr)
			}
			if existing == nil {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("%w: offer is %s, only accepted offers can be bought", domain.ErrConflict, existing.Status)
		}
		return nil, fmt.Errorf("failed to mark offer bought: %w", err)
	}

	event := events.OfferBoughtEvent{
		OfferID:       offer.ID,
		PropertyID:    offer.PropertyID,
		BuyerEmail:    offer.BuyerEmail,
		TransactionID: transactionID,
		BoughtAt:      time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.OfferBought, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish offer bought event", "error", err, "offer_id", offer.ID)
	}

	return offer, nil
}

func validateOfferReq(req *domain.OfferReq) error {
	if strings.TrimSpace(req.PropertyID) == "" {
		return fmt.Errorf("%w: property_id is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.BuyerEmail) == "" {
		return fmt.Errorf("%w: buyer_email is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(req.AgentEmail) == "" {
		return fmt.Errorf("%w: agent_email is required", domain.ErrInvalid)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalid)
	}
	return nil
}
