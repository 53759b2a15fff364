package service

import (
	"context"
	"fmt"
	"math"

	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/platform/payments"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (clientSecret string, err error)
}

type paymentService struct {
	provider payments.Provider
	currency string
}

func NewPaymentService(provider payments.Provider, currency string) PaymentService {
	return &paymentService{
		provider: provider,
		currency: currency,
	}
}

// CreateIntent converts the quoted price to minor units and asks the payment
// processor for a charge intent.
func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("%w: price must be positive", domain.ErrInvalid)
	}

	amountCents := int64(math.Round(price * 100))

	secret, err := s.provider.CreateIntent(ctx, amountCents, s.currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return secret, nil
}
