package service

import (
	"context"
	"fmt"

	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/repo/mongostore"
	"golang.org/x/sync/errgroup"
)

type DashboardSummary struct {
	Users      UserCounts     `json:"users"`
	Properties PropertyCounts `json:"properties"`
	Offers     OfferCounts    `json:"offers"`
	Reviews    int64          `json:"reviews"`
}

type UserCounts struct {
	Total  int64 `json:"total"`
	Users  int64 `json:"users"`
	Agents int64 `json:"agents"`
	Admins int64 `json:"admins"`
}

type PropertyCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Verified   int64 `json:"verified"`
	Rejected   int64 `json:"rejected"`
	Advertised int64 `json:"advertised"`
}

type OfferCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	Bought   int64 `json:"bought"`
}

type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

type dashboardService struct {
	userRepo     mongostore.UserRepository
	propertyRepo mongostore.PropertyRepository
	reviewRepo   mongostore.ReviewRepository
	offerRepo    mongostore.OfferRepository
}

func NewDashboardService(
	userRepo mongostore.UserRepository,
	propertyRepo mongostore.PropertyRepository,
	reviewRepo mongostore.ReviewRepository,
	offerRepo mongostore.OfferRepository,
) DashboardService {
	return &dashboardService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		reviewRepo:   reviewRepo,
		offerRepo:    offerRepo,
	}
}

// Summary recomputes every count from live data on each call, fanning the
// independent queries out concurrently. Any sub-query failure fails the
// whole summary; there are no partial results.
func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary
	g, ctx := errgroup.WithContext(ctx)

	countUser := func(role domain.Role, dst *int64) func() error {
		return func() error {
			n, err := s.userRepo.CountByRole(ctx, role)
			*dst = n
			return err
		}
	}
	countProperty := func(status domain.PropertyStatus, dst *int64) func() error {
		return func() error {
			n, err := s.propertyRepo.CountByStatus(ctx, status)
			*dst = n
			return err
		}
	}
	countOffer := func(status domain.OfferStatus, dst *int64) func() error {
		return func() error {
			n, err := s.offerRepo.CountByStatus(ctx, status)
			*dst = n
			return err
		}
	}

	g.Go(countUser(domain.RoleUser, &summary.Users.Users))
	g.Go(countUser(domain.RoleAgent, &summary.Users.Agents))
	g.Go(countUser(domain.RoleAdmin, &summary.Users.Admins))

	g.Go(countProperty(domain.PropertyPending, &summary.Properties.Pending))
	g.Go(countProperty(domain.PropertyVerified, &summary.Properties.Verified))
	g.Go(countProperty(domain.PropertyRejected, &summary.Properties.Rejected))
	g.Go(func() error {
		n, err := s.propertyRepo.CountAdvertised(ctx)
		summary.Properties.Advertised = n
		return err
	})

	g.Go(countOffer(domain.OfferPending, &summary.Offers.Pending))
	g.Go(countOffer(domain.OfferAccepted, &summary.Offers.Accepted))
	g.Go(countOffer(domain.OfferRejected, &summary.Offers.Rejected))
	g.Go(countOffer(domain.OfferBought, &summary.Offers.Bought))

	g.Go(func() error {
		n, err := s.reviewRepo.Count(ctx)
		summary.Reviews = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary failed: %w", err)
	}

	summary.Users.Total = summary.Users.Users + summary.Users.Agents + summary.Users.Admins
	summary.Properties.Total = summary.Properties.Pending + summary.Properties.Verified + summary.Properties.Rejected
	summary.Offers.Total = summary.Offers.Pending + summary.Offers.Accepted + summary.Offers.Rejected + summary.Offers.Bought

	return &summary, nil
}
