package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/homenest/homenest-api/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]domain.Offer, error)
	ListBoughtByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error)
	AcceptPending(ctx context.Context, id string) (*domain.Offer, error)
	RejectSiblings(ctx context.Context, propertyID, acceptedID string) (int64, error)
	Reject(ctx context.Context, id string) error
	MarkBought(ctx context.Context, id, transactionID string) (*domain.Offer, error)
	CountByStatus(ctx context.Context, status domain.OfferStatus) (int64, error)
}

type offerRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(s *Store) OfferRepository {
	return &offerRepository{col: s.col(ColOffers)}
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	return insertOne(ctx, r.col, offer)
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	return findOne[domain.Offer](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *offerRepository) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.Offer](ctx, r.col, bson.D{{Key: "buyer_email", Value: buyerEmail}}, opts)
}

func (r *offerRepository) ListByAgent(ctx context.Context, agentEmail string) ([]domain.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.Offer](ctx, r.col, bson.D{{Key: "agent_email", Value: agentEmail}}, opts)
}

func (r *offerRepository) ListBoughtByBuyer(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	filter := bson.D{
		{Key: "buyer_email", Value: buyerEmail},
		{Key: "status", Value: domain.OfferBought},
	}
	return findMany[domain.Offer](ctx, r.col, filter)
}

// AcceptPending moves the offer from pending to accepted with a single
// compare-and-set: the filter requires status pending, so two concurrent
// accepts cannot both win, and an offer in any other state is left alone.
// Returns ErrNotFound when no pending offer with that id matched.
func (r *offerRepository) AcceptPending(ctx context.Context, id string) (*domain.Offer, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "status", Value: domain.OfferPending},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: domain.OfferAccepted},
		{Key: "updated_at", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var offer domain.Offer
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapError(err)
	}
	return &offer, nil
}

// RejectSiblings rejects every other pending offer on the same property.
// This runs as a separate write after AcceptPending, not in a transaction
// with it: a crash between the two calls leaves siblings pending until the
// accept is retried.
func (r *offerRepository) RejectSiblings(ctx context.Context, propertyID, acceptedID string) (int64, error) {
	filter := bson.D{
		{Key: "property_id", Value: propertyID},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: acceptedID}}},
		{Key: "status", Value: domain.OfferPending},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: domain.OfferRejected},
		{Key: "updated_at", Value: time.Now()},
	}}}

	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, wrapError(err)
	}
	return res.ModifiedCount, nil
}

// Reject sets status to rejected regardless of the current state. The
// leniency is deliberate: agents may withdraw an acceptance.
func (r *offerRepository) Reject(ctx context.Context, id string) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "status", Value: domain.OfferRejected},
		{Key: "updated_at", Value: time.Now()},
	})
}

// MarkBought moves the offer from accepted to bought and records the payment
// transaction id. The accepted-only filter rejects out-of-order transitions;
// ErrNotFound here means either an unknown id or a non-accepted offer, which
// the caller disambiguates.
func (r *offerRepository) MarkBought(ctx context.Context, id, transactionID string) (*domain.Offer, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "status", Value: domain.OfferAccepted},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: domain.OfferBought},
		{Key: "transaction_id", Value: transactionID},
		{Key: "updated_at", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var offer domain.Offer
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapError(err)
	}
	return &offer, nil
}

func (r *offerRepository) CountByStatus(ctx context.Context, status domain.OfferStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.D{{Key: "status", Value: status}})
}
