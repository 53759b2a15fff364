package mongostore

import (
	"context"
	"time"

	"github.com/homenest/homenest-api/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListLatest(ctx context.Context, limit int64) ([]domain.Review, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error)
	ListByReviewer(ctx context.Context, reviewerEmail string) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(s *Store) ReviewRepository {
	return &reviewRepository{col: s.col(ColReviews)}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return insertOne(ctx, r.col, review)
}

func (r *reviewRepository) ListLatest(ctx context.Context, limit int64) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	return findMany[domain.Review](ctx, r.col, bson.D{}, opts)
}

func (r *reviewRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.Review](ctx, r.col, bson.D{{Key: "property_id", Value: propertyID}}, opts)
}

func (r *reviewRepository) ListByReviewer(ctx context.Context, reviewerEmail string) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.Review](ctx, r.col, bson.D{{Key: "reviewer_email", Value: reviewerEmail}}, opts)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.D{})
}
