package mongostore

import (
	"context"

	"github.com/homenest/homenest-api/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type WishlistRepository interface {
	Create(ctx context.Context, item *domain.WishlistItem) error
	GetByID(ctx context.Context, id string) (*domain.WishlistItem, error)
	ListByUser(ctx context.Context, userEmail string) ([]domain.WishlistItem, error)
	Delete(ctx context.Context, id string) error
}

type wishlistRepository struct {
	col *mongo.Collection
}

func NewWishlistRepository(s *Store) WishlistRepository {
	return &wishlistRepository{col: s.col(ColWishlists)}
}

func (r *wishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	return insertOne(ctx, r.col, item)
}

func (r *wishlistRepository) GetByID(ctx context.Context, id string) (*domain.WishlistItem, error) {
	return findOne[domain.WishlistItem](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.WishlistItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.WishlistItem](ctx, r.col, bson.D{{Key: "user_email", Value: userEmail}}, opts)
}

func (r *wishlistRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}
