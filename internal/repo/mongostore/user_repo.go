package mongostore

import (
	"context"
	"time"

	"github.com/homenest/homenest-api/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	MarkFraud(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(s *Store) UserRepository {
	return &userRepository{col: s.col(ColUsers)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return insertOne(ctx, r.col, user)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.User](ctx, r.col, bson.D{}, opts)
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return updateFields(ctx, r.col, id, bson.D{{Key: "role", Value: role}})
}

func (r *userRepository) MarkFraud(ctx context.Context, id string) error {
	return updateFields(ctx, r.col, id, bson.D{{Key: "fraud", Value: true}})
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.D{{Key: "role", Value: role}})
}
