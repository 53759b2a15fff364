package mongostore

import (
	"context"
	"time"

	"github.com/homenest/homenest-api/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListAll(ctx context.Context) ([]domain.Property, error)
	ListVerified(ctx context.Context) ([]domain.Property, error)
	ListAdvertised(ctx context.Context) ([]domain.Property, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]domain.Property, error)
	Replace(ctx context.Context, id string, req *domain.PropertyReq) error
	UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error
	SetAdvertised(ctx context.Context, id string, advertised bool) error
	Delete(ctx context.Context, id string) error
	RejectAllByAgent(ctx context.Context, agentEmail string) (int64, error)
	CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error)
	CountAdvertised(ctx context.Context) (int64, error)
}

type propertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(s *Store) PropertyRepository {
	return &propertyRepository{col: s.col(ColProperties)}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return insertOne(ctx, r.col, p)
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return findOne[domain.Property](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *propertyRepository) ListAll(ctx context.Context) ([]domain.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[domain.Property](ctx, r.col, bson.D{}, opts)
}

// ListVerified returns verified listings ascending by minimum price.
func (r *propertyRepository) ListVerified(ctx context.Context) ([]domain.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "min_price", Value: 1}})
	return findMany[domain.Property](ctx, r.col, bson.D{{Key: "status", Value: domain.PropertyVerified}}, opts)
}

func (r *propertyRepository) ListAdvertised(ctx context.Context) ([]domain.Property, error) {
	filter := bson.D{
		{Key: "advertised", Value: true},
		{Key: "status", Value: domain.PropertyVerified},
	}
	return findMany[domain.Property](ctx, r.col, filter)
}

func (r *propertyRepository) ListByAgent(ctx context.Context, agentEmail string) ([]domain.Property, error) {
	return findMany[domain.Property](ctx, r.col, bson.D{{Key: "agent_email", Value: agentEmail}})
}

// Replace is the full overwrite behind PUT: every client-settable field is
// written, while status, advertised flag and timestamps stay server-owned.
func (r *propertyRepository) Replace(ctx context.Context, id string, req *domain.PropertyReq) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "title", Value: req.Title},
		{Key: "location", Value: req.Location},
		{Key: "image", Value: req.Image},
		{Key: "description", Value: req.Description},
		{Key: "agent_name", Value: req.AgentName},
		{Key: "agent_email", Value: req.AgentEmail},
		{Key: "min_price", Value: req.MinPrice},
		{Key: "max_price", Value: req.MaxPrice},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *propertyRepository) SetAdvertised(ctx context.Context, id string, advertised bool) error {
	return updateFields(ctx, r.col, id, bson.D{
		{Key: "advertised", Value: advertised},
		{Key: "updated_at", Value: time.Now()},
	})
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// RejectAllByAgent delists every property owned by the given agent. Used by
// the fraud cascade.
func (r *propertyRepository) RejectAllByAgent(ctx context.Context, agentEmail string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.D{{Key: "agent_email", Value: agentEmail}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: domain.PropertyRejected},
			{Key: "advertised", Value: false},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return 0, wrapError(err)
	}
	return res.ModifiedCount, nil
}

func (r *propertyRepository) CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.D{{Key: "status", Value: status}})
}

func (r *propertyRepository) CountAdvertised(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.D{{Key: "advertised", Value: true}})
}
