// Package mongostore implements the entity stores on MongoDB.
//
// Collections are independent; there is no shared transaction scope. All
// collection names and indexes are managed in ensureIndexes.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/homenest/homenest-api/pkg/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection name constants
const (
	ColUsers      = "users"
	ColProperties = "properties"
	ColWishlists  = "wishlists"
	ColReviews    = "reviews"
	ColOffers     = "offers"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and prepares indexes.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	if err := s.ensureIndexes(connectCtx); err != nil {
		logger.Warn("mongostore: ensure indexes failed", "error", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users: email is the natural key and the authorization lookup path
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		// properties
		{ColProperties, bson.D{{Key: "status", Value: 1}, {Key: "min_price", Value: 1}}, false},
		{ColProperties, bson.D{{Key: "agent_email", Value: 1}}, false},
		{ColProperties, bson.D{{Key: "advertised", Value: 1}}, false},

		// wishlists
		{ColWishlists, bson.D{{Key: "user_email", Value: 1}}, false},

		// reviews
		{ColReviews, bson.D{{Key: "reviewer_email", Value: 1}}, false},
		{ColReviews, bson.D{{Key: "property_id", Value: 1}}, false},
		{ColReviews, bson.D{{Key: "created_at", Value: -1}}, false},

		// offers
		{ColOffers, bson.D{{Key: "buyer_email", Value: 1}}, false},
		{ColOffers, bson.D{{Key: "agent_email", Value: 1}}, false},
		{ColOffers, bson.D{{Key: "property_id", Value: 1}, {Key: "status", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
