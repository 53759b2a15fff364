package domain

import "time"

// WishlistItem is a denormalized snapshot of a property saved by a user.
// No uniqueness is enforced; saving the same property twice creates two
// entries.
type WishlistItem struct {
	ID         string         `bson:"_id" json:"id"`
	UserEmail  string         `bson:"user_email" json:"user_email"`
	PropertyID string         `bson:"property_id" json:"property_id"`
	Title      string         `bson:"title" json:"title"`
	Location   string         `bson:"location" json:"location"`
	Image      string         `bson:"image" json:"image,omitempty"`
	AgentName  string         `bson:"agent_name" json:"agent_name"`
	Status     PropertyStatus `bson:"status" json:"status"`
	MinPrice   float64        `bson:"min_price" json:"min_price"`
	MaxPrice   float64        `bson:"max_price" json:"max_price"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}

type WishlistReq struct {
	UserEmail  string  `json:"user_email"`
	PropertyID string  `json:"property_id"`
	Title      string  `json:"title"`
	Location   string  `json:"location"`
	Image      string  `json:"image"`
	AgentName  string  `json:"agent_name"`
	Status     string  `json:"status"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}
