package domain

import "time"

type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "pending"
	PropertyVerified PropertyStatus = "verified"
	PropertyRejected PropertyStatus = "rejected"
)

func ParsePropertyStatus(s string) (PropertyStatus, bool) {
	switch PropertyStatus(s) {
	case PropertyPending, PropertyVerified, PropertyRejected:
		return PropertyStatus(s), true
	}
	return "", false
}

// Property is a listing owned by an agent. Status transitions are admin-only;
// new listings always start at pending.
type Property struct {
	ID          string         `bson:"_id" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Location    string         `bson:"location" json:"location"`
	Image       string         `bson:"image" json:"image,omitempty"`
	Description string         `bson:"description" json:"description,omitempty"`
	AgentName   string         `bson:"agent_name" json:"agent_name"`
	AgentEmail  string         `bson:"agent_email" json:"agent_email"`
	Status      PropertyStatus `bson:"status" json:"status"`
	Advertised  bool           `bson:"advertised" json:"advertised"`
	MinPrice    float64        `bson:"min_price" json:"min_price"`
	MaxPrice    float64        `bson:"max_price" json:"max_price"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}

type PropertyReq struct {
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	AgentName   string  `json:"agent_name"`
	AgentEmail  string  `json:"agent_email"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
}
