package domain

import "time"

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferBought   OfferStatus = "bought"
)

func ParseOfferStatus(s string) (OfferStatus, bool) {
	switch OfferStatus(s) {
	case OfferPending, OfferAccepted, OfferRejected, OfferBought:
		return OfferStatus(s), true
	}
	return "", false
}

// Offer is a purchase offer on a property.
//
// Lifecycle: pending -> accepted | rejected, accepted -> bought. Accepting
// one offer rejects every other pending offer on the same property.
type Offer struct {
	ID            string      `bson:"_id" json:"id"`
	PropertyID    string      `bson:"property_id" json:"property_id"`
	Title         string      `bson:"title" json:"title"`
	Location      string      `bson:"location" json:"location"`
	AgentEmail    string      `bson:"agent_email" json:"agent_email"`
	BuyerEmail    string      `bson:"buyer_email" json:"buyer_email"`
	BuyerName     string      `bson:"buyer_name" json:"buyer_name"`
	Amount        float64     `bson:"amount" json:"amount"`
	Status        OfferStatus `bson:"status" json:"status"`
	TransactionID string      `bson:"transaction_id" json:"transaction_id,omitempty"`
	BuyingDate    time.Time   `bson:"buying_date" json:"buying_date"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updated_at"`
}

type OfferReq struct {
	PropertyID string    `json:"property_id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	AgentEmail string    `json:"agent_email"`
	BuyerEmail string    `json:"buyer_email"`
	BuyerName  string    `json:"buyer_name"`
	Amount     float64   `json:"amount"`
	BuyingDate time.Time `json:"buying_date"`
}
