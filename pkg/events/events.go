package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/homenest/homenest-api/pkg/logger"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	OfferCreated  = "offer.created"
	OfferAccepted = "offer.accepted"
	OfferRejected = "offer.rejected"
	OfferBought   = "offer.bought"

	PropertyStatusChanged = "property.status.changed"

	UserDeleted = "user.deleted"
)

// Event payloads
type OfferCreatedEvent struct {
	OfferID    string    `json:"offer_id"`
	PropertyID string    `json:"property_id"`
	BuyerEmail string    `json:"buyer_email"`
	AgentEmail string    `json:"agent_email"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

type OfferAcceptedEvent struct {
	OfferID       string    `json:"offer_id"`
	PropertyID    string    `json:"property_id"`
	BuyerEmail    string    `json:"buyer_email"`
	RejectedCount int64     `json:"rejected_count"`
	AcceptedAt    time.Time `json:"accepted_at"`
}

type OfferRejectedEvent struct {
	OfferID    string    `json:"offer_id"`
	PropertyID string    `json:"property_id"`
	BuyerEmail string    `json:"buyer_email"`
	RejectedAt time.Time `json:"rejected_at"`
}

type OfferBoughtEvent struct {
	OfferID       string    `json:"offer_id"`
	PropertyID    string    `json:"property_id"`
	BuyerEmail    string    `json:"buyer_email"`
	TransactionID string    `json:"transaction_id"`
	BoughtAt      time.Time `json:"bought_at"`
}

type PropertyStatusChangedEvent struct {
	PropertyID string    `json:"property_id"`
	AgentEmail string    `json:"agent_email"`
	Status     string    `json:"status"`
	ChangedAt  time.Time `json:"changed_at"`
}

type UserDeletedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	DeletedAt time.Time `json:"deleted_at"`
}
