package domain

import "time"

// Review is immutable once created except for deletion.
type Review struct {
	ID            string    `bson:"_id" json:"id"`
	PropertyID    string    `bson:"property_id" json:"property_id"`
	PropertyTitle string    `bson:"property_title" json:"property_title"`
	AgentName     string    `bson:"agent_name" json:"agent_name"`
	ReviewerEmail string    `bson:"reviewer_email" json:"reviewer_email"`
	ReviewerName  string    `bson:"reviewer_name" json:"reviewer_name"`
	Rating        int       `bson:"rating" json:"rating"`
	Text          string    `bson:"text" json:"text"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

type ReviewReq struct {
	PropertyID    string `json:"property_id"`
	PropertyTitle string `json:"property_title"`
	AgentName     string `json:"agent_name"`
	ReviewerEmail string `json:"reviewer_email"`
	ReviewerName  string `json:"reviewer_name"`
	Rating        int    `json:"rating"`
	Text          string `json:"text"`
}
