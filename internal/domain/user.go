package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAgent, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User is an account record. Role is the sole authorization signal and is
// re-read from storage on every guarded request, never trusted from a token.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      Role      `bson:"role" json:"role"`
	Fraud     bool      `bson:"fraud" json:"fraud"`
	AuthUID   string    `bson:"auth_uid" json:"auth_uid,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type UserCreateReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	AuthUID string `json:"auth_uid"`
}
