package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthProvider identifies the OAuth provider a user signed up with.
type AuthProvider string

const (
	AuthProviderGoogle AuthProvider = "google"
	AuthProviderGitHub AuthProvider = "github"
)

// User represents an authenticated account.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Provider   AuthProvider       `bson:"provider" json:"provider"`
	ProviderID string             `bson:"provider_id" json:"providerId"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name" json:"name"`
	AvatarURL  *string            `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
