package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View projections are read-only joined shapes returned to clients, distinct
// from the stored entity shapes.

// ProjectSummary is one row of the project list view.
type ProjectSummary struct {
	ID        primitive.ObjectID `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Owner     string             `bson:"owner" json:"owner"`
	Location  string             `bson:"location" json:"location"`
	StartedAt time.Time          `bson:"started_at" json:"startedAt"`
}

// ProjectDetail is the single-project view. Archived projects remain
// viewable here even though the list view hides them.
type ProjectDetail struct {
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	OwnerName   string     `bson:"owner_name" json:"ownerName"`
	Location    string     `bson:"location" json:"location"`
	StartedAt   time.Time  `bson:"started_at" json:"startedAt"`
	EndedAt     *time.Time `bson:"ended_at,omitempty" json:"endedAt,omitempty"`
	IsArchived  bool       `bson:"is_archived" json:"isArchived"`
}

// CollaboratorView is one row of the project member list.
type CollaboratorView struct {
	ID         primitive.ObjectID `bson:"id" json:"id"`
	UserName   string             `bson:"user_name" json:"userName"`
	Email      string             `bson:"email" json:"email"`
	Permission PermissionName     `bson:"permission" json:"permission"`
}

// ProjectListQuery narrows and orders the list view.
type ProjectListQuery struct {
	// Search is a case-insensitive substring match on the project name.
	Search string
	Sort   SortKey
}

// CategoryDetail is a category together with its entries.
type CategoryDetail struct {
	Category Category `json:"category"`
	Entries  []Entry  `json:"entries"`
}
