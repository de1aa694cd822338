package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a collaborative project. Projects are never hard-deleted
// through the API; IsArchived and IsDeleted are soft state flags.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Template    primitive.ObjectID `bson:"template" json:"template"`
	Location    primitive.ObjectID `bson:"location" json:"location"`
	StartedAt   time.Time          `bson:"started_at" json:"startedAt"`
	EndedAt     *time.Time         `bson:"ended_at,omitempty" json:"endedAt,omitempty"`
	IsArchived  bool               `bson:"is_archived" json:"isArchived"`
	IsDeleted   bool               `bson:"is_deleted" json:"isDeleted"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	EditedAt    time.Time          `bson:"edited_at" json:"editedAt"`
	EditedBy    primitive.ObjectID `bson:"edited_by" json:"editedBy"`
}

// ProjectPatch is the closed set of caller-editable project fields. Audit
// fields are stamped by the mutation gate and are not part of the patch.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartedAt   *time.Time
	EndedAt     *time.Time
}

// Fields returns the bson field names and values the patch sets. Nil entries
// are omitted.
func (p ProjectPatch) Fields() map[string]any {
	set := make(map[string]any, 4)
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.StartedAt != nil {
		set["started_at"] = *p.StartedAt
	}
	if p.EndedAt != nil {
		set["ended_at"] = *p.EndedAt
	}
	return set
}

// Template is reference data a project is created from.
type Template struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}
