package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collaborator is the authoritative join between users and projects.
// Exactly one document per (user_id, project_id), enforced by a unique
// compound index; the permission level is a reference to the catalog.
type Collaborator struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	ProjectID    primitive.ObjectID `bson:"project_id" json:"projectId"`
	PermissionID primitive.ObjectID `bson:"permission_id" json:"permissionId"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	CreatedBy    primitive.ObjectID `bson:"created_by" json:"createdBy"`
	EditedAt     time.Time          `bson:"edited_at" json:"editedAt"`
	EditedBy     primitive.ObjectID `bson:"edited_by" json:"editedBy"`
}
