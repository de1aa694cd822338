package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a project-scoped classification. Attributes declares the
// field names entries under this category may carry.
type Category struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID  primitive.ObjectID `bson:"project_id" json:"projectId"`
	Name       string             `bson:"name" json:"name"`
	Attributes []string           `bson:"attributes" json:"attributes"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	EditedAt   time.Time          `bson:"edited_at" json:"editedAt"`
	EditedBy   primitive.ObjectID `bson:"edited_by" json:"editedBy"`
}

// Entry is a record under a category. Values is keyed by the category's
// declared attributes.
type Entry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID primitive.ObjectID `bson:"category_id" json:"categoryId"`
	ProjectID  primitive.ObjectID `bson:"project_id" json:"projectId"`
	Values     map[string]string  `bson:"values" json:"values"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
}
