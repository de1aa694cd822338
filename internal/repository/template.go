package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TemplateRepository handles the project template reference collection.
type TemplateRepository struct {
	coll *mongo.Collection
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{coll: db.Collection(collTemplates)}
}

// Exists reports whether a template with the given ID is present.
func (r *TemplateRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("count template %s: %w", id.Hex(), err)
	}
	return count > 0, nil
}
