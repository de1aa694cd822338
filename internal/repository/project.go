package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sumire/projecthub/internal/domain"
)

// ProjectRepository handles project data access operations.
type ProjectRepository struct {
	coll *mongo.Collection
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(collProjects)}
}

// Insert stores a new project and returns its generated ID.
func (r *ProjectRepository) Insert(ctx context.Context, p domain.Project) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert project: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert project: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// Update applies the given field set to a live (non-deleted) project.
// Updating a deleted or unknown project reports ErrNotFound.
func (r *ProjectRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]any) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update project %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
