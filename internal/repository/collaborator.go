package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sumire/projecthub/internal/domain"
)

// CollaboratorRepository handles the membership join collection.
type CollaboratorRepository struct {
	coll *mongo.Collection
}

// NewCollaboratorRepository creates a new CollaboratorRepository.
func NewCollaboratorRepository(db *mongo.Database) *CollaboratorRepository {
	return &CollaboratorRepository{coll: db.Collection(collCollaborators)}
}

// FindByUserAndProject retrieves the unique membership linking a user
// and a project.
func (r *CollaboratorRepository) FindByUserAndProject(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.Collaborator, error) {
	var c domain.Collaborator
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "project_id": projectID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find collaborator %s/%s: %w", userID.Hex(), projectID.Hex(), err)
	}
	return &c, nil
}

// Insert stores a new membership. A second membership for the same
// (user, project) pair violates the unique index and reports ErrConflict.
func (r *CollaboratorRepository) Insert(ctx context.Context, c domain.Collaborator) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%w: user already collaborates on project", domain.ErrConflict)
		}
		return primitive.NilObjectID, fmt.Errorf("insert collaborator: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert collaborator: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}
