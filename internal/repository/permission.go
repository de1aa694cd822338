package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sumire/projecthub/internal/domain"
)

// PermissionRepository handles the permission reference collection.
type PermissionRepository struct {
	coll *mongo.Collection
}

// NewPermissionRepository creates a new PermissionRepository.
func NewPermissionRepository(db *mongo.Database) *PermissionRepository {
	return &PermissionRepository{coll: db.Collection(collPermissions)}
}

// List returns every permission document.
func (r *PermissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}

	var permissions []domain.Permission
	if err := cursor.All(ctx, &permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	return permissions, nil
}

// Seed inserts the given permission names, skipping any that already exist.
func (r *PermissionRepository) Seed(ctx context.Context, names []domain.PermissionName) error {
	for _, name := range names {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$setOnInsert": bson.M{"name": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed permission %q: %w", name, err)
		}
	}
	return nil
}
