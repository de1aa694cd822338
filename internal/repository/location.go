package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sumire/projecthub/internal/domain"
)

// LocationRepository handles the location reference collection.
type LocationRepository struct {
	coll *mongo.Collection
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{coll: db.Collection(collLocations)}
}

// Insert stores a new location and returns its generated ID.
func (r *LocationRepository) Insert(ctx context.Context, l domain.Location) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert location: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert location: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// List returns every location.
func (r *LocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	locations := make([]domain.Location, 0)
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	return locations, nil
}

// Exists reports whether a location with the given ID is present.
func (r *LocationRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("count location %s: %w", id.Hex(), err)
	}
	return count > 0, nil
}
