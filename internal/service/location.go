package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// LocationStore defines the location reference-data interface.
type LocationStore interface {
	Insert(ctx context.Context, l domain.Location) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Location, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// LocationService manages the location reference data. Locations are not
// project-scoped, so no membership guard applies.
type LocationService struct {
	locations LocationStore
}

// NewLocationService creates a new LocationService.
func NewLocationService(locations LocationStore) *LocationService {
	return &LocationService{locations: locations}
}

// Create adds a location.
func (s *LocationService) Create(ctx context.Context, name, localName string) (primitive.ObjectID, error) {
	if name == "" {
		return primitive.NilObjectID, &domain.ValidationError{Field: "name", Message: "is required"}
	}
	return s.locations.Insert(ctx, domain.Location{Name: name, LocalName: localName})
}

// List returns every location.
func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}
