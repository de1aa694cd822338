package service

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// PermissionStore defines the permission data access interface consumed by
// the catalog.
type PermissionStore interface {
	List(ctx context.Context) ([]domain.Permission, error)
	Seed(ctx context.Context, names []domain.PermissionName) error
}

// Catalog is the process-wide permission registry. The permission collection
// is immutable reference data, so it is loaded once at startup into
// name→id and id→name maps instead of being queried on every request.
// Reload refreshes the maps after an explicit reference-data change.
type Catalog struct {
	store PermissionStore

	mu     sync.RWMutex
	byName map[domain.PermissionName]primitive.ObjectID
	byID   map[primitive.ObjectID]domain.PermissionName
}

// LoadCatalog seeds the default permissions when the collection is empty and
// builds the in-memory registry. Every default permission must resolve or
// startup fails.
func LoadCatalog(ctx context.Context, store PermissionStore) (*Catalog, error) {
	c := &Catalog{store: store}

	if err := store.Seed(ctx, domain.DefaultPermissions); err != nil {
		return nil, fmt.Errorf("seed permissions: %w", err)
	}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, name := range domain.DefaultPermissions {
		if _, ok := c.byName[name]; !ok {
			return nil, fmt.Errorf("permission %q missing from catalog", name)
		}
	}
	return c, nil
}

// Reload replaces the in-memory maps with the current collection contents.
func (c *Catalog) Reload(ctx context.Context) error {
	permissions, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load permission catalog: %w", err)
	}

	byName := make(map[domain.PermissionName]primitive.ObjectID, len(permissions))
	byID := make(map[primitive.ObjectID]domain.PermissionName, len(permissions))
	for _, p := range permissions {
		byName[p.Name] = p.ID
		byID[p.ID] = p.Name
	}

	c.mu.Lock()
	c.byName = byName
	c.byID = byID
	c.mu.Unlock()
	return nil
}

// IDByName resolves a permission name to its identity. Name is the stable
// key of the catalog.
func (c *Catalog) IDByName(name domain.PermissionName) (primitive.ObjectID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byName[name]
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("permission %q: %w", name, domain.ErrNotFound)
	}
	return id, nil
}

// NameByID resolves a permission identity back to its name.
func (c *Catalog) NameByID(id primitive.ObjectID) (domain.PermissionName, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.byID[id]
	if !ok {
		return "", fmt.Errorf("permission %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return name, nil
}
