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

// CategoryRepository handles categories and their entries.
type CategoryRepository struct {
	categories *mongo.Collection
	entries    *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories: db.Collection(collCategories),
		entries:    db.Collection(collEntries),
	}
}

// Insert stores a new category and returns its generated ID.
func (r *CategoryRepository) Insert(ctx context.Context, c domain.Category) (primitive.ObjectID, error) {
	res, err := r.categories.InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert category: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert category: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindByID retrieves a category by its ID.
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var c domain.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find category %s: %w", id.Hex(), err)
	}
	return &c, nil
}

// Update applies the given field set to a category.
func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, set map[string]any) error {
	res, err := r.categories.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update category %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a category together with all of its entries.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.entries.DeleteMany(ctx, bson.M{"category_id": id}); err != nil {
		return fmt.Errorf("delete entries of category %s: %w", id.Hex(), err)
	}
	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InsertEntry stores a new entry under a category.
func (r *CategoryRepository) InsertEntry(ctx context.Context, e domain.Entry) (primitive.ObjectID, error) {
	res, err := r.entries.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert entry: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert entry: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// EntriesByCategory returns every entry under a category.
func (r *CategoryRepository) EntriesByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.Entry, error) {
	return r.listEntries(ctx, bson.M{"category_id": categoryID})
}

// EntriesByProject returns every entry across all of a project's categories.
func (r *CategoryRepository) EntriesByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Entry, error) {
	return r.listEntries(ctx, bson.M{"project_id": projectID})
}

func (r *CategoryRepository) listEntries(ctx context.Context, filter bson.M) ([]domain.Entry, error) {
	cursor, err := r.entries.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]domain.Entry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}
