package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// CategoryStore defines category and entry data access.
type CategoryStore interface {
	Insert(ctx context.Context, c domain.Category) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, set map[string]any) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	InsertEntry(ctx context.Context, e domain.Entry) (primitive.ObjectID, error)
	EntriesByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.Entry, error)
	EntriesByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Entry, error)
}

// CategoryService manages project-scoped categories and their entries. It
// reuses the project access guard through the category → project
// indirection: every operation loads the category, then authorizes against
// its project.
type CategoryService struct {
	categories CategoryStore
	access     *AccessService
	tx         TxRunner
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories CategoryStore, access *AccessService, tx TxRunner) *CategoryService {
	return &CategoryService{categories: categories, access: access, tx: tx}
}

// resolve parses the raw category id, loads the category, and authorizes
// the actor for the given action on the category's project.
func (s *CategoryService) resolve(ctx context.Context, actor primitive.ObjectID, rawCategoryID string, action Action) (*domain.Category, error) {
	categoryID, err := domain.ParseID("categoryId", rawCategoryID)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, actor, category.ProjectID, action); err != nil {
		return nil, err
	}
	return category, nil
}

// Create adds a category to a project. Requires owner or can_edited.
func (s *CategoryService) Create(ctx context.Context, actor primitive.ObjectID, rawProjectID, name string, attributes []string) (primitive.ObjectID, error) {
	if name == "" {
		return primitive.NilObjectID, &domain.ValidationError{Field: "name", Message: "is required"}
	}
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	var categoryID primitive.ObjectID
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.access.Authorize(ctx, actor, projectID, ActionEdit); err != nil {
			return err
		}

		now := time.Now()
		categoryID, err = s.categories.Insert(ctx, domain.Category{
			ProjectID:  projectID,
			Name:       name,
			Attributes: attributes,
			CreatedAt:  now,
			EditedAt:   now,
			EditedBy:   actor,
		})
		return err
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return categoryID, nil
}

// Get returns a category together with its entries. Any membership on the
// category's project may read it.
func (s *CategoryService) Get(ctx context.Context, actor primitive.ObjectID, rawCategoryID string) (*domain.CategoryDetail, error) {
	category, err := s.resolve(ctx, actor, rawCategoryID, ActionView)
	if err != nil {
		return nil, err
	}

	entries, err := s.categories.EntriesByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &domain.CategoryDetail{Category: *category, Entries: entries}, nil
}

// Attributes returns the category's declared attribute names.
func (s *CategoryService) Attributes(ctx context.Context, actor primitive.ObjectID, rawCategoryID string) ([]string, error) {
	category, err := s.resolve(ctx, actor, rawCategoryID, ActionView)
	if err != nil {
		return nil, err
	}
	return category.Attributes, nil
}

// CreateEntry adds an entry under a category. Requires owner or can_edited;
// entry values are restricted to the category's declared attributes.
func (s *CategoryService) CreateEntry(ctx context.Context, actor primitive.ObjectID, rawCategoryID string, values map[string]string) (primitive.ObjectID, error) {
	category, err := s.resolve(ctx, actor, rawCategoryID, ActionEdit)
	if err != nil {
		return primitive.NilObjectID, err
	}

	declared := make(map[string]struct{}, len(category.Attributes))
	for _, a := range category.Attributes {
		declared[a] = struct{}{}
	}
	for key := range values {
		if _, ok := declared[key]; !ok {
			return primitive.NilObjectID, &domain.ValidationError{
				Field:   "values",
				Message: fmt.Sprintf("attribute %q is not declared on the category", key),
			}
		}
	}

	return s.categories.InsertEntry(ctx, domain.Entry{
		CategoryID: category.ID,
		ProjectID:  category.ProjectID,
		Values:     values,
		CreatedAt:  time.Now(),
		CreatedBy:  actor,
	})
}

// CategoryPatch is the closed set of caller-editable category fields.
type CategoryPatch struct {
	Name       *string
	Attributes *[]string
}

// Edit applies a partial category update. Requires owner or can_edited.
// Audit stamps are applied after the caller fields.
func (s *CategoryService) Edit(ctx context.Context, actor primitive.ObjectID, rawCategoryID string, patch CategoryPatch) error {
	category, err := s.resolve(ctx, actor, rawCategoryID, ActionEdit)
	if err != nil {
		return err
	}

	set := make(map[string]any, 4)
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Attributes != nil {
		set["attributes"] = *patch.Attributes
	}
	set["edited_at"] = time.Now()
	set["edited_by"] = actor

	return s.categories.Update(ctx, category.ID, set)
}

// Delete removes a category and all of its entries. Requires owner or
// can_edited.
func (s *CategoryService) Delete(ctx context.Context, actor primitive.ObjectID, rawCategoryID string) error {
	category, err := s.resolve(ctx, actor, rawCategoryID, ActionEdit)
	if err != nil {
		return err
	}
	return s.categories.Delete(ctx, category.ID)
}

// AllEntries returns every entry across the project's categories. Any
// membership may read them.
func (s *CategoryService) AllEntries(ctx context.Context, actor primitive.ObjectID, rawProjectID string) ([]domain.Entry, error) {
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.access.Authorize(ctx, actor, projectID, ActionView); err != nil {
		return nil, err
	}
	return s.categories.EntriesByProject(ctx, projectID)
}
