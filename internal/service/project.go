package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// ProjectStore defines the project data access interface consumed by the
// mutation gate.
type ProjectStore interface {
	Insert(ctx context.Context, p domain.Project) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set map[string]any) error
}

// CollaboratorInserter creates membership records.
type CollaboratorInserter interface {
	Insert(ctx context.Context, c domain.Collaborator) (primitive.ObjectID, error)
}

// TemplateStore checks project template references.
type TemplateStore interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ProjectViews assembles the denormalized read projections.
type ProjectViews interface {
	ProjectSummaries(ctx context.Context, userID primitive.ObjectID, q domain.ProjectListQuery) ([]domain.ProjectSummary, error)
	ProjectDetail(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.ProjectDetail, error)
}

// TxRunner executes a function within a single data-store transaction.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProjectService wraps project reads and guarded mutations. Every mutation
// resolves the caller's membership and permission inside the same
// transaction as the state change, so a permission revoked mid-flight
// cannot slip a stale-authorized write through.
type ProjectService struct {
	projects      ProjectStore
	collaborators CollaboratorInserter
	templates     TemplateStore
	locations     LocationStore
	views         ProjectViews
	access        *AccessService
	catalog       *Catalog
	tx            TxRunner
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projects ProjectStore,
	collaborators CollaboratorInserter,
	templates TemplateStore,
	locations LocationStore,
	views ProjectViews,
	access *AccessService,
	catalog *Catalog,
	tx TxRunner,
) *ProjectService {
	return &ProjectService{
		projects:      projects,
		collaborators: collaborators,
		templates:     templates,
		locations:     locations,
		views:         views,
		access:        access,
		catalog:       catalog,
		tx:            tx,
	}
}

// List returns the caller's project summaries, optionally narrowed by a
// name substring and ordered by one of the closed sort keys.
func (s *ProjectService) List(ctx context.Context, userID primitive.ObjectID, search, sortBy string) ([]domain.ProjectSummary, error) {
	sort, err := domain.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	return s.views.ProjectSummaries(ctx, userID, domain.ProjectListQuery{Search: search, Sort: sort})
}

// Detail returns the single-project view. Membership is checked first, so a
// nonexistent project and a project the caller is not a member of are
// indistinguishable from the outside.
func (s *ProjectService) Detail(ctx context.Context, userID primitive.ObjectID, rawProjectID string) (*domain.ProjectDetail, error) {
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.access.Authorize(ctx, userID, projectID, ActionView); err != nil {
		return nil, err
	}
	return s.views.ProjectDetail(ctx, userID, projectID)
}

// CreateProjectInput carries the caller-supplied fields of a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Template    string
	Location    string
	StartedAt   *time.Time
}

// Create validates the referenced template and location, then inserts the
// project together with its owner membership as one transaction. A failed
// membership insert aborts the whole creation, never leaving a project
// without an owning member.
func (s *ProjectService) Create(ctx context.Context, userID primitive.ObjectID, in CreateProjectInput) (primitive.ObjectID, error) {
	if in.Name == "" {
		return primitive.NilObjectID, &domain.ValidationError{Field: "name", Message: "is required"}
	}
	templateID, err := domain.ParseID("template", in.Template)
	if err != nil {
		return primitive.NilObjectID, err
	}
	locationID, err := domain.ParseID("location", in.Location)
	if err != nil {
		return primitive.NilObjectID, err
	}

	ok, err := s.templates.Exists(ctx, templateID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("template: %w", domain.ErrNotFound)
	}

	ok, err = s.locations.Exists(ctx, locationID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("location: %w", domain.ErrNotFound)
	}

	ownerPermission, err := s.catalog.IDByName(domain.PermissionOwner)
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now()
	startedAt := now
	if in.StartedAt != nil {
		startedAt = *in.StartedAt
	}

	var projectID primitive.ObjectID
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		projectID, err = s.projects.Insert(ctx, domain.Project{
			Name:        in.Name,
			Description: in.Description,
			Owner:       userID,
			Template:    templateID,
			Location:    locationID,
			StartedAt:   startedAt,
			CreatedAt:   now,
			EditedAt:    now,
			EditedBy:    userID,
		})
		if err != nil {
			return err
		}

		_, err = s.collaborators.Insert(ctx, domain.Collaborator{
			UserID:       userID,
			ProjectID:    projectID,
			PermissionID: ownerPermission,
			CreatedAt:    now,
			CreatedBy:    userID,
			EditedAt:     now,
			EditedBy:     userID,
		})
		return err
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return projectID, nil
}

// SetArchived toggles the archive flag. Requires owner or can_edited.
func (s *ProjectService) SetArchived(ctx context.Context, userID primitive.ObjectID, rawProjectID string, archived bool) error {
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.access.Authorize(ctx, userID, projectID, ActionArchive); err != nil {
			return err
		}
		return s.projects.Update(ctx, projectID, s.stampAudit(map[string]any{
			"is_archived": archived,
		}, userID, time.Now()))
	})
}

// SetDeleted soft-deletes a project. Owner only, and one-way: once deleted,
// no endpoint brings a project back.
func (s *ProjectService) SetDeleted(ctx context.Context, userID primitive.ObjectID, rawProjectID string, deleted bool) error {
	if !deleted {
		return &domain.ValidationError{Field: "isDeleted", Message: "deletion cannot be reverted"}
	}
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.access.Authorize(ctx, userID, projectID, ActionDelete); err != nil {
			return err
		}
		return s.projects.Update(ctx, projectID, s.stampAudit(map[string]any{
			"is_deleted": true,
		}, userID, time.Now()))
	})
}

// Edit applies a partial update. Requires owner or can_edited.
func (s *ProjectService) Edit(ctx context.Context, userID primitive.ObjectID, rawProjectID string, patch domain.ProjectPatch) error {
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.access.Authorize(ctx, userID, projectID, ActionEdit); err != nil {
			return err
		}
		return s.projects.Update(ctx, projectID, s.stampAudit(patch.Fields(), userID, time.Now()))
	})
}

// stampAudit applies the audit fields after the caller-supplied set so they
// always win; a patch can never forge edited_at or edited_by.
func (s *ProjectService) stampAudit(set map[string]any, userID primitive.ObjectID, at time.Time) map[string]any {
	set["edited_at"] = at
	set["edited_by"] = userID
	return set
}
