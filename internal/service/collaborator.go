package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// UserDirectory resolves invited users.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CollaboratorViews assembles the joined member list.
type CollaboratorViews interface {
	CollaboratorsByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.CollaboratorView, error)
}

// CollaboratorService manages project memberships behind the access guard.
type CollaboratorService struct {
	collaborators CollaboratorInserter
	users         UserDirectory
	views         CollaboratorViews
	access        *AccessService
	catalog       *Catalog
	tx            TxRunner
}

// NewCollaboratorService creates a new CollaboratorService.
func NewCollaboratorService(
	collaborators CollaboratorInserter,
	users UserDirectory,
	views CollaboratorViews,
	access *AccessService,
	catalog *Catalog,
	tx TxRunner,
) *CollaboratorService {
	return &CollaboratorService{
		collaborators: collaborators,
		users:         users,
		views:         views,
		access:        access,
		catalog:       catalog,
		tx:            tx,
	}
}

// Invite adds a user to a project with the named permission level. Owner
// only. The invited user is resolved by email; the permission by its
// catalog name. A second membership for the same user is a conflict.
func (s *CollaboratorService) Invite(ctx context.Context, actor primitive.ObjectID, rawProjectID, email string, permission domain.PermissionName) error {
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return err
	}

	permissionID, err := s.catalog.IDByName(permission)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ValidationError{Field: "permission", Message: "unknown permission level"}
		}
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invited user: %w", domain.ErrNotFound)
		}
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.access.Authorize(ctx, actor, projectID, ActionInvite); err != nil {
			return err
		}

		now := time.Now()
		_, err := s.collaborators.Insert(ctx, domain.Collaborator{
			UserID:       user.ID,
			ProjectID:    projectID,
			PermissionID: permissionID,
			CreatedAt:    now,
			CreatedBy:    actor,
			EditedAt:     now,
			EditedBy:     actor,
		})
		return err
	})
}

// List returns the joined member list of a project. Any membership may read
// it.
func (s *CollaboratorService) List(ctx context.Context, actor primitive.ObjectID, rawProjectID string) ([]domain.CollaboratorView, error) {
	projectID, err := domain.ParseID("projectId", rawProjectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.access.Authorize(ctx, actor, projectID, ActionView); err != nil {
		return nil, err
	}
	return s.views.CollaboratorsByProject(ctx, projectID)
}
