package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// MembershipStore defines the collaborator lookup interface consumed by the
// access guard.
type MembershipStore interface {
	FindByUserAndProject(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.Collaborator, error)
}

// Action is an operation class a caller may attempt on a project.
type Action string

const (
	ActionView    Action = "view"
	ActionEdit    Action = "edit"
	ActionArchive Action = "archive"
	ActionDelete  Action = "delete"
	ActionInvite  Action = "invite"
)

// allowedPermissions maps each action onto the set of permission names that
// may perform it. A nil set means membership existence alone suffices. Every
// guarded endpoint goes through this one table; new resources add rows here
// instead of re-implementing the comparison.
var allowedPermissions = map[Action][]domain.PermissionName{
	ActionView:    nil,
	ActionEdit:    {domain.PermissionOwner, domain.PermissionCanEdit},
	ActionArchive: {domain.PermissionOwner, domain.PermissionCanEdit},
	ActionDelete:  {domain.PermissionOwner},
	ActionInvite:  {domain.PermissionOwner},
}

// AccessService resolves memberships and decides allow/deny for project
// operations.
type AccessService struct {
	memberships MembershipStore
	catalog     *Catalog
}

// NewAccessService creates a new AccessService.
func NewAccessService(memberships MembershipStore, catalog *Catalog) *AccessService {
	return &AccessService{memberships: memberships, catalog: catalog}
}

// Membership finds the unique membership linking the user and project.
// Absence is not an error: it returns (nil, nil) and the guard turns it
// into a denial.
func (s *AccessService) Membership(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.Collaborator, error) {
	m, err := s.memberships.FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Authorize resolves the caller's membership and checks it against the
// action's allowed permission set. It returns the membership on success and
// ErrForbidden on denial.
func (s *AccessService) Authorize(ctx context.Context, userID, projectID primitive.ObjectID, action Action) (*domain.Collaborator, error) {
	allowed, ok := allowedPermissions[action]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", action)
	}

	m, err := s.Membership(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.Forbiddenf("no access to this project")
	}
	if len(allowed) == 0 {
		return m, nil
	}

	name, err := s.catalog.NameByID(m.PermissionID)
	if err != nil {
		return nil, fmt.Errorf("resolve membership permission: %w", err)
	}
	for _, a := range allowed {
		if name == a {
			return m, nil
		}
	}
	return nil, domain.Forbiddenf("permission to %s this project is missing", action)
}
