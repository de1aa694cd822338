package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

type collaboratorFixture struct {
	svc         *CollaboratorService
	catalog     *Catalog
	memberships *fakeMembershipStore
	views       *fakeViews

	owner     primitive.ObjectID
	projectID primitive.ObjectID
	invitee   *domain.User
}

func newCollaboratorFixture() *collaboratorFixture {
	catalog, _ := newTestCatalog()
	memberships := newFakeMembershipStore()
	views := &fakeViews{}

	owner := primitive.NewObjectID()
	projectID := primitive.NewObjectID()
	memberships.grant(owner, projectID, permissionID(catalog, domain.PermissionOwner))

	invitee := &domain.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Name: "Ada"}
	users := &fakeUserDirectory{users: map[string]*domain.User{invitee.Email: invitee}}

	svc := NewCollaboratorService(
		memberships,
		users,
		views,
		NewAccessService(memberships, catalog),
		catalog,
		&fakeTx{},
	)

	return &collaboratorFixture{
		svc:         svc,
		catalog:     catalog,
		memberships: memberships,
		views:       views,
		owner:       owner,
		projectID:   projectID,
		invitee:     invitee,
	}
}

func TestInviteAddsMembership(t *testing.T) {
	f := newCollaboratorFixture()

	err := f.svc.Invite(context.Background(), f.owner, f.projectID.Hex(), f.invitee.Email, domain.PermissionCanEdit)
	require.NoError(t, err)

	require.Len(t, f.memberships.inserted, 1)
	m := f.memberships.inserted[0]
	assert.Equal(t, f.invitee.ID, m.UserID)
	assert.Equal(t, f.projectID, m.ProjectID)
	assert.Equal(t, permissionID(f.catalog, domain.PermissionCanEdit), m.PermissionID)
	assert.Equal(t, f.owner, m.CreatedBy)
}

func TestInviteIsOwnerOnly(t *testing.T) {
	f := newCollaboratorFixture()

	editor := primitive.NewObjectID()
	f.memberships.grant(editor, f.projectID, permissionID(f.catalog, domain.PermissionCanEdit))

	err := f.svc.Invite(context.Background(), editor, f.projectID.Hex(), f.invitee.Email, domain.PermissionReadOnly)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.memberships.inserted)
}

func TestInviteUnknownPermissionName(t *testing.T) {
	f := newCollaboratorFixture()

	var validationErr *domain.ValidationError
	err := f.svc.Invite(context.Background(), f.owner, f.projectID.Hex(), f.invitee.Email, "superuser")
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, f.memberships.finds, "permission name resolves before any membership lookup")
}

func TestInviteUnknownUser(t *testing.T) {
	f := newCollaboratorFixture()

	err := f.svc.Invite(context.Background(), f.owner, f.projectID.Hex(), "ghost@example.com", domain.PermissionReadOnly)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInviteTwiceConflicts(t *testing.T) {
	f := newCollaboratorFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Invite(ctx, f.owner, f.projectID.Hex(), f.invitee.Email, domain.PermissionReadOnly))

	err := f.svc.Invite(ctx, f.owner, f.projectID.Hex(), f.invitee.Email, domain.PermissionCanEdit)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListCollaboratorsRequiresMembership(t *testing.T) {
	f := newCollaboratorFixture()
	f.views.collaborators = []domain.CollaboratorView{{UserName: "Ada", Permission: domain.PermissionOwner}}

	_, err := f.svc.List(context.Background(), primitive.NewObjectID(), f.projectID.Hex())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	views, err := f.svc.List(context.Background(), f.owner, f.projectID.Hex())
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
