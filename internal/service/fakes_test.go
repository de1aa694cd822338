package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
)

// In-memory stand-ins for the repository layer. They record every call so
// tests can assert ordering (e.g. no store access after malformed input).

type fakePermissionStore struct {
	permissions []domain.Permission
	seeded      []domain.PermissionName
}

func (f *fakePermissionStore) List(_ context.Context) ([]domain.Permission, error) {
	return f.permissions, nil
}

func (f *fakePermissionStore) Seed(_ context.Context, names []domain.PermissionName) error {
	f.seeded = append(f.seeded, names...)
	for _, name := range names {
		exists := false
		for _, p := range f.permissions {
			if p.Name == name {
				exists = true
				break
			}
		}
		if !exists {
			f.permissions = append(f.permissions, domain.Permission{ID: primitive.NewObjectID(), Name: name})
		}
	}
	return nil
}

type fakeMembershipStore struct {
	memberships map[string]*domain.Collaborator
	finds       int
	insertErr   error
	inserted    []domain.Collaborator
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{memberships: make(map[string]*domain.Collaborator)}
}

func membershipKey(userID, projectID primitive.ObjectID) string {
	return userID.Hex() + "/" + projectID.Hex()
}

func (f *fakeMembershipStore) grant(userID, projectID, permissionID primitive.ObjectID) {
	f.memberships[membershipKey(userID, projectID)] = &domain.Collaborator{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ProjectID:    projectID,
		PermissionID: permissionID,
	}
}

func (f *fakeMembershipStore) revoke(userID, projectID primitive.ObjectID) {
	delete(f.memberships, membershipKey(userID, projectID))
}

func (f *fakeMembershipStore) FindByUserAndProject(_ context.Context, userID, projectID primitive.ObjectID) (*domain.Collaborator, error) {
	f.finds++
	m, ok := f.memberships[membershipKey(userID, projectID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembershipStore) Insert(_ context.Context, c domain.Collaborator) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if _, ok := f.memberships[membershipKey(c.UserID, c.ProjectID)]; ok {
		return primitive.NilObjectID, fmt.Errorf("%w: user already collaborates on project", domain.ErrConflict)
	}
	c.ID = primitive.NewObjectID()
	f.memberships[membershipKey(c.UserID, c.ProjectID)] = &c
	f.inserted = append(f.inserted, c)
	return c.ID, nil
}

type fakeProjectStore struct {
	inserted  []domain.Project
	updates   []map[string]any
	updateErr error
}

func (f *fakeProjectStore) Insert(_ context.Context, p domain.Project) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, p)
	return p.ID, nil
}

func (f *fakeProjectStore) Update(_ context.Context, _ primitive.ObjectID, set map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, set)
	return nil
}

type fakeReferenceStore struct {
	ids map[primitive.ObjectID]bool
}

func newFakeReferenceStore(ids ...primitive.ObjectID) *fakeReferenceStore {
	f := &fakeReferenceStore{ids: make(map[primitive.ObjectID]bool)}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f
}

func (f *fakeReferenceStore) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeReferenceStore) Insert(_ context.Context, l domain.Location) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	f.ids[id] = true
	return id, nil
}

func (f *fakeReferenceStore) List(_ context.Context) ([]domain.Location, error) {
	return nil, nil
}

type fakeViews struct {
	summaries     []domain.ProjectSummary
	summaryCalls  int
	detail        *domain.ProjectDetail
	collaborators []domain.CollaboratorView
}

func (f *fakeViews) ProjectSummaries(_ context.Context, _ primitive.ObjectID, _ domain.ProjectListQuery) ([]domain.ProjectSummary, error) {
	f.summaryCalls++
	return f.summaries, nil
}

func (f *fakeViews) ProjectDetail(_ context.Context, _, _ primitive.ObjectID) (*domain.ProjectDetail, error) {
	if f.detail == nil {
		return nil, domain.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeViews) CollaboratorsByProject(_ context.Context, _ primitive.ObjectID) ([]domain.CollaboratorView, error) {
	return f.collaborators, nil
}

type fakeUserDirectory struct {
	users map[string]*domain.User
}

func (f *fakeUserDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// fakeTx runs the function directly. When the function fails it restores the
// project store to its pre-transaction state, mirroring a real abort.
type fakeTx struct {
	projects *fakeProjectStore
	aborts   int
}

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var snapInserted, snapUpdates int
	if t.projects != nil {
		snapInserted = len(t.projects.inserted)
		snapUpdates = len(t.projects.updates)
	}
	if err := fn(ctx); err != nil {
		if t.projects != nil {
			t.projects.inserted = t.projects.inserted[:snapInserted]
			t.projects.updates = t.projects.updates[:snapUpdates]
		}
		t.aborts++
		return err
	}
	return nil
}

// newTestCatalog builds a loaded catalog backed by a seeded fake store.
func newTestCatalog() (*Catalog, *fakePermissionStore) {
	store := &fakePermissionStore{}
	catalog, err := LoadCatalog(context.Background(), store)
	if err != nil {
		panic(err)
	}
	return catalog, store
}

func permissionID(c *Catalog, name domain.PermissionName) primitive.ObjectID {
	id, err := c.IDByName(name)
	if err != nil {
		panic(err)
	}
	return id
}
