package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sumire/projecthub/internal/domain"
	"github.com/sumire/projecthub/internal/service"
)

// Minimal store stand-ins wiring a real ProjectService behind the handler.

type stubMemberships struct {
	byKey map[string]*domain.Collaborator
}

func (s *stubMemberships) key(u, p primitive.ObjectID) string { return u.Hex() + "/" + p.Hex() }

func (s *stubMemberships) FindByUserAndProject(_ context.Context, userID, projectID primitive.ObjectID) (*domain.Collaborator, error) {
	m, ok := s.byKey[s.key(userID, projectID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (s *stubMemberships) Insert(_ context.Context, c domain.Collaborator) (primitive.ObjectID, error) {
	c.ID = primitive.NewObjectID()
	s.byKey[s.key(c.UserID, c.ProjectID)] = &c
	return c.ID, nil
}

type stubProjects struct {
	updates []map[string]any
}

func (s *stubProjects) Insert(_ context.Context, p domain.Project) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (s *stubProjects) Update(_ context.Context, _ primitive.ObjectID, set map[string]any) error {
	s.updates = append(s.updates, set)
	return nil
}

type stubRefs struct{ all bool }

func (s stubRefs) Exists(context.Context, primitive.ObjectID) (bool, error) { return s.all, nil }
func (s stubRefs) Insert(context.Context, domain.Location) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}
func (s stubRefs) List(context.Context) ([]domain.Location, error) { return nil, nil }

type stubViews struct {
	summaries []domain.ProjectSummary
}

func (s stubViews) ProjectSummaries(context.Context, primitive.ObjectID, domain.ProjectListQuery) ([]domain.ProjectSummary, error) {
	if s.summaries == nil {
		return []domain.ProjectSummary{}, nil
	}
	return s.summaries, nil
}
func (s stubViews) ProjectDetail(context.Context, primitive.ObjectID, primitive.ObjectID) (*domain.ProjectDetail, error) {
	return nil, domain.ErrNotFound
}

type stubTx struct{}

func (stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type projectHandlerFixture struct {
	e           *echo.Echo
	handler     *ProjectHandler
	memberships *stubMemberships
	projects    *stubProjects
	catalog     *service.Catalog

	userID    primitive.ObjectID
	projectID primitive.ObjectID
}

type catalogSeed struct{ permissions []domain.Permission }

func (c *catalogSeed) List(context.Context) ([]domain.Permission, error) { return c.permissions, nil }
func (c *catalogSeed) Seed(_ context.Context, names []domain.PermissionName) error {
	for _, n := range names {
		c.permissions = append(c.permissions, domain.Permission{ID: primitive.NewObjectID(), Name: n})
	}
	return nil
}

func newProjectHandlerFixture(t *testing.T, permission domain.PermissionName) *projectHandlerFixture {
	t.Helper()

	catalog, err := service.LoadCatalog(context.Background(), &catalogSeed{})
	require.NoError(t, err)

	memberships := &stubMemberships{byKey: map[string]*domain.Collaborator{}}
	projects := &stubProjects{}

	userID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()
	if permission != "" {
		permID, err := catalog.IDByName(permission)
		require.NoError(t, err)
		_, err = memberships.Insert(context.Background(), domain.Collaborator{
			UserID: userID, ProjectID: projectID, PermissionID: permID,
		})
		require.NoError(t, err)
	}

	svc := service.NewProjectService(
		projects,
		memberships,
		stubRefs{all: true},
		stubRefs{all: true},
		stubViews{},
		service.NewAccessService(memberships, catalog),
		catalog,
		stubTx{},
	)

	e := echo.New()
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	return &projectHandlerFixture{
		e:           e,
		handler:     NewProjectHandler(svc),
		memberships: memberships,
		projects:    projects,
		catalog:     catalog,
		userID:      userID,
		projectID:   projectID,
	}
}

// do dispatches a request through the handler with the user already
// authenticated, returning the recorded response.
func (f *projectHandlerFixture) do(method, target, body string, h echo.HandlerFunc, pathParam ...string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := f.e.NewContext(req, rec)
	c.Set(contextKeyUserID, f.userID)
	if len(pathParam) == 2 {
		c.SetParamNames(pathParam[0])
		c.SetParamValues(pathParam[1])
	}

	if err := h(c); err != nil {
		f.e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestListUnknownSortKeyIs400(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionOwner)

	rec := f.do(http.MethodGet, "/api/v1/projects?sortBy=alphabetical", "", f.handler.List)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "validation_error", envelope.Error.Code)
}

func TestListEmptyIs200WithEmptyCollection(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionOwner)

	rec := f.do(http.MethodGet, "/api/v1/projects", "", f.handler.List)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestDetailMalformedIDIs400(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionOwner)

	rec := f.do(http.MethodGet, "/api/v1/projects/nope", "", f.handler.Detail, "projectId", "nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetailWithoutMembershipIs403(t *testing.T) {
	f := newProjectHandlerFixture(t, "")

	rec := f.do(http.MethodGet, "/api/v1/projects/"+f.projectID.Hex(), "",
		f.handler.Detail, "projectId", f.projectID.Hex())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateMissingFieldsIs400(t *testing.T) {
	f := newProjectHandlerFixture(t, "")

	rec := f.do(http.MethodPost, "/api/v1/projects", `{"name":"Only name"}`, f.handler.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateIs201(t *testing.T) {
	f := newProjectHandlerFixture(t, "")

	body := `{"name":"Bridge","template":"` + primitive.NewObjectID().Hex() +
		`","location":"` + primitive.NewObjectID().Hex() + `"}`
	rec := f.do(http.MethodPost, "/api/v1/projects", body, f.handler.Create)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestArchiveIs204(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionCanEdit)

	rec := f.do(http.MethodPatch, "/api/v1/projects/"+f.projectID.Hex()+"/archived",
		`{"isArchived":true}`, f.handler.Archive, "projectId", f.projectID.Hex())
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, f.projects.updates, 1)
	assert.Equal(t, true, f.projects.updates[0]["is_archived"])
}

func TestArchiveAsReaderIs403(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionReadOnly)

	rec := f.do(http.MethodPatch, "/api/v1/projects/"+f.projectID.Hex()+"/archived",
		`{"isArchived":true}`, f.handler.Archive, "projectId", f.projectID.Hex())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteFalseIs400(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionOwner)

	rec := f.do(http.MethodPatch, "/api/v1/projects/"+f.projectID.Hex()+"/deleted",
		`{"isDeleted":false}`, f.handler.Delete, "projectId", f.projectID.Hex())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.projects.updates)
}

func TestDeleteAsEditorIs403(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionCanEdit)

	rec := f.do(http.MethodPatch, "/api/v1/projects/"+f.projectID.Hex()+"/deleted",
		`{"isDeleted":true}`, f.handler.Delete, "projectId", f.projectID.Hex())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEditIgnoresAuditFieldsInBody(t *testing.T) {
	f := newProjectHandlerFixture(t, domain.PermissionOwner)

	body := `{"name":"Renamed","editedBy":"` + primitive.NewObjectID().Hex() + `","editedAt":"2020-01-01T00:00:00Z"}`
	rec := f.do(http.MethodPatch, "/api/v1/projects/"+f.projectID.Hex(),
		body, f.handler.Edit, "projectId", f.projectID.Hex())
	assert.Equal(t, http.StatusNoContent, rec.Code)

	require.Len(t, f.projects.updates, 1)
	set := f.projects.updates[0]
	assert.Equal(t, "Renamed", set["name"])
	// The audit stamp is the acting user, not whatever the body claimed.
	assert.Equal(t, f.userID, set["edited_by"])
	assert.NotEqual(t, "2020-01-01T00:00:00Z", set["edited_at"])
}
