package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/source"
)

// stubStore serves one workspace's fixed entity set.
type stubStore struct {
	tasks    []entity.Task
	users    []entity.User
	branches []entity.Branch
}

func (s *stubStore) WorkspaceTasks(ctx context.Context, workspaceID string) ([]entity.Task, error) {
	return s.tasks, nil
}

func (s *stubStore) AssignedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	return s.tasks, nil
}

func (s *stubStore) CreatedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	return nil, nil
}

func (s *stubStore) WorkspaceProjects(ctx context.Context, workspaceID string) ([]entity.Project, error) {
	return nil, nil
}

func (s *stubStore) AccessibleProjects(ctx context.Context, workspaceID, userID string, role entity.Role) ([]entity.Project, error) {
	return nil, nil
}

func (s *stubStore) WorkspaceUsers(ctx context.Context, workspaceID string) ([]entity.User, error) {
	return s.users, nil
}

func (s *stubStore) User(ctx context.Context, userID string) (*entity.User, error) {
	return nil, source.ErrNotFound
}

func (s *stubStore) WorkspaceBranches(ctx context.Context, workspaceID string) ([]entity.Branch, error) {
	return s.branches, nil
}

func (s *stubStore) Branch(ctx context.Context, branchID string) (*entity.Branch, error) {
	return nil, source.ErrNotFound
}

func (s *stubStore) Workspace(ctx context.Context, workspaceID string) (*entity.Workspace, error) {
	return &entity.Workspace{ID: workspaceID, Type: entity.WorkspaceMain}, nil
}

func (s *stubStore) AccessibleWorkspaces(ctx context.Context, userID string) (entity.AccessibleWorkspaces, error) {
	return entity.AccessibleWorkspaces{}, nil
}

func testRouter() *Router {
	store := &stubStore{
		tasks: []entity.Task{
			{ID: "t1", AssigneeID: "u1", CreatedBy: "u1", Status: entity.StatusCompleted,
				CreatedAt: "2026-08-20T00:00:00Z", UpdatedAt: "2026-08-21T00:00:00Z"},
		},
		users:    []entity.User{{ID: "u1", BranchID: "b1"}},
		branches: []entity.Branch{{ID: "b1", Name: "North"}},
	}
	return NewRouter(engine.New(store, nil), nil)
}

func get(t *testing.T, r *Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRouter_Dashboard(t *testing.T) {
	rec := get(t, testRouter(), "/v1/dashboard?workspace=ws1&user=u1&role=admin")
	require.Equal(t, http.StatusOK, rec.Code)

	var view engine.DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.False(t, view.Partial)
	assert.Len(t, view.Branches, 1)
	assert.Equal(t, "North", view.Branches[0].Branch)
}

func TestRouter_StatsSubset(t *testing.T) {
	rec := get(t, testRouter(), "/v1/stats?workspace=ws1&user=u1&role=admin")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "stats")
	assert.Contains(t, body, "partial")
	assert.NotContains(t, body, "branches")
}

func TestRouter_TrendAndBranches(t *testing.T) {
	r := testRouter()

	rec := get(t, r, "/v1/trend?workspace=ws1&user=u1&role=member")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, r, "/v1/branches?workspace=ws1&user=u1&role=owner")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Member(t *testing.T) {
	rec := get(t, testRouter(), "/v1/members/u1?workspace=ws1&user=u1&role=admin")
	require.Equal(t, http.StatusOK, rec.Code)

	var view engine.MemberView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "u1", view.MemberID)
	assert.Equal(t, 1, view.Stats.TotalTasks)
}

func TestRouter_MissingIdentityIsBadRequest(t *testing.T) {
	rec := get(t, testRouter(), "/v1/dashboard?workspace=ws1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestRouter_RejectsBadDateParams(t *testing.T) {
	r := testRouter()

	rec := get(t, r, "/v1/stats?workspace=ws1&user=u1&from=2026-01-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "from without to")

	rec = get(t, r, "/v1/stats?workspace=ws1&user=u1&from=2026-02-01&to=2026-01-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "inverted range")

	rec = get(t, r, "/v1/stats?workspace=ws1&user=u1&role=sudo")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown role")
}

func TestRouter_Health(t *testing.T) {
	rec := get(t, testRouter(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_RequestID(t *testing.T) {
	r := testRouter()

	rec := get(t, r, "/healthz")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "given-id", rec.Header().Get("X-Request-ID"))
}
