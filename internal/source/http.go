package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// HTTPStore implements the read ports against the workspace suite's
// document-store HTTP API.
type HTTPStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPStore creates an HTTPStore. timeout applies per request.
func NewHTTPStore(baseURL, apiKey string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// get performs a GET request and decodes the JSON response body into out.
// A 404 maps to ErrNotFound.
func (s *HTTPStore) get(ctx context.Context, path string, query url.Values, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// WorkspaceTasks returns every task in a workspace.
func (s *HTTPStore) WorkspaceTasks(ctx context.Context, workspaceID string) ([]entity.Task, error) {
	var out []entity.Task
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/tasks", nil, &out)
	return out, err
}

// AssignedTasks returns tasks assigned to a user within a workspace.
func (s *HTTPStore) AssignedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	var out []entity.Task
	q := url.Values{"assignee": {userID}}
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/tasks", q, &out)
	return out, err
}

// CreatedTasks returns tasks created by a user within a workspace.
func (s *HTTPStore) CreatedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	var out []entity.Task
	q := url.Values{"created_by": {userID}}
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/tasks", q, &out)
	return out, err
}

// WorkspaceProjects returns every project in a workspace.
func (s *HTTPStore) WorkspaceProjects(ctx context.Context, workspaceID string) ([]entity.Project, error) {
	var out []entity.Project
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/projects", nil, &out)
	return out, err
}

// AccessibleProjects returns the projects a user may read in a workspace.
func (s *HTTPStore) AccessibleProjects(ctx context.Context, workspaceID, userID string, role entity.Role) ([]entity.Project, error) {
	var out []entity.Project
	q := url.Values{"user": {userID}, "role": {string(role)}}
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/projects", q, &out)
	return out, err
}

// WorkspaceUsers returns a workspace's members.
func (s *HTTPStore) WorkspaceUsers(ctx context.Context, workspaceID string) ([]entity.User, error) {
	var out []entity.User
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/users", nil, &out)
	return out, err
}

// User returns a single user document.
func (s *HTTPStore) User(ctx context.Context, userID string) (*entity.User, error) {
	var out entity.User
	if err := s.get(ctx, "/v1/users/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WorkspaceBranches returns a workspace's branches.
func (s *HTTPStore) WorkspaceBranches(ctx context.Context, workspaceID string) ([]entity.Branch, error) {
	var out []entity.Branch
	err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID)+"/branches", nil, &out)
	return out, err
}

// Branch returns a single branch document.
func (s *HTTPStore) Branch(ctx context.Context, branchID string) (*entity.Branch, error) {
	var out entity.Branch
	if err := s.get(ctx, "/v1/branches/"+url.PathEscape(branchID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workspace returns a single workspace document.
func (s *HTTPStore) Workspace(ctx context.Context, workspaceID string) (*entity.Workspace, error) {
	var out entity.Workspace
	if err := s.get(ctx, "/v1/workspaces/"+url.PathEscape(workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AccessibleWorkspaces returns the workspaces a user may read.
func (s *HTTPStore) AccessibleWorkspaces(ctx context.Context, userID string) (entity.AccessibleWorkspaces, error) {
	var out entity.AccessibleWorkspaces
	err := s.get(ctx, "/v1/users/"+url.PathEscape(userID)+"/workspaces", nil, &out)
	return out, err
}
