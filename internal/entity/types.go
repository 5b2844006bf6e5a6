// Package entity defines the workspace-suite records the analytics engine
// reads: tasks, projects, users, branches, and workspaces. The engine never
// writes these; they are owned by the upstream CRUD services.
package entity

// Role is a caller's role within a workspace.
type Role string

// Roles recognized by the engine.
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Valid reports whether the role is one of the three recognized roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin || r == RoleOwner
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses used by the workspace suite.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusInReview   TaskStatus = "in-review"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// WorkspaceType distinguishes top-level workspaces from scoped children.
type WorkspaceType string

// Workspace types.
const (
	WorkspaceMain WorkspaceType = "main"
	WorkspaceSub  WorkspaceType = "sub"
)

// Task represents a single task document. Timestamps are ISO 8601 strings as
// stored by the document store; use ParseTimestamp to interpret them.
type Task struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	ProjectID   string     `json:"projectId,omitempty"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	Status      TaskStatus `json:"status"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	DueDate     string     `json:"dueDate,omitempty"`
}

// Completed reports whether the task has reached the completed status.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Project represents a project document.
type Project struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	BranchID    string `json:"branchId,omitempty"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	DueDate     string `json:"dueDate,omitempty"`
}

// User represents a workspace member document.
type User struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	BranchID    string `json:"branchId,omitempty"`
	RegionID    string `json:"regionId,omitempty"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
}

// Branch represents an organizational sub-unit of a main workspace.
type Branch struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
}

// Workspace represents a tenant container. ParentWorkspaceID is set only for
// sub-workspaces; BranchID is set only for sub-workspaces bound to a single
// branch of the parent.
type Workspace struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Type              WorkspaceType `json:"workspaceType"`
	ParentWorkspaceID string        `json:"parentWorkspaceId,omitempty"`
	BranchID          string        `json:"branchId,omitempty"`
}

// AccessibleWorkspaces is the set of workspaces a user may read, split by
// type as the membership service reports them.
type AccessibleWorkspaces struct {
	Main []Workspace `json:"mainWorkspaces"`
	Sub  []Workspace `json:"subWorkspaces"`
}

// All returns main and sub workspaces as a single slice, main first.
func (a AccessibleWorkspaces) All() []Workspace {
	out := make([]Workspace, 0, len(a.Main)+len(a.Sub))
	out = append(out, a.Main...)
	out = append(out, a.Sub...)
	return out
}
