package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/scope"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// parseInputs extracts the engine inputs from query parameters. Date bounds
// accept RFC3339 or plain dates; when absent, the window defaults to the
// last 30 days.
func parseInputs(req *http.Request) (engine.Inputs, error) {
	q := req.URL.Query()

	in := engine.Inputs{
		WorkspaceID:       q.Get("workspace"),
		UserID:            q.Get("user"),
		Role:              entity.Role(q.Get("role")),
		ShowAllWorkspaces: q.Get("all") == "true",
	}
	if in.Role == "" {
		in.Role = entity.RoleMember
	}
	if !in.Role.Valid() {
		return engine.Inputs{}, fmt.Errorf("unknown role %q", in.Role)
	}

	from := entity.ParseTimestamp(q.Get("from"))
	to := entity.ParseTimestamp(q.Get("to"))
	switch {
	case from.IsZero() && to.IsZero():
		in.DateRange = entity.LastNDays(time.Now(), 30)
	case from.IsZero() || to.IsZero():
		return engine.Inputs{}, errors.New("from and to must be given together")
	case !from.Before(to):
		return engine.Inputs{}, errors.New("from must precede to")
	default:
		in.DateRange = entity.DateRange{From: from, To: to, Preset: q.Get("preset")}
	}

	return in, nil
}

// respondEngineError maps engine failures to HTTP statuses: missing identity
// is the caller's fault, anything else is internal.
func (r *Router) respondEngineError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, scope.ErrScopeUnavailable) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	r.log.Error("computation failed",
		zap.Error(err),
		zap.String("request_id", RequestIDFrom(req)),
	)
	writeError(w, http.StatusInternalServerError, "failed to load analytics")
}

// dashboard runs one generation-stamped dashboard computation.
func (r *Router) dashboard(req *http.Request) (*engine.DashboardView, error) {
	in, err := parseInputs(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", scope.ErrScopeUnavailable, err)
	}
	return r.engine.Dashboard(req.Context(), r.engine.NextRequest(in))
}

// handleDashboard returns the full dashboard view model.
func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) {
	view, err := r.dashboard(req)
	if err != nil {
		r.respondEngineError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleStats returns the stats cards view model.
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) {
	view, err := r.dashboard(req)
	if err != nil {
		r.respondEngineError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":             view.Stats,
		"partial":           view.Partial,
		"failed_workspaces": view.FailedWorkspaces,
	})
}

// handleBranches returns the branch-performance view model.
func (r *Router) handleBranches(w http.ResponseWriter, req *http.Request) {
	view, err := r.dashboard(req)
	if err != nil {
		r.respondEngineError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"branches":          view.Branches,
		"partial":           view.Partial,
		"failed_workspaces": view.FailedWorkspaces,
	})
}

// handleTrend returns the productivity-trend view model.
func (r *Router) handleTrend(w http.ResponseWriter, req *http.Request) {
	view, err := r.dashboard(req)
	if err != nil {
		r.respondEngineError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"trend":             view.Trend,
		"partial":           view.Partial,
		"failed_workspaces": view.FailedWorkspaces,
	})
}

// handleMember returns the per-member analytics view model.
func (r *Router) handleMember(w http.ResponseWriter, req *http.Request) {
	in, err := parseInputs(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	memberID := chi.URLParam(req, "memberID")
	view, err := r.engine.Member(req.Context(), r.engine.NextRequest(in), memberID)
	if err != nil {
		r.respondEngineError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
