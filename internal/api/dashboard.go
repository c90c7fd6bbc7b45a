package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dennisdiepolder/monti/calldash/internal/dashboard"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Builder renders dashboards
type Builder interface {
	BuildSection(ctx context.Context, section dashboard.Section) *types.Dashboard
}

// AgentsResponse is the payload of GET /api/agents
type AgentsResponse struct {
	RenderID        string              `json:"renderId"`
	Agents          []types.AgentRecord `json:"agents"`
	ActiveAgents    int                 `json:"activeAgents"`
	AvailableAgents int                 `json:"availableAgents"`
	Tally           types.StatusTally   `json:"tally"`
	Chart           []types.ChartBar    `json:"chart"`
	Warnings        []types.Warning     `json:"warnings,omitempty"`
}

// CallsResponse is the payload of GET /api/calls
type CallsResponse struct {
	RenderID   string             `json:"renderId"`
	TotalCalls int                `json:"totalCalls"`
	Calls      []types.CallRecord `json:"calls"`
	Warnings   []types.Warning    `json:"warnings,omitempty"`
}

// RecordingsResponse is the payload of GET /api/recordings
type RecordingsResponse struct {
	RenderID   string                   `json:"renderId"`
	Recordings []types.RecordingRecord  `json:"recordings"`
	Failures   []types.RecordingFailure `json:"failures,omitempty"`
	Warnings   []types.Warning          `json:"warnings,omitempty"`
}

// DashboardHandler provides REST endpoints for dashboard data
type DashboardHandler struct {
	builder Builder
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(builder Builder, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		builder: builder,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Routes mounts the dashboard endpoints on r
func (h *DashboardHandler) Routes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/agents", h.GetAgents)
	r.Get("/calls", h.GetCalls)
	r.Get("/recordings", h.GetRecordings)
}

// GetDashboard returns the full rendering surface
// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d := h.builder.BuildSection(r.Context(), dashboard.SectionAll)
	h.writeJSON(w, d)
}

// GetAgents returns the agent roster with its status counts
// GET /api/agents
func (h *DashboardHandler) GetAgents(w http.ResponseWriter, r *http.Request) {
	d := h.builder.BuildSection(r.Context(), dashboard.SectionAgents)
	h.writeJSON(w, AgentsResponse{
		RenderID:        d.RenderID,
		Agents:          d.Agents,
		ActiveAgents:    d.ActiveAgents,
		AvailableAgents: d.AvailableAgents,
		Tally:           d.Tally,
		Chart:           d.Chart,
		Warnings:        d.Warnings,
	})
}

// GetCalls returns the recent call log
// GET /api/calls
func (h *DashboardHandler) GetCalls(w http.ResponseWriter, r *http.Request) {
	d := h.builder.BuildSection(r.Context(), dashboard.SectionCalls)
	h.writeJSON(w, CallsResponse{
		RenderID:   d.RenderID,
		TotalCalls: d.TotalCalls,
		Calls:      d.Calls,
		Warnings:   d.Warnings,
	})
}

// GetRecordings returns the recent recordings
// GET /api/recordings
func (h *DashboardHandler) GetRecordings(w http.ResponseWriter, r *http.Request) {
	d := h.builder.BuildSection(r.Context(), dashboard.SectionRecordings)
	h.writeJSON(w, RecordingsResponse{
		RenderID:   d.RenderID,
		Recordings: d.Recordings,
		Failures:   d.RecordingFailures,
		Warnings:   d.Warnings,
	})
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
