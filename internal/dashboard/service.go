// Package dashboard builds the data for one dashboard render: it loads the agent
// roster, fetches calls and recordings, normalizes them and aggregates agent counts.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dennisdiepolder/monti/calldash/internal/aggregator"
	"github.com/dennisdiepolder/monti/calldash/internal/cache"
	"github.com/dennisdiepolder/monti/calldash/internal/metrics"
	"github.com/dennisdiepolder/monti/calldash/internal/normalize"
	"github.com/dennisdiepolder/monti/calldash/internal/storage"
	"github.com/dennisdiepolder/monti/calldash/internal/telephony"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultCallLimit      = 20
	DefaultRecordingLimit = 10
)

// Options configures a Service
type Options struct {
	CallLimit      int
	RecordingLimit int
	Metrics        *metrics.Metrics
}

// Service builds dashboards. It holds no per-render state; every Build re-fetches everything.
type Service struct {
	agents         storage.AgentStore
	telephony      telephony.API
	metrics        *metrics.Metrics
	callLimit      int
	recordingLimit int
	logger         zerolog.Logger
	now            func() time.Time
}

// NewService creates a new dashboard service
func NewService(agents storage.AgentStore, api telephony.API, opts Options, logger zerolog.Logger) *Service {
	if opts.CallLimit <= 0 {
		opts.CallLimit = DefaultCallLimit
	}
	if opts.RecordingLimit <= 0 {
		opts.RecordingLimit = DefaultRecordingLimit
	}

	return &Service{
		agents:         agents,
		telephony:      api,
		metrics:        opts.Metrics,
		callLimit:      opts.CallLimit,
		recordingLimit: opts.RecordingLimit,
		logger:         logger.With().Str("component", "dashboard").Logger(),
		now:            time.Now,
	}
}

// Section selects which parts of the dashboard a build fills in
type Section uint8

const (
	SectionAgents Section = 1 << iota
	SectionCalls
	SectionRecordings

	SectionAll = SectionAgents | SectionCalls | SectionRecordings
)

// ParseSection maps a section name to a Section
func ParseSection(name string) (Section, bool) {
	switch name {
	case "", "dashboard", "all":
		return SectionAll, true
	case "agents":
		return SectionAgents, true
	case "calls":
		return SectionCalls, true
	case "recordings":
		return SectionRecordings, true
	default:
		return 0, false
	}
}

// Build renders one dashboard. It never fails: every collaborator error degrades
// its section to an empty list and adds a warning.
func (s *Service) Build(ctx context.Context) *types.Dashboard {
	return s.BuildSection(ctx, SectionAll)
}

// BuildSection renders only the requested sections; the others are left empty.
// Steps run in order: agents, calls, recordings, then aggregation.
func (s *Service) BuildSection(ctx context.Context, section Section) *types.Dashboard {
	start := time.Now()

	d := &types.Dashboard{
		RenderID:    uuid.NewString(),
		GeneratedAt: s.now(),
		Agents:      []types.AgentRecord{},
		Calls:       []types.CallRecord{},
		Recordings:  []types.RecordingRecord{},
	}
	logger := s.logger.With().Str("render_id", d.RenderID).Logger()

	if section&SectionAgents != 0 {
		d.Agents = s.loadAgents(ctx, d, logger)
	}

	var rawCalls []types.RawCall
	if section&SectionCalls != 0 {
		rawCalls = s.fetchCalls(ctx, d, logger)
	}

	var rawRecordings []types.RawRecording
	if section&SectionRecordings != 0 {
		rawRecordings = s.fetchRecordings(ctx, d, logger)
	}

	d.Calls = normalize.NormalizeCalls(rawCalls)

	lookup := cache.NewCallLookup(s.telephony)
	joins := &joinTracker{lookup: lookup}
	result := normalize.NormalizeRecordings(ctx, rawRecordings, joins, s.telephony.MediaBaseURL())
	d.Recordings = result.Records
	if len(result.Failures) > 0 {
		d.RecordingFailures = result.Failures
		d.Warn(types.SourceRecordings, joinWarning(len(result.Failures), len(rawRecordings), joins.notFound))
		s.metrics.RecordJoinFailures(len(result.Failures))

		for _, f := range result.Failures {
			logger.Warn().
				Str("recording_id", f.RecordingID).
				Str("call_id", f.CallID).
				Str("error", f.Error).
				Msg("recording dropped")
		}
	}

	summary := aggregator.Aggregate(d.Agents)
	d.TotalCalls = len(d.Calls)
	d.ActiveAgents = summary.Active
	d.AvailableAgents = summary.Available
	d.Tally = summary.Tally
	d.Chart = aggregator.ChartBars(summary.Tally)

	if section == SectionAll {
		s.metrics.RecordRender(time.Since(start), len(d.Calls), len(d.Recordings), len(d.Agents))
		s.metrics.UpdateAgentStats(summary.Tally)
	}

	logger.Debug().
		Uint8("section", uint8(section)).
		Int("agents", len(d.Agents)).
		Int("calls", len(d.Calls)).
		Int("recordings", len(d.Recordings)).
		Int("call_lookups", lookup.Fetches()).
		Int("warnings", len(d.Warnings)).
		Dur("duration", time.Since(start)).
		Msg("dashboard built")

	return d
}

func (s *Service) loadAgents(ctx context.Context, d *types.Dashboard, logger zerolog.Logger) []types.AgentRecord {
	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load agents")
		s.metrics.RecordFetchFailure(string(types.SourceAgents))
		d.Warn(types.SourceAgents, fmt.Sprintf("Error loading agents: %v", err))
		return []types.AgentRecord{}
	}
	if agents == nil {
		agents = []types.AgentRecord{}
	}
	return agents
}

func (s *Service) fetchCalls(ctx context.Context, d *types.Dashboard, logger zerolog.Logger) []types.RawCall {
	calls, err := s.telephony.ListCalls(ctx, s.callLimit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch call logs")
		s.metrics.RecordFetchFailure(string(types.SourceCalls))
		d.Warn(types.SourceCalls, fmt.Sprintf("Error fetching call logs: %v", err))
		return nil
	}
	return calls
}

func (s *Service) fetchRecordings(ctx context.Context, d *types.Dashboard, logger zerolog.Logger) []types.RawRecording {
	recordings, err := s.telephony.ListRecordings(ctx, s.recordingLimit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch recordings")
		s.metrics.RecordFetchFailure(string(types.SourceRecordings))
		d.Warn(types.SourceRecordings, fmt.Sprintf("Error fetching recordings: %v", err))
		return nil
	}
	return recordings
}

// joinTracker counts recordings whose parent call no longer exists
type joinTracker struct {
	lookup   normalize.CallLookup
	notFound int
}

func (j *joinTracker) GetCall(ctx context.Context, callSID string) (*types.RawCall, error) {
	call, err := j.lookup.GetCall(ctx, callSID)
	if errors.Is(err, telephony.ErrNotFound) {
		j.notFound++
	}
	return call, err
}

func joinWarning(failed, total, notFound int) string {
	switch {
	case notFound == failed:
		return fmt.Sprintf("%d of %d recordings skipped: parent call not found", failed, total)
	case notFound > 0:
		return fmt.Sprintf("%d of %d recordings skipped: parent call lookup failed (%d not found)", failed, total, notFound)
	default:
		return fmt.Sprintf("%d of %d recordings skipped: parent call lookup failed", failed, total)
	}
}
