package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dennisdiepolder/monti/calldash/internal/metrics"
	"github.com/dennisdiepolder/monti/calldash/internal/telephony"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgents struct {
	agents []types.AgentRecord
	err    error
}

func (f *fakeAgents) ListAgents(context.Context) ([]types.AgentRecord, error) {
	return f.agents, f.err
}

type fakeTelephony struct {
	calls         []types.RawCall
	recordings    []types.RawRecording
	parents       map[string]*types.RawCall
	callsErr      error
	recordingsErr error
	limits        []int
	lookups       map[string]int
	deleted       map[string]bool
}

func (f *fakeTelephony) ListCalls(_ context.Context, limit int) ([]types.RawCall, error) {
	f.limits = append(f.limits, limit)
	return f.calls, f.callsErr
}

func (f *fakeTelephony) ListRecordings(_ context.Context, limit int) ([]types.RawRecording, error) {
	f.limits = append(f.limits, limit)
	return f.recordings, f.recordingsErr
}

func (f *fakeTelephony) GetCall(_ context.Context, sid string) (*types.RawCall, error) {
	if f.lookups == nil {
		f.lookups = map[string]int{}
	}
	f.lookups[sid]++
	if call, ok := f.parents[sid]; ok {
		return call, nil
	}
	if f.deleted[sid] {
		return nil, fmt.Errorf("get call %s: %w", sid, &telephony.APIError{Status: http.StatusNotFound, Code: 20404})
	}
	return nil, errors.New("telephony: status 500")
}

func (f *fakeTelephony) MediaBaseURL() string { return "https://api.twilio.com" }

func seconds(v int) *int { return &v }

func newFixture() (*fakeAgents, *fakeTelephony) {
	start := time.Date(2024, 3, 9, 14, 5, 9, 0, time.UTC)
	created := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	agents := &fakeAgents{agents: []types.AgentRecord{
		{Name: "Ada", Phone: "+1", Status: "Busy"},
		{Name: "Grace", Phone: "+2", Status: "available"},
		{Name: "Linus", Phone: "+3", Status: "BUSY"},
	}}

	tel := &fakeTelephony{
		calls: []types.RawCall{
			{SID: "CA1", FromFormatted: "(415) 555-0100", ToFormatted: "(415) 555-0199", StartTime: &start, Duration: seconds(125), Status: "completed"},
			{SID: "CA2", FromFormatted: "(415) 555-0101", ToFormatted: "(415) 555-0199", Status: "ringing"},
		},
		recordings: []types.RawRecording{
			{SID: "RE1", CallSID: "CA1", DateCreated: created, Duration: seconds(65), URI: "/2010-04-01/Accounts/AC1/Recordings/RE1.json"},
			{SID: "RE2", CallSID: "CA1", DateCreated: created, Duration: seconds(5), URI: "/2010-04-01/Accounts/AC1/Recordings/RE2.json"},
		},
		parents: map[string]*types.RawCall{
			"CA1": {SID: "CA1", FromFormatted: "(415) 555-0100"},
		},
	}
	return agents, tel
}

func TestBuild(t *testing.T) {
	agents, tel := newFixture()
	svc := NewService(agents, tel, Options{CallLimit: 20, RecordingLimit: 10}, zerolog.Nop())

	d := svc.Build(context.Background())

	assert.NotEmpty(t, d.RenderID)
	assert.Empty(t, d.Warnings)
	assert.Equal(t, []int{20, 10}, tel.limits)

	assert.Equal(t, 2, d.TotalCalls)
	assert.Equal(t, 2, d.ActiveAgents)
	assert.Equal(t, 1, d.AvailableAgents)
	assert.Equal(t, types.StatusTally{"busy": 2, "available": 1}, d.Tally)
	require.Len(t, d.Chart, 2)
	assert.Equal(t, "Available", d.Chart[0].Label)

	require.Len(t, d.Calls, 2)
	assert.Equal(t, types.CallRecord{
		Caller:    "(415) 555-0100",
		Phone:     "(415) 555-0199",
		Timestamp: "2024-03-09 14:05:09",
		Duration:  "02:05",
		Status:    "Completed",
	}, d.Calls[0])
	assert.Equal(t, "", d.Calls[1].Timestamp)
	assert.Equal(t, "00:00", d.Calls[1].Duration)

	require.Len(t, d.Recordings, 2)
	assert.Equal(t, "https://api.twilio.com/2010-04-01/Accounts/AC1/Recordings/RE1.mp3", d.Recordings[0].URL)
	assert.Equal(t, "2024-03-09", d.Recordings[0].Date)
	assert.Equal(t, 1, tel.lookups["CA1"], "parent call is fetched once per render")
}

func TestBuildDefaultsLimits(t *testing.T) {
	agents, tel := newFixture()
	NewService(agents, tel, Options{}, zerolog.Nop()).Build(context.Background())
	assert.Equal(t, []int{DefaultCallLimit, DefaultRecordingLimit}, tel.limits)
}

func TestBuildAgentsFailure(t *testing.T) {
	agents, tel := newFixture()
	agents.err = errors.New("open agents.json: no such file or directory")

	d := NewService(agents, tel, Options{}, zerolog.Nop()).Build(context.Background())

	require.Len(t, d.Warnings, 1)
	assert.Equal(t, types.SourceAgents, d.Warnings[0].Source)
	assert.Contains(t, d.Warnings[0].Message, "Error loading agents")
	assert.NotNil(t, d.Agents)
	assert.Empty(t, d.Agents)
	assert.Zero(t, d.ActiveAgents)
	assert.Empty(t, d.Tally)
	assert.Equal(t, 2, d.TotalCalls, "calls are unaffected")
}

func TestBuildTelephonyFailures(t *testing.T) {
	agents, tel := newFixture()
	tel.callsErr = errors.New("telephony: status 401 code 20003: Authenticate")
	tel.recordingsErr = errors.New("dial tcp: i/o timeout")

	reg := prometheus.NewRegistry()
	d := NewService(agents, tel, Options{Metrics: metrics.New(reg)}, zerolog.Nop()).Build(context.Background())

	require.Len(t, d.Warnings, 2)
	assert.Equal(t, types.SourceCalls, d.Warnings[0].Source)
	assert.Equal(t, types.SourceRecordings, d.Warnings[1].Source)
	assert.NotNil(t, d.Calls)
	assert.Empty(t, d.Calls)
	assert.NotNil(t, d.Recordings)
	assert.Empty(t, d.Recordings)
	assert.Zero(t, d.TotalCalls)
	assert.Equal(t, 2, d.ActiveAgents, "agents are unaffected")
}

func TestBuildRecordingJoinFailure(t *testing.T) {
	agents, tel := newFixture()
	tel.recordings = append(tel.recordings, types.RawRecording{SID: "RE3", CallSID: "CA404"})

	d := NewService(agents, tel, Options{}, zerolog.Nop()).Build(context.Background())

	require.Len(t, d.Recordings, 2, "other recordings are kept")
	for _, rec := range d.Recordings {
		assert.Equal(t, "(415) 555-0100", rec.Caller)
	}
	require.Len(t, d.RecordingFailures, 1)
	assert.Equal(t, "RE3", d.RecordingFailures[0].RecordingID)
	assert.Equal(t, "CA404", d.RecordingFailures[0].CallID)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "1 of 3 recordings skipped: parent call lookup failed", d.Warnings[0].Message)
}

func TestBuildRecordingParentNotFound(t *testing.T) {
	tests := []struct {
		name    string
		callIDs []string
		warning string
	}{
		{"all missing", []string{"CA9", "CA9"}, "2 of 4 recordings skipped: parent call not found"},
		{"mixed", []string{"CA9", "CA500"}, "2 of 4 recordings skipped: parent call lookup failed (1 not found)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents, tel := newFixture()
			tel.deleted = map[string]bool{"CA9": true}
			for i, id := range tt.callIDs {
				tel.recordings = append(tel.recordings, types.RawRecording{SID: fmt.Sprintf("RE%d", 10+i), CallSID: id})
			}

			d := NewService(agents, tel, Options{}, zerolog.Nop()).Build(context.Background())

			assert.Len(t, d.Recordings, 2)
			assert.Len(t, d.RecordingFailures, 2)
			require.Len(t, d.Warnings, 1)
			assert.Equal(t, tt.warning, d.Warnings[0].Message)
			assert.Equal(t, 1, tel.lookups["CA9"], "missing parents are looked up once per render")
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	d := NewService(&fakeAgents{}, &fakeTelephony{}, Options{}, zerolog.Nop()).Build(context.Background())

	assert.Empty(t, d.Warnings)
	assert.Zero(t, d.TotalCalls)
	assert.Zero(t, d.ActiveAgents)
	assert.Zero(t, d.AvailableAgents)
	assert.NotNil(t, d.Agents)
	assert.NotNil(t, d.Calls)
	assert.NotNil(t, d.Recordings)
	assert.NotNil(t, d.Tally)
	assert.Empty(t, d.Chart)
}

func TestBuildSection(t *testing.T) {
	agents, tel := newFixture()
	svc := NewService(agents, tel, Options{}, zerolog.Nop())

	d := svc.BuildSection(context.Background(), SectionAgents)
	assert.Len(t, d.Agents, 3)
	assert.Empty(t, d.Calls)
	assert.Empty(t, d.Recordings)
	assert.Empty(t, tel.limits, "telephony is not called for the agent section")

	d = svc.BuildSection(context.Background(), SectionRecordings)
	assert.Empty(t, d.Agents)
	assert.Empty(t, d.Calls)
	assert.Len(t, d.Recordings, 2)
	assert.Equal(t, []int{DefaultRecordingLimit}, tel.limits)
}

func TestParseSection(t *testing.T) {
	tests := map[string]struct {
		want Section
		ok   bool
	}{
		"":           {SectionAll, true},
		"dashboard":  {SectionAll, true},
		"agents":     {SectionAgents, true},
		"calls":      {SectionCalls, true},
		"recordings": {SectionRecordings, true},
		"queues":     {0, false},
	}

	for name, tt := range tests {
		got, ok := ParseSection(name)
		assert.Equal(t, tt.ok, ok, name)
		assert.Equal(t, tt.want, got, name)
	}
}
