package types

import "time"

// WarningSource identifies the collaborator that failed during a render
type WarningSource string

const (
	SourceAgents     WarningSource = "agents"
	SourceCalls      WarningSource = "calls"
	SourceRecordings WarningSource = "recordings"
)

// Warning is a user-visible notice about degraded data
type Warning struct {
	Source  WarningSource `json:"source"`
	Message string        `json:"message"`
}

// Dashboard is everything the presentation layer needs for one render
type Dashboard struct {
	RenderID          string             `json:"renderId"`
	GeneratedAt       time.Time          `json:"generatedAt"`
	TotalCalls        int                `json:"totalCalls"`
	ActiveAgents      int                `json:"activeAgents"`
	AvailableAgents   int                `json:"availableAgents"`
	Agents            []AgentRecord      `json:"agents"`
	Calls             []CallRecord       `json:"calls"`
	Recordings        []RecordingRecord  `json:"recordings"`
	Tally             StatusTally        `json:"tally"`
	Chart             []ChartBar         `json:"chart"`
	RecordingFailures []RecordingFailure `json:"recordingFailures,omitempty"`
	Warnings          []Warning          `json:"warnings,omitempty"`
}

// Warn appends a warning for the given source
func (d *Dashboard) Warn(source WarningSource, message string) {
	d.Warnings = append(d.Warnings, Warning{Source: source, Message: message})
}
