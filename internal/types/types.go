package types

import "strings"

// AgentState represents the normalized (lower-case) status of an agent
type AgentState string

const (
	StateAvailable AgentState = "available"
	StateBusy      AgentState = "busy"
)

// AgentRecord is a single entry of the agent roster
type AgentRecord struct {
	Name   string `json:"name" yaml:"name" dynamodbav:"Name"`
	Phone  string `json:"phone" yaml:"phone" dynamodbav:"Phone"`
	Status string `json:"status" yaml:"status" dynamodbav:"Status"`
}

// State returns the case-normalized status used for counting
func (a AgentRecord) State() AgentState {
	return AgentState(strings.ToLower(strings.TrimSpace(a.Status)))
}

// StatusTally maps a normalized status label to the number of agents in it
type StatusTally map[AgentState]int

// AgentSummary contains the aggregated agent counts
type AgentSummary struct {
	Total     int         `json:"total"`
	Active    int         `json:"active"`    // agents whose status is "busy"
	Available int         `json:"available"` // agents whose status is "available"
	Tally     StatusTally `json:"tally"`
}

// ChartBar is one bar of the agent availability chart
type ChartBar struct {
	Status AgentState `json:"status"`
	Label  string     `json:"label"`
	Count  int        `json:"count"`
}
