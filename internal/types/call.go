package types

import "time"

// RawCall is a call as returned by the telephony API
type RawCall struct {
	SID           string     `json:"sid"`
	From          string     `json:"from"`
	To            string     `json:"to"`
	FromFormatted string     `json:"fromFormatted"`
	ToFormatted   string     `json:"toFormatted"`
	StartTime     *time.Time `json:"startTime,omitempty"`
	Duration      *int       `json:"duration,omitempty"` // seconds, nil while the call is in progress
	Status        string     `json:"status"`
	Direction     string     `json:"direction,omitempty"`
}

// Caller returns the display form of the originating address
func (c RawCall) Caller() string {
	if c.FromFormatted != "" {
		return c.FromFormatted
	}
	return c.From
}

// Callee returns the display form of the destination address
func (c RawCall) Callee() string {
	if c.ToFormatted != "" {
		return c.ToFormatted
	}
	return c.To
}

// CallRecord is a display-ready call log row
type CallRecord struct {
	Caller    string `json:"caller"`
	Phone     string `json:"phone"`
	Timestamp string `json:"timestamp"` // YYYY-MM-DD HH:MM:SS, empty if the call never started
	Duration  string `json:"duration"`  // mm:ss
	Status    string `json:"status"`
}
