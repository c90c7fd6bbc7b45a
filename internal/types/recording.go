package types

import "time"

// RawRecording is a recording as returned by the telephony API
type RawRecording struct {
	SID         string    `json:"sid"`
	CallSID     string    `json:"callSid"`
	DateCreated time.Time `json:"dateCreated"`
	Duration    *int      `json:"duration,omitempty"` // seconds
	URI         string    `json:"uri"`                // resource path, e.g. /2010-04-01/Accounts/AC.../Recordings/RE....json
}

// RecordingRecord is a display-ready recording row
type RecordingRecord struct {
	Caller   string `json:"caller"`
	Date     string `json:"date"`     // YYYY-MM-DD
	Duration string `json:"duration"` // mm:ss
	URL      string `json:"url"`
}

// RecordingFailure reports a recording whose parent call could not be resolved
type RecordingFailure struct {
	RecordingID string `json:"recordingId"`
	CallID      string `json:"callId"`
	Error       string `json:"error"`
}
