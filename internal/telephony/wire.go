package telephony

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
)

// apiTimeLayout is the timestamp format used by the REST API (RFC 2822)
const apiTimeLayout = time.RFC1123Z

// apiTime decodes an RFC 2822 timestamp that may be null or empty
type apiTime struct {
	time.Time
	Valid bool
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = apiTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = apiTime{}
		return nil
	}

	parsed, err := time.Parse(apiTimeLayout, s)
	if err != nil {
		// Some endpoints emit ISO 8601
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", s, err)
		}
	}
	*t = apiTime{Time: parsed, Valid: true}
	return nil
}

func (t apiTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// apiSeconds decodes a duration that the API sends as a string, a number or null
type apiSeconds struct {
	Value int
	Valid bool
}

func (d *apiSeconds) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = apiSeconds{}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("duration: %w", err)
	}

	switch v := raw.(type) {
	case float64:
		*d = apiSeconds{Value: int(v), Valid: true}
	case string:
		if v == "" {
			*d = apiSeconds{}
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("duration %q: %w", v, err)
		}
		*d = apiSeconds{Value: n, Valid: true}
	default:
		return fmt.Errorf("duration: unexpected value %s", string(data))
	}
	return nil
}

func (d apiSeconds) ptr() *int {
	if !d.Valid {
		return nil
	}
	v := d.Value
	return &v
}

type callResource struct {
	SID           string     `json:"sid"`
	From          string     `json:"from"`
	To            string     `json:"to"`
	FromFormatted string     `json:"from_formatted"`
	ToFormatted   string     `json:"to_formatted"`
	StartTime     apiTime    `json:"start_time"`
	Duration      apiSeconds `json:"duration"`
	Status        string     `json:"status"`
	Direction     string     `json:"direction"`
}

func (c callResource) toRaw() types.RawCall {
	return types.RawCall{
		SID:           c.SID,
		From:          c.From,
		To:            c.To,
		FromFormatted: c.FromFormatted,
		ToFormatted:   c.ToFormatted,
		StartTime:     c.StartTime.ptr(),
		Duration:      c.Duration.ptr(),
		Status:        c.Status,
		Direction:     c.Direction,
	}
}

type recordingResource struct {
	SID         string     `json:"sid"`
	CallSID     string     `json:"call_sid"`
	DateCreated apiTime    `json:"date_created"`
	Duration    apiSeconds `json:"duration"`
	URI         string     `json:"uri"`
}

func (r recordingResource) toRaw() types.RawRecording {
	return types.RawRecording{
		SID:         r.SID,
		CallSID:     r.CallSID,
		DateCreated: r.DateCreated.Time,
		Duration:    r.Duration.ptr(),
		URI:         r.URI,
	}
}

type callPage struct {
	Calls []callResource `json:"calls"`
}

type recordingPage struct {
	Recordings []recordingResource `json:"recordings"`
}
