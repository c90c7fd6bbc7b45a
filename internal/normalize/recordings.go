package normalize

import (
	"context"
	"strings"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
)

// CallLookup resolves a call by its identifier
type CallLookup interface {
	GetCall(ctx context.Context, callSID string) (*types.RawCall, error)
}

// RecordingResult holds the rows that could be built and the recordings that could not
type RecordingResult struct {
	Records  []types.RecordingRecord
	Failures []types.RecordingFailure
}

// NormalizeRecordings joins every recording with its parent call to obtain the caller.
// A failed lookup only drops that recording; it is reported in Failures and the
// remaining recordings are still processed. Output order follows input order.
func NormalizeRecordings(ctx context.Context, recordings []types.RawRecording, lookup CallLookup, mediaBaseURL string) RecordingResult {
	result := RecordingResult{
		Records: make([]types.RecordingRecord, 0, len(recordings)),
	}

	for _, rec := range recordings {
		if err := ctx.Err(); err != nil {
			result.Failures = append(result.Failures, failure(rec, err))
			continue
		}

		call, err := lookup.GetCall(ctx, rec.CallSID)
		if err != nil {
			result.Failures = append(result.Failures, failure(rec, err))
			continue
		}

		result.Records = append(result.Records, NormalizeRecording(rec, call, mediaBaseURL))
	}

	return result
}

// NormalizeRecording converts a recording whose parent call is already known
func NormalizeRecording(rec types.RawRecording, parent *types.RawCall, mediaBaseURL string) types.RecordingRecord {
	caller := ""
	if parent != nil {
		caller = parent.Caller()
	}

	date := ""
	if !rec.DateCreated.IsZero() {
		date = rec.DateCreated.Format(DateLayout)
	}

	return types.RecordingRecord{
		Caller:   caller,
		Date:     date,
		Duration: FormatDuration(rec.Duration),
		URL:      MediaURL(mediaBaseURL, rec.URI),
	}
}

// MediaURL turns a recording resource URI into the URL of its audio file
func MediaURL(baseURL, uri string) string {
	if uri == "" {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/") + strings.ReplaceAll(uri, ".json", ".mp3")
}

func failure(rec types.RawRecording, err error) types.RecordingFailure {
	return types.RecordingFailure{
		RecordingID: rec.SID,
		CallID:      rec.CallSID,
		Error:       err.Error(),
	}
}
