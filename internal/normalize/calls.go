package normalize

import "github.com/dennisdiepolder/monti/calldash/internal/types"

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// NormalizeCalls maps raw calls to call log rows, one per input and in the same order
func NormalizeCalls(calls []types.RawCall) []types.CallRecord {
	records := make([]types.CallRecord, 0, len(calls))
	for _, call := range calls {
		records = append(records, NormalizeCall(call))
	}
	return records
}

// NormalizeCall converts a single raw call
func NormalizeCall(call types.RawCall) types.CallRecord {
	timestamp := ""
	if call.StartTime != nil && !call.StartTime.IsZero() {
		timestamp = call.StartTime.Format(TimestampLayout)
	}

	return types.CallRecord{
		Caller:    call.Caller(),
		Phone:     call.Callee(),
		Timestamp: timestamp,
		Duration:  FormatDuration(call.Duration),
		Status:    Capitalize(call.Status),
	}
}
