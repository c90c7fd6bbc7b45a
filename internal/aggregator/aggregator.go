package aggregator

import (
	"sort"

	"github.com/dennisdiepolder/monti/calldash/internal/normalize"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
)

// Aggregate counts agents by case-normalized status.
// Statuses other than busy and available appear in the tally only.
func Aggregate(agents []types.AgentRecord) types.AgentSummary {
	summary := types.AgentSummary{
		Total: len(agents),
		Tally: make(types.StatusTally),
	}

	for _, agent := range agents {
		state := agent.State()
		summary.Tally[state]++

		switch state {
		case types.StateBusy:
			summary.Active++
		case types.StateAvailable:
			summary.Available++
		}
	}

	return summary
}

// ChartBars converts a tally into bars for the availability chart.
// Available comes first, then busy, then any other status alphabetically.
func ChartBars(tally types.StatusTally) []types.ChartBar {
	bars := make([]types.ChartBar, 0, len(tally))
	for state, count := range tally {
		bars = append(bars, types.ChartBar{
			Status: state,
			Label:  label(state),
			Count:  count,
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		ri, rj := rank(bars[i].Status), rank(bars[j].Status)
		if ri != rj {
			return ri < rj
		}
		return bars[i].Status < bars[j].Status
	})

	return bars
}

func label(state types.AgentState) string {
	if state == "" {
		return "Unknown"
	}
	return normalize.Capitalize(string(state))
}

func rank(state types.AgentState) int {
	switch state {
	case types.StateAvailable:
		return 0
	case types.StateBusy:
		return 1
	default:
		return 2
	}
}
