package cache

import (
	"context"
	"sync"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
)

// CallFetcher fetches a single call from the telephony API
type CallFetcher interface {
	GetCall(ctx context.Context, callSID string) (*types.RawCall, error)
}

type lookupResult struct {
	call *types.RawCall
	err  error
}

// CallLookup memoizes call lookups for the lifetime of one dashboard render.
// Several recordings usually belong to the same call; each call is fetched once and
// failures are remembered too, so a failing call is not requested again in the same render.
type CallLookup struct {
	fetcher CallFetcher
	results map[string]lookupResult
	fetches int
	mu      sync.RWMutex
}

// NewCallLookup creates an empty lookup cache in front of fetcher
func NewCallLookup(fetcher CallFetcher) *CallLookup {
	return &CallLookup{
		fetcher: fetcher,
		results: make(map[string]lookupResult),
	}
}

// GetCall returns the cached result for callSID, fetching it on first use
func (l *CallLookup) GetCall(ctx context.Context, callSID string) (*types.RawCall, error) {
	l.mu.RLock()
	res, ok := l.results[callSID]
	l.mu.RUnlock()
	if ok {
		return res.call, res.err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have filled it in between the locks
	if res, ok := l.results[callSID]; ok {
		return res.call, res.err
	}

	call, err := l.fetcher.GetCall(ctx, callSID)
	// A cancelled context says nothing about the call itself
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	l.results[callSID] = lookupResult{call: call, err: err}
	l.fetches++
	return call, err
}

// Fetches returns how many remote lookups were made
func (l *CallLookup) Fetches() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetches
}

// size returns the number of cached call results
func (l *CallLookup) size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.results)
}
