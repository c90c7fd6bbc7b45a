package dashboard

import (
	"context"
	"fmt"

	"github.com/dennisdiepolder/monti/calldash/internal/config"
	"github.com/dennisdiepolder/monti/calldash/internal/metrics"
	"github.com/dennisdiepolder/monti/calldash/internal/storage"
	"github.com/dennisdiepolder/monti/calldash/internal/telephony"
	"github.com/rs/zerolog"
)

// NewFromConfig wires the agent store and telephony client described by cfg into a Service.
// m may be nil.
func NewFromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) (*Service, error) {
	agents, err := storage.NewAgentStore(ctx, storage.LoadConfig(cfg.AgentsFile), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent store: %w", err)
	}

	client, err := telephony.NewClient(telephony.Options{
		BaseURL:    cfg.TelephonyBaseURL,
		AccountSID: cfg.TelephonyAccountSID,
		AuthToken:  cfg.TelephonyAuthToken,
		Timeout:    cfg.TelephonyTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telephony client: %w", err)
	}

	return NewService(agents, client, Options{
		CallLimit:      cfg.CallLimit,
		RecordingLimit: cfg.RecordingLimit,
		Metrics:        m,
	}, logger), nil
}
