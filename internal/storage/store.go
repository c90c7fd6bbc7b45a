package storage

import (
	"context"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/rs/zerolog"
)

// AgentStore provides read-only access to the agent roster
type AgentStore interface {
	ListAgents(ctx context.Context) ([]types.AgentRecord, error)
}

// NewAgentStore creates the appropriate store based on configuration
func NewAgentStore(ctx context.Context, cfg Config, logger zerolog.Logger) (AgentStore, error) {
	switch cfg.Source {
	case AgentSourceLocal, AgentSourceAWS:
		return NewDynamoDBStore(ctx, cfg.Source, cfg.Dynamo, logger)
	default:
		logger.Info().Str("path", cfg.FilePath).Msg("reading agents from file")
		return NewFileStore(cfg.FilePath), nil
	}
}
