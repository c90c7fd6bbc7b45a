// Package cli implements the calldash command line.
package cli

import (
	"context"
	"os"

	"github.com/dennisdiepolder/monti/calldash/internal/config"
	"github.com/dennisdiepolder/monti/calldash/internal/dashboard"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Builder renders dashboards
type Builder interface {
	BuildSection(ctx context.Context, section dashboard.Section) *types.Dashboard
}

// BuilderFactory creates the Builder a command renders with
type BuilderFactory func(ctx context.Context, logger zerolog.Logger) (Builder, error)

// NewRootCmd creates the root command using configuration from the environment
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, builderFromEnv)
}

func newRootCmd(version string, factory BuilderFactory) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:          "calldash",
		Short:        "Call-center dashboard: agent status, recent calls and recordings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				level = zerolog.WarnLevel
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level written to stderr")

	cmd.AddCommand(newSnapshotCmd(factory))

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

func builderFromEnv(ctx context.Context, logger zerolog.Logger) (Builder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	svc, err := dashboard.NewFromConfig(ctx, cfg, nil, logger)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
