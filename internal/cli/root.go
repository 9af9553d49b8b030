package cli

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/lexicon/internal/config"
	"github.com/mrlokans/lexicon/internal/entrypoint"
)

// NewRootCommand creates the lexicon command tree. Running it without a
// subcommand starts the server.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Vocabulary enrichment service",
		Long: `lexicon stores English vocabulary and fills in phonetics, meanings and
example sentences from a structured dictionary and a generative provider.

Configuration is read from the environment (DATABASE_PATH, LLM_YI_API_KEY, ...).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), version)
			return nil
		},
	}

	rootCmd.AddCommand(
		newServeCommand(version),
		newEnrichCommand(),
		newRefillCommand(),
		newProviderCommand(),
	)

	return rootCmd
}

func newServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), version)
			return nil
		},
	}
}

// openApp wires the application for a one-shot command.
func openApp(configure func(*config.Config)) (*entrypoint.App, error) {
	cfg := config.NewConfig()
	if configure != nil {
		configure(cfg)
	}
	return entrypoint.Build(cfg, entrypoint.WithDatabaseLogLevel(logger.Warn))
}
