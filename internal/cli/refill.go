package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/lexicon/internal/config"
)

func newRefillCommand() *cobra.Command {
	var stopOnError bool

	cmd := &cobra.Command{
		Use:   "refill",
		Short: "Fill in every stored word that has no meanings yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(func(cfg *config.Config) {
				if cmd.Flags().Changed("stop-on-error") {
					cfg.Refill.StopOnError = stopOnError
				}
			})
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Scheduler.RunOnce(cmd.Context())
			if report == nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, o := range report.Outcomes {
				if o.Message != "" {
					fmt.Fprintf(out, "%-8s %s: %s\n", o.Status, o.Word, o.Message)
				}
			}
			fmt.Fprintf(out, "%s (%s)\n", report.Summary(), report.Status())
			return err
		},
	}

	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failed word (default from REFILL_STOP_ON_ERROR)")
	return cmd
}
