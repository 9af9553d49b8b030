package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newEnrichCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich <word>...",
		Short: "Enrich words and print the stored records as JSON",
		Long: `Enrich each word with the active provider, saving the result. Words that
are already enriched are printed as stored. A failure on one word does not
stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(nil)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")

			var errs []error
			for _, word := range args {
				record, err := app.Words.Enrich(cmd.Context(), word)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", word, err)
					errs = append(errs, err)
					continue
				}
				if err := enc.Encode(record); err != nil {
					return err
				}
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d words failed: %w", len(errs), len(args), errors.Join(errs...))
			}
			return nil
		},
	}
}
