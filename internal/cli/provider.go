package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProviderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Show or change the active generative provider",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the active provider",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := openApp(nil)
				if err != nil {
					return err
				}
				defer app.Close()

				name, err := app.Active.Active(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <name>",
			Short: "Select the active provider",
			Long:  "Select the active provider. The name is checked when the next word is enriched.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := openApp(nil)
				if err != nil {
					return err
				}
				defer app.Close()

				if err := app.Active.SetActive(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "active provider set to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List known providers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := openApp(nil)
				if err != nil {
					return err
				}
				defer app.Close()

				list, err := app.Catalog.ListActive(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tBASE URL\tMODELS\tKEY")
				for _, p := range list {
					key := "-"
					if p.APIKeyRequired {
						key = "required"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.BaseURL, p.ModelTypes, key)
				}
				return w.Flush()
			},
		},
	)
	return cmd
}
