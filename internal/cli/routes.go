package cli

import (
	"fmt"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/gamereviews/internal/server"
)

func newRoutesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the router documentation",
		Long: `Print the API routes with their handlers and middlewares, as markdown
or as JSON with --json. No database connection is made.`,
		// routes needs no database settings
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			r := server.NewRouter(server.Deps{})

			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), docgen.JSONRoutesDoc(r))

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
				ProjectPath: "github.com/SergeyParamoshkin/gamereviews",
				Intro:       "Routes of the gamereviews API.",
			}))

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of markdown")

	return cmd
}
