package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/gamereviews/internal/seed"
)

func newSeedCommand(a *app) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Drop, create and load the database",
		Long: `Drop every table, create the schema again and load a dataset.

Without --data the test dataset bundled with the binary is loaded. A data
directory holds categories.json, users.json, reviews.json and comments.json.

Examples:
  gamereviews seed
  gamereviews seed --data ./data/development`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ds, err := seed.TestData()
			if dataDir != "" {
				ds, err = seed.LoadDir(dataDir)
			}
			if err != nil {
				return err
			}

			d, err := a.openDB(cmd.Context(), logger, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := seed.Run(cmd.Context(), d, ds); err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d users, %d reviews, %d comments\n",
				len(ds.Categories), len(ds.Users), len(ds.Reviews), len(ds.Comments))

			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Directory with the dataset JSON files")

	return cmd
}
