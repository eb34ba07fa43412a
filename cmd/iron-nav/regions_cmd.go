package main

import (
	"os"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newRegionsCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List every bucket together with its region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.identity(ctx)
			if err != nil {
				return err
			}

			items, _, err := app.Navigator.ListBuckets(ctx, id, 0, 0)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(items))
			for _, item := range items {
				names = append(names, item.Path)
			}

			bar := progressbar.NewOptions(len(names),
				progressbar.OptionSetWriter(app.Err),
				progressbar.OptionSetDescription("Locating buckets"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
				progressbar.OptionSetVisibility(app.Err == os.Stderr),
			)

			var latest []models.BucketRegion
			first := true
			for snapshot := range app.Navigator.BackfillRegions(ctx, id, names) {
				latest = snapshot
				// the first snapshot is the empty table
				if first {
					first = false
					continue
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			printf(app, "%s\n", app.Formatter.FormatRegions(latest))
			return nil
		},
	}
}
