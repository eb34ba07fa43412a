package main

import (
	"fmt"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

type lsFlags struct {
	recursive bool
	page      int
	pageSize  int
	match     string
}

func newLsCmd(app *appContainer) *cobra.Command {
	cmdFlags := lsFlags{}

	lsCmd := &cobra.Command{
		Use:   "ls [bucket[/prefix]]",
		Short: "List buckets, or the contents of a bucket",
		Long: `Without arguments ls lists every bucket. With a bucket it lists the objects
and directories directly below the prefix; -r lists every object below it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.identity(ctx)
			if err != nil {
				return err
			}

			var bucket, prefix string
			if len(args) == 1 {
				bucket, prefix = parseLocation(args[0])
			}

			var items []models.StorageItem
			switch {
			case bucket == "":
				var total int
				items, total, err = app.Navigator.ListBuckets(ctx, id, cmdFlags.page, cmdFlags.pageSize)
				if err == nil && cmdFlags.pageSize > 0 {
					defer printf(app, "Page %d, %d of %d buckets\n", cmdFlags.page, len(items), total)
				}
			case cmdFlags.recursive:
				items, err = app.Navigator.ListAll(ctx, id, bucket, prefix)
			default:
				items, err = app.Navigator.List(ctx, id, bucket, prefix)
			}
			if err != nil {
				return err
			}

			items, err = filterItems(items, cmdFlags.match)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				printf(app, "Nothing found.\n")
				return nil
			}
			printf(app, "%s\n", app.Formatter.FormatItems(items))
			return nil
		},
	}
	lsCmd.Flags().BoolVarP(&cmdFlags.recursive, "recursive", "r", false, "List every object below the prefix")
	lsCmd.Flags().IntVar(&cmdFlags.page, "page", 0, "Zero-based page of the bucket list")
	lsCmd.Flags().IntVar(&cmdFlags.pageSize, "page-size", 0, "Buckets per page; 0 lists every bucket")
	lsCmd.Flags().StringVarP(&cmdFlags.match, "match", "m", "", "Only show items whose name matches this glob")

	return lsCmd
}

// filterItems keeps the items whose file name matches pattern
func filterItems(items []models.StorageItem, pattern string) ([]models.StorageItem, error) {
	if pattern == "" {
		return items, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid --match pattern %q: %w", pattern, err)
	}

	filtered := make([]models.StorageItem, 0, len(items))
	for _, item := range items {
		if g.Match(item.FileName) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}
