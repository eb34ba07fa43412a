package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rmFlags struct {
	recursive bool
	yes       bool
}

func newMbCmd(app *appContainer) *cobra.Command {
	var region string

	mbCmd := &cobra.Command{
		Use:   "mb <bucket>",
		Short: "Create a bucket",
		Long:  `Creates a bucket. Without --region the account's default region is used.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.identity(ctx)
			if err != nil {
				return err
			}

			if err := app.Navigator.CreateBucket(ctx, id, args[0], region); err != nil {
				return fmt.Errorf("error creating bucket '%s': %w", args[0], err)
			}

			printf(app, "Bucket '%s' created.\n", args[0])
			return nil
		},
	}
	mbCmd.Flags().StringVar(&region, "region", "", "Region to create the bucket in")

	return mbCmd
}

func newRmCmd(app *appContainer) *cobra.Command {
	cmdFlags := rmFlags{}

	rmCmd := &cobra.Command{
		Use:   "rm <bucket>[/<key>]",
		Short: "Delete a bucket or an object",
		Long: `Deletes an empty bucket, or one object. Keys ending in "/" are directories
and need -r, which deletes every object below them one by one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.identity(ctx)
			if err != nil {
				return err
			}

			bucket, key := parseLocation(args[0])
			if bucket == "" {
				return services.ErrNoBucketSpecified
			}

			if key == "" {
				if !cmdFlags.yes {
					ok, err := app.Prompter.Confirm(fmt.Sprintf("This permanently deletes bucket '%s'.", bucket), bucket)
					if err != nil {
						return err
					}
					if !ok {
						printf(app, "Aborted.\n")
						return nil
					}
				}
				if err := app.Navigator.Delete(ctx, id, models.DeleteTarget{IsBucket: true, Name: bucket}); err != nil {
					return fmt.Errorf("error deleting bucket '%s': %w", bucket, err)
				}
				printf(app, "Bucket '%s' deleted.\n", bucket)
				return nil
			}

			if !cmdFlags.recursive {
				target := models.DeleteTarget{Bucket: &bucket, Name: key, IsDirectory: strings.HasSuffix(key, "/")}
				if err := app.Navigator.Delete(ctx, id, target); err != nil {
					if errors.Is(err, services.ErrDirectoryDeleteUnsupported) {
						return fmt.Errorf("%w, use -r to delete its objects", err)
					}
					return err
				}
				printf(app, "Deleted %s/%s\n", bucket, key)
				return nil
			}

			if !strings.HasSuffix(key, "/") {
				key += "/"
			}
			if !cmdFlags.yes {
				location := bucket + "/" + key
				ok, err := app.Prompter.Confirm(fmt.Sprintf("This permanently deletes every object below '%s'.", location), location)
				if err != nil {
					return err
				}
				if !ok {
					printf(app, "Aborted.\n")
					return nil
				}
			}
			return removeTree(cmd, app, bucket, key)
		},
	}
	rmCmd.Flags().BoolVarP(&cmdFlags.recursive, "recursive", "r", false, "Delete every object below the prefix")
	rmCmd.Flags().BoolVarP(&cmdFlags.yes, "yes", "y", false, "Do not ask for confirmation")

	return rmCmd
}

// removeTree deletes every object below prefix, stopping at the first failure.
// prefix must end in "/" so sibling keys sharing its leading characters survive.
func removeTree(cmd *cobra.Command, app *appContainer, bucket, prefix string) error {
	ctx := cmd.Context()
	id, err := app.identity(ctx)
	if err != nil {
		return err
	}

	items, err := app.Navigator.ListAll(ctx, id, bucket, prefix)
	if err != nil {
		return err
	}

	deleted := 0
	for _, item := range items {
		if err := app.Navigator.Delete(ctx, id, models.DeleteTarget{Bucket: &bucket, Name: item.Path}); err != nil {
			app.Logger.Error("recursive delete stopped",
				zap.String("bucket", bucket),
				zap.String("key", item.Path),
				zap.Int("deleted", deleted),
				zap.Error(err),
			)
			return fmt.Errorf("deleting %s/%s: %w", bucket, item.Path, err)
		}
		deleted++
	}

	printf(app, "Deleted %d objects below %s/%s\n", deleted, bucket, prefix)
	return nil
}
