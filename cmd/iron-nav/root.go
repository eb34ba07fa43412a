package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(app *appContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "iron-nav",
		Short: "Browse and manage S3 compatible object storage",
		Long: `iron-nav lists buckets and objects, transfers files and manages buckets
on any S3 compatible store. Requests are always sent to the bucket's own
region, which is looked up on demand.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&app.account, "account", "", "Stored account to use instead of the default one")

	rootCmd.AddCommand(
		newLsCmd(app),
		newRegionsCmd(app),
		newPutCmd(app),
		newGetCmd(app),
		newMbCmd(app),
		newRmCmd(app),
		newAccountCmd(app),
		newServeCmd(app),
	)
	return rootCmd
}

func Execute(app *appContainer) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		app.Logger.Error("command failed", zap.Error(err))
		_ = app.Logger.Sync()
		stop()
		_ = app.Close()
		os.Exit(1)
	}
}

// parseLocation splits "bucket/some/key" into bucket and key
func parseLocation(arg string) (bucket, key string) {
	arg = strings.TrimPrefix(arg, "s3://")
	bucket, key, _ = strings.Cut(arg, "/")
	return bucket, key
}

func printf(app *appContainer, format string, args ...any) {
	fmt.Fprintf(app.Out, format, args...)
}
