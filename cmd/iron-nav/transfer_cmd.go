package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newPutCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "put <local-file> <bucket>[/<key>]",
		Short: "Upload a file",
		Long: `Uploads a local file. Without a key, or with a key ending in "/", the file
keeps its own name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.identity(ctx)
			if err != nil {
				return err
			}

			req := uploadRequest(args[0], args[1])
			if req.DestinationBucket == "" {
				return fmt.Errorf("no bucket in %q", args[1])
			}

			progress, done := showProgress(app.Err, "Uploading "+req.DisplayName)
			_, err = app.Navigator.Upload(ctx, id, req, progress)
			close(progress)
			<-done
			if err != nil {
				return err
			}

			printf(app, "Uploaded %s to %s/%s\n", req.LocalPath, req.DestinationBucket, req.ObjectKey())
			return nil
		},
	}
}

func newGetCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <bucket>/<key> [directory]",
		Short: "Download an object",
		Long: `Downloads an object into the directory, which defaults to the current one.
The key's directories are recreated below it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.identity(ctx)
			if err != nil {
				return err
			}

			bucket, key := parseLocation(args[0])
			if bucket == "" || key == "" {
				return fmt.Errorf("expected <bucket>/<key>, got %q", args[0])
			}
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}

			req := models.DownloadRequest{
				Bucket:         bucket,
				Key:            key,
				DisplayName:    path.Base(key),
				DestinationDir: dir,
			}

			progress, done := showProgress(app.Err, "Downloading "+req.DisplayName)
			_, err = app.Navigator.Download(ctx, id, req, progress)
			close(progress)
			<-done
			if err != nil {
				return err
			}

			printf(app, "Downloaded %s/%s to %s\n", bucket, key, filepath.Join(dir, filepath.FromSlash(key)))
			return nil
		},
	}
}

// uploadRequest builds the request for "put local bucket/key"
func uploadRequest(local, target string) models.UploadRequest {
	bucket, key := parseLocation(target)
	name := filepath.Base(local)

	switch {
	case key == "":
		key = models.RootPath
	case strings.HasSuffix(key, "/"):
		key += name
	}

	return models.UploadRequest{
		LocalPath:         local,
		DestinationBucket: bucket,
		DestinationPath:   key,
		DisplayName:       name,
	}
}

// showProgress drives a progress bar from transfer events until the
// returned channel is closed; done is closed once the bar is finished
func showProgress(w io.Writer, description string) (chan models.ProgressEvent, <-chan struct{}) {
	progress := make(chan models.ProgressEvent, 16)
	done := make(chan struct{})

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetVisibility(w == os.Stderr),
	)

	go func() {
		defer close(done)
		for ev := range progress {
			_ = bar.Set(int(ev.Percent))
		}
		_ = bar.Finish()
	}()

	return progress, done
}
