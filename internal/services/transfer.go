package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// ErrEmptyObjectKey is returned when an upload has neither a destination path nor a display name
var ErrEmptyObjectKey = errors.New("upload has no destination key")

// CalculateDownloadPercentage returns byteCount as a percentage of total, 0 when total is 0
func CalculateDownloadPercentage(total, byteCount int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(byteCount) / float64(total) * 100
}

// Upload streams a local file into the destination bucket.
// progress may be nil. Sends block until the receiver takes the event or ctx
// is done, so a receiver that stops reading must cancel ctx.
func (n *Navigator) Upload(ctx context.Context, id *models.Identity, req models.UploadRequest, progress chan<- models.ProgressEvent) (bool, error) {
	key := req.ObjectKey()
	if key == "" {
		return false, ErrEmptyObjectKey
	}

	file, err := n.fs.Open(req.LocalPath)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", req.LocalPath, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", req.LocalPath, err)
	}

	contentType, err := sniffContentType(file)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", req.LocalPath, err)
	}

	store, _, err := n.bucketClient(ctx, id, req.DestinationBucket)
	if err != nil {
		return false, err
	}

	tracker := newProgressTracker(ctx, n, progress, models.ProgressEvent{Name: key, Bucket: req.DestinationBucket}, info.Size())
	body := &progressReader{r: file, onRead: tracker.update}

	log := n.logger.With(zap.String("bucket", req.DestinationBucket), zap.String("key", key))
	log.Debug("uploading", zap.Int64("size", info.Size()), zap.String("content_type", contentType))

	if err := store.PutObject(ctx, req.DestinationBucket, key, body, info.Size(), contentType); err != nil {
		log.Error("upload failed", zap.Error(err))
		return false, newProtocolError("PutObject", req.DestinationBucket, key, err, "Cannot upload object")
	}
	return true, nil
}

// Download fetches one object into DestinationDir/Key, reporting progress after each chunk.
// A failed transfer leaves the partial file in place. Keys ending in "/" are
// directory markers and only create the local directory. progress is
// delivered as for Upload.
func (n *Navigator) Download(ctx context.Context, id *models.Identity, req models.DownloadRequest, progress chan<- models.ProgressEvent) (bool, error) {
	name := req.Key
	if name == "" {
		name = req.DisplayName
	}
	target, err := destinationPath(req.DestinationDir, name)
	if err != nil {
		return false, err
	}
	if strings.HasSuffix(name, "/") {
		// zero-byte directory marker
		if err := n.fs.MkdirAll(target, 0o755); err != nil {
			return false, fmt.Errorf("creating %s: %w", target, err)
		}
		return true, nil
	}

	store, _, err := n.bucketClient(ctx, id, req.Bucket)
	if err != nil {
		return false, err
	}

	log := n.logger.With(zap.String("bucket", req.Bucket), zap.String("key", name))

	total, err := store.HeadObject(ctx, req.Bucket, name)
	if err != nil {
		log.Error("head object failed", zap.Error(err))
		return false, newProtocolError("HeadObject", req.Bucket, name, err, "Cannot read object metadata")
	}

	if err := n.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	file, err := n.fs.Create(target)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", target, err)
	}
	defer func() { _ = file.Close() }()

	body, err := store.GetObject(ctx, req.Bucket, name)
	if err != nil {
		log.Error("get object failed", zap.Error(err))
		return false, newProtocolError("GetObject", req.Bucket, name, err, "Cannot download object")
	}
	defer func() { _ = body.Close() }()

	tracker := newProgressTracker(ctx, n, progress, models.ProgressEvent{Name: name, Bucket: req.Bucket}, total)
	buf := make([]byte, n.transferChunkSize)
	var written int64
	for {
		nr, rerr := body.Read(buf)
		if nr > 0 {
			if _, werr := file.Write(buf[:nr]); werr != nil {
				return false, fmt.Errorf("writing %s: %w", target, werr)
			}
			written += int64(nr)
			tracker.update(written)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			log.Error("download interrupted", zap.Int64("written", written), zap.Error(rerr))
			return false, fmt.Errorf("reading %s/%s: %w", req.Bucket, name, rerr)
		}
	}

	if err := file.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", target, err)
	}
	log.Debug("download complete", zap.Int64("bytes", written), zap.String("path", target))
	return true, nil
}

// destinationPath joins dir and key, refusing keys that climb out of dir
func destinationPath(dir, key string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if key == "" {
		return "", ErrUnsafeDestination
	}
	target := filepath.Join(dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrUnsafeDestination
	}
	return target, nil
}

// sniffContentType detects the content type from the file header and rewinds the file
func sniffContentType(r io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// progressTracker turns byte counts into monotonic ProgressEvents
type progressTracker struct {
	ctx   context.Context
	n     *Navigator
	ch    chan<- models.ProgressEvent
	event models.ProgressEvent
	total int64
	last  float64
}

func newProgressTracker(ctx context.Context, n *Navigator, ch chan<- models.ProgressEvent, event models.ProgressEvent, total int64) *progressTracker {
	return &progressTracker{ctx: ctx, n: n, ch: ch, event: event, total: total, last: -1}
}

func (t *progressTracker) update(byteCount int64) {
	if t.ch == nil {
		return
	}
	percent := CalculateDownloadPercentage(t.total, byteCount)
	if percent <= t.last {
		return
	}
	t.last = percent

	event := t.event
	event.Percent = percent
	select {
	case t.ch <- event:
	case <-t.ctx.Done():
		t.ch = nil
		t.n.logger.Debug("transfer context done, progress reporting stopped",
			zap.String("name", event.Name), zap.Float64("percent", percent))
	}
}

// progressReader counts bytes handed to the transport; seeking rewinds the count
type progressReader struct {
	r      io.ReadSeeker
	read   int64
	onRead func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	nr, err := p.r.Read(b)
	if nr > 0 {
		p.read += int64(nr)
		p.onRead(p.read)
	}
	return nr, err
}

func (p *progressReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := p.r.Seek(offset, whence)
	if err == nil {
		p.read = pos
	}
	return pos, err
}
