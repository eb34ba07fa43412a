package services

import (
	"context"
	"strconv"

	"github.com/damacus/iron-navigator/internal/models"
	"go.uber.org/zap"
)

// ListCurrentLocation lists the buckets at the root, or the shallow contents of bucket/prefix
func (n *Navigator) ListCurrentLocation(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error) {
	if bucket == "" {
		items, _, err := n.ListBuckets(ctx, id, 0, 0)
		return items, err
	}
	return n.List(ctx, id, bucket, prefix)
}

// ListBuckets returns one page of buckets and the total bucket count.
// A pageSize of zero or less returns every bucket. Pages past the end are empty.
func (n *Navigator) ListBuckets(ctx context.Context, id *models.Identity, page, pageSize int) ([]models.StorageItem, int, error) {
	store, _, err := n.clients.Client(ctx, id, "")
	if err != nil {
		return nil, 0, err
	}

	buckets, err := store.ListBuckets(ctx)
	if err != nil {
		n.logger.Error("failed to list buckets", zap.Error(err))
		return nil, 0, newProtocolError("ListBuckets", "", "", err, "Cannot list buckets")
	}

	total := len(buckets)
	start, end := 0, total
	if pageSize > 0 {
		if page < 0 {
			page = 0
		}
		start = page * pageSize
		if start >= total {
			return []models.StorageItem{}, total, nil
		}
		end = min(start+pageSize, total)
	}

	items := make([]models.StorageItem, 0, end-start)
	for _, b := range buckets[start:end] {
		items = append(items, models.NewBucketItem(b.Name))
	}
	return items, total, nil
}

// List returns the objects and directories directly under prefix
func (n *Navigator) List(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error) {
	store, region, err := n.bucketClient(ctx, id, bucket)
	if err != nil {
		return nil, err
	}

	items := []models.StorageItem{}
	err = n.walkPages(ctx, store, bucket, prefix, func(page ListObjectsResult) {
		for _, obj := range page.Objects {
			items = append(items, objectItem(bucket, region, obj))
		}
		for _, p := range page.CommonPrefixes {
			if p == Delimiter {
				continue
			}
			items = append(items, models.NewDirectoryItem(bucket, region, p))
		}
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll returns every object below prefix, descending into all directories.
// Any failed page aborts the walk and nothing is returned. Zero-byte directory
// markers such as "h/" are returned as leaves with an empty FileName; Download
// turns them into local directories.
func (n *Navigator) ListAll(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error) {
	store, region, err := n.bucketClient(ctx, id, bucket)
	if err != nil {
		return nil, err
	}

	items := []models.StorageItem{}
	pending := []string{prefix}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		var children []string
		err := n.walkPages(ctx, store, bucket, current, func(page ListObjectsResult) {
			for _, obj := range page.Objects {
				items = append(items, objectItem(bucket, region, obj))
			}
			children = append(children, page.CommonPrefixes...)
		})
		if err != nil {
			n.logger.Error("deep listing aborted", zap.String("bucket", bucket), zap.String("prefix", current), zap.Error(err))
			return nil, err
		}

		// pushed in reverse so directories are visited in listing order
		for i := len(children) - 1; i >= 0; i-- {
			pending = append(pending, children[i])
		}
	}
	return items, nil
}

// walkPages follows continuation tokens for one delimited prefix, handing each page to fn
func (n *Navigator) walkPages(ctx context.Context, store ObjectStore, bucket, prefix string, fn func(ListObjectsResult)) error {
	opts := ListObjectsOptions{
		Prefix:    prefix,
		Delimiter: Delimiter,
		MaxKeys:   n.pageSize,
	}
	for {
		page, err := store.ListObjectsPage(ctx, bucket, opts)
		if err != nil {
			return newProtocolError("ListObjectsV2", bucket, prefix, err, "Cannot list objects")
		}
		fn(page)

		if !page.IsTruncated || page.NextContinuationToken == "" {
			return nil
		}
		opts.ContinuationToken = page.NextContinuationToken
	}
}

func objectItem(bucket, region string, obj ObjectEntry) models.StorageItem {
	return models.StorageItem{
		BucketInfo: models.BucketInfo{Bucket: &bucket, Region: &region},
		FileInfo: models.FileInfo{
			FileName: models.FileName(obj.Key),
			Size:     strconv.FormatInt(obj.Size, 10),
			FileType: models.FileExtension(obj.Key),
			Path:     obj.Key,
		},
	}
}
