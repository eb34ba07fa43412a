package services

import (
	"context"
	"slices"

	"github.com/damacus/iron-navigator/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BackfillRegions looks up the region of every bucket concurrently.
//
// A single goroutine owns the region table: lookups send their result to it and
// it applies them one at a time, publishing a copy of the table after each change.
// The first snapshot has no regions filled in. The channel is buffered for every
// snapshot and is closed once all lookups have finished. Failed lookups are logged
// and leave the region empty.
func (n *Navigator) BackfillRegions(ctx context.Context, id *models.Identity, buckets []string) <-chan []models.BucketRegion {
	snapshots := make(chan []models.BucketRegion, len(buckets)+1)
	updates := make(chan models.BucketRegion)

	go func() {
		defer close(snapshots)

		table := make([]models.BucketRegion, len(buckets))
		index := make(map[string]int, len(buckets))
		for i, name := range buckets {
			table[i] = models.BucketRegion{Name: name}
			index[name] = i
		}
		snapshots <- slices.Clone(table)

		for update := range updates {
			i, ok := index[update.Name]
			if !ok {
				continue
			}
			table[i].Region = update.Region
			snapshots <- slices.Clone(table)
		}
	}()

	go func() {
		defer close(updates)

		var g errgroup.Group
		g.SetLimit(n.backfillWorkers)
		for _, name := range buckets {
			g.Go(func() error {
				region, err := n.regions.Resolve(ctx, id, name)
				if err != nil {
					n.logger.Warn("region lookup failed", zap.String("bucket", name), zap.Error(err))
					return nil
				}
				select {
				case updates <- models.BucketRegion{Name: name, Region: region}:
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return snapshots
}

// LatestSnapshot drains snapshots and returns the last table published
func LatestSnapshot(snapshots <-chan []models.BucketRegion) []models.BucketRegion {
	var latest []models.BucketRegion
	for snapshot := range snapshots {
		latest = snapshot
	}
	return latest
}
