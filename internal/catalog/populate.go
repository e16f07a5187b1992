package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pokedexd/internal/logging"
)

// PopulateProgress reports incremental progress for a running populate job.
type PopulateProgress struct {
	JobID   string
	Total   int
	Done    int
	Fetched int
	Skipped int
	Failed  int
	Current string
}

// PopulateResult summarizes a finished populate job.
type PopulateResult struct {
	JobID    string
	Total    int
	Fetched  int
	Skipped  int
	Failed   int
	Duration time.Duration
	Canceled bool
}

// ProgressFunc receives progress snapshots; nil callbacks are allowed.
type ProgressFunc func(PopulateProgress)

// Populate walks the remote index page by page and caches every record that
// is not already stored. Cached records are skipped without a network fetch.
// Cancellation via ctx stops the job between fetches and reports partial
// results rather than an error.
func (c *Catalog) Populate(ctx context.Context, progress ProgressFunc) (*PopulateResult, error) {
	jobID := uuid.NewString()
	start := time.Now()
	logger := c.logger.With(logging.String(logging.FieldJobID, jobID))

	result := &PopulateResult{JobID: jobID}
	batchSize := c.cfg.Populate.BatchSize
	pageDelay := time.Duration(c.cfg.Populate.PageDelayMS) * time.Millisecond
	fetchDelay := time.Duration(c.cfg.Populate.FetchDelayMS) * time.Millisecond

	logger.Info("populate started", logging.Int("batch_size", batchSize))

	offset := 0
	for {
		page, err := c.client.Index(ctx, batchSize, offset)
		if err != nil {
			if canceled(ctx, err) {
				result.Canceled = true
				break
			}
			return nil, Wrap(ErrUnavailable, "catalog", "populate", "index page", err)
		}
		result.Total = page.Count

		for _, entry := range page.Results {
			id := entry.ID()
			if id < c.cfg.Dex.MinID || id > c.cfg.Dex.MaxID {
				result.Skipped++
				continue
			}

			cached, err := c.Cached(ctx, id)
			if err != nil {
				if canceled(ctx, err) {
					result.Canceled = true
					break
				}
				return nil, Wrap(nil, "catalog", "populate", "check cache", err)
			}
			if cached {
				result.Skipped++
				c.report(progress, jobID, result, entry.Name)
				continue
			}

			if _, err := c.fetchAndStore(ctx, entry.Name); err != nil {
				if canceled(ctx, err) {
					result.Canceled = true
					break
				}
				result.Failed++
				logger.Warn("populate fetch failed",
					logging.Int64(logging.FieldRecordID, id),
					logging.String("name", entry.Name),
					logging.Error(err))
			} else {
				result.Fetched++
			}
			c.report(progress, jobID, result, entry.Name)

			if fetchDelay > 0 && !sleepCtx(ctx, fetchDelay) {
				result.Canceled = true
				break
			}
		}

		if result.Canceled || page.Next == "" {
			break
		}
		offset += batchSize
		if pageDelay > 0 && !sleepCtx(ctx, pageDelay) {
			result.Canceled = true
			break
		}
	}

	result.Duration = time.Since(start)
	logger.Info("populate finished",
		logging.Int("fetched", result.Fetched),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", result.Failed),
		logging.Bool("canceled", result.Canceled),
		logging.Duration("duration", result.Duration))
	return result, nil
}

func (c *Catalog) report(progress ProgressFunc, jobID string, result *PopulateResult, current string) {
	if progress == nil {
		return
	}
	progress(PopulateProgress{
		JobID:   jobID,
		Total:   result.Total,
		Done:    result.Fetched + result.Skipped + result.Failed,
		Fetched: result.Fetched,
		Skipped: result.Skipped,
		Failed:  result.Failed,
		Current: current,
	})
}

func canceled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// sleepCtx waits for the delay unless the context ends first.
func sleepCtx(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
