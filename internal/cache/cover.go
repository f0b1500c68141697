package cache

import (
	"context"
	"sync/atomic"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CoverFetcher downloads a cover image.
type CoverFetcher interface {
	FetchCover(ctx context.Context, url string) ([]byte, error)
}

// PrefetchResult counts what a Prefetch run did.
type PrefetchResult struct {
	Fetched int
	Skipped int
	Failed  int
}

// EnsureCover returns the cached path for b's cover, downloading it first if
// needed. Books without a cover URL return "".
func (m *Manager) EnsureCover(ctx context.Context, f CoverFetcher, b catalog.SummaryBook) (string, error) {
	if b.CoverURL == "" {
		return "", nil
	}
	if m.HasCover(b.ID, b.CoverURL) {
		return m.CoverPath(b.ID, b.CoverURL), nil
	}
	data, err := f.FetchCover(ctx, b.CoverURL)
	if err != nil {
		return "", err
	}
	return m.StoreCover(b.ID, b.CoverURL, data)
}

// Prefetch downloads every missing cover with at most limit requests in
// flight. A failed download is counted and logged but does not stop the run.
// onDone, if set, is called once per book from worker goroutines.
func (m *Manager) Prefetch(ctx context.Context, f CoverFetcher, books []catalog.SummaryBook, limit int, onDone func()) (PrefetchResult, error) {
	if limit < 1 {
		limit = 1
	}
	var fetched, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, b := range books {
		g.Go(func() error {
			if onDone != nil {
				defer onDone()
			}
			if b.CoverURL == "" || m.HasCover(b.ID, b.CoverURL) {
				skipped.Add(1)
				return nil
			}
			if _, err := m.EnsureCover(gctx, f, b); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logrus.WithError(err).WithField("book", b.ID).Warn("cover prefetch failed")
				failed.Add(1)
				return nil
			}
			fetched.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return PrefetchResult{
		Fetched: int(fetched.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}, err
}
