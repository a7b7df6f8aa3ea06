package workers

import (
	"context"

	"github.com/selivandex/crypto-news/internal/pipeline"
	"github.com/selivandex/crypto-news/pkg/logger"
)

// CacheRefreshWorker keeps the query cache warm by re-running the fetch
// and enrichment path on an interval, so most inbound requests hit a
// fresh entry instead of paying the cold path.
type CacheRefreshWorker struct {
	pipe *pipeline.Pipeline
}

// NewCacheRefreshWorker creates new cache refresh worker
func NewCacheRefreshWorker(pipe *pipeline.Pipeline) *CacheRefreshWorker {
	return &CacheRefreshWorker{pipe: pipe}
}

func (w *CacheRefreshWorker) Name() string {
	return "cache_refresh"
}

func (w *CacheRefreshWorker) Run(ctx context.Context) error {
	log := logger.WithRequest("cache-refresh")
	_, err := w.pipe.Refresh(ctx, log)
	return err
}
