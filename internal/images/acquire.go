package images

import (
	"context"
	"sync/atomic"

	"github.com/SarthakNawali/ai-word-generator/internal/document"
	"github.com/SarthakNawali/ai-word-generator/internal/imagesearch"
	"github.com/SarthakNawali/ai-word-generator/internal/logger"
	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

const (
	// MaxPerCall caps how many assets one acquisition may attach.
	MaxPerCall = 2
	// MaxSearchCalls caps search-capability calls across one run.
	MaxSearchCalls = 12

	candidatesPerSearch = 5
)

// Acquirer collects validated image assets for one run. The search-call
// budget is scoped to the Acquirer; build a fresh one per run.
type Acquirer struct {
	engine    imagesearch.Engine
	fetcher   *Fetcher
	remaining atomic.Int32
}

func NewAcquirer(engine imagesearch.Engine, fetcher *Fetcher) *Acquirer {
	a := &Acquirer{engine: engine, fetcher: fetcher}
	a.remaining.Store(MaxSearchCalls)
	return a
}

// Acquire returns up to want validated assets for the query. Candidates that
// fail download or validation are skipped without retry. Once the run's
// search budget is exhausted it returns nothing without contacting the
// engine — graceful degradation, not an error.
func (a *Acquirer) Acquire(ctx context.Context, query string, want int) ([]document.ImageAsset, error) {
	if want <= 0 {
		return nil, nil
	}
	if want > MaxPerCall {
		want = MaxPerCall
	}

	// Atomic decrement-and-check keeps the budget exact when sections run
	// in parallel.
	if a.remaining.Add(-1) < 0 {
		logger.Debug("image search budget exhausted, skipping query %q", query)
		return nil, nil
	}

	candidates, err := a.engine.Search(ctx, query, candidatesPerSearch)
	if err != nil {
		return nil, err
	}

	var assets []document.ImageAsset
	for _, cand := range candidates {
		if len(assets) >= want {
			break
		}
		asset, err := a.fetcher.Fetch(ctx, query, cand)
		if err != nil {
			logger.Debug("skipping candidate %s: %v (%s)", cand.URL, err, recovery.KindOf(err))
			continue
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

// RemainingSearches reports how many search calls the run may still make.
func (a *Acquirer) RemainingSearches() int {
	n := a.remaining.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
