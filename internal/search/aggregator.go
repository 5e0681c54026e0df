package search

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dianaf18/jobpilot/internal/job"
)

const (
	// Only the strongest keywords of the criteria drive the search.
	maxSearchKeywords  = 3
	defaultParallelism = 4
)

// Aggregator drives every registered source across the top keywords of the
// criteria and merges the results deterministically.
type Aggregator struct {
	sources []job.SourceAdapter
	logger  *zap.Logger

	// Parallelism bounds the number of in-flight fetches.
	Parallelism int
	// Dedupe removes duplicate listings surfaced by several keywords or
	// sources. Off by default.
	Dedupe bool
}

func NewAggregator(sources []job.SourceAdapter, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		sources:     sources,
		logger:      logger,
		Parallelism: defaultParallelism,
	}
}

// Search fetches listings for the criteria. A failing source contributes
// zero listings and never aborts the search; the merged result is ordered by
// source registration first, then keyword, regardless of completion order.
// Returned listings are unscored.
func (a *Aggregator) Search(ctx context.Context, criteria *Criteria, location string) *job.Listings {
	keywords := criteria.TopKeywords(maxSearchKeywords)

	slots := make([][][]*job.RawListing, len(a.sources))
	for i := range slots {
		slots[i] = make([][]*job.RawListing, len(keywords))
	}

	g := &errgroup.Group{}
	parallelism := a.Parallelism
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	g.SetLimit(parallelism)

	for si, source := range a.sources {
		for ki, keyword := range keywords {
			g.Go(func() error {
				items, err := source.Fetch(ctx, keyword, location)
				if err != nil {
					a.logger.Warn("job source failed",
						zap.String("source", source.Name()),
						zap.String("keyword", keyword),
						zap.Error(err),
					)
					return nil
				}

				slots[si][ki] = items
				return nil
			})
		}
	}

	// Workers never report errors; failures degrade to empty slots.
	_ = g.Wait()

	listings := &job.Listings{}
	for si, source := range a.sources {
		for ki := range keywords {
			for _, raw := range slots[si][ki] {
				listings.Append(raw.ToListing(source.Name()))
			}
		}
	}

	if a.Dedupe {
		removed := listings.Dedupe()
		if len(removed) > 0 {
			a.logger.Info("removed duplicate listings",
				zap.Int("removed", len(removed)),
				zap.Int("left", listings.Len()),
			)
		}
	}

	a.logger.Info("search completed",
		zap.Strings("keywords", keywords),
		zap.Int("sources", len(a.sources)),
		zap.Int("listings", listings.Len()),
	)

	return listings
}
