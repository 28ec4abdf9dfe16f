// Package pipeline runs one lead hunt: it fans the fetch batches out, then
// extracts, scores, enriches and ranks their fragments in city order.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
	"leadflow-engine/internal/enrich"
	"leadflow-engine/internal/fetch"
)

var ErrNoFetcher = errors.New("no page fetcher available")

// Stats counts what happened to every fragment of a run.
type Stats struct {
	Batches        int
	FailedBatches  int
	Fragments      int
	Rejected       int
	BelowThreshold int
	Duplicates     int
	EnrichFailures int
	Kept           int
}

type Pipeline struct {
	Cfg      config.Config
	Fetcher  fetch.Fetcher
	Provider enrich.Provider
	Rand     enrich.Rand // city sampling
	Log      *zap.Logger
	Now      func() time.Time
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

type batch struct {
	query fetch.Query
	frags []domain.RawFragment
	err   error
}

// fetchAll runs every query, at most Pipeline.Concurrency at a time. Each
// result lands in its own slot so the merge keeps query order. A failed
// query is logged and leaves an empty batch behind.
func (p *Pipeline) fetchAll(ctx context.Context, queries []fetch.Query) []batch {
	out := make([]batch, len(queries))
	limit := p.Cfg.Pipeline.Concurrency
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	log := p.logger()

	for i, q := range queries {
		g.Go(func() error {
			out[i].query = q
			if err := ctx.Err(); err != nil {
				out[i].err = err
				return nil
			}
			log.Info("fetching", zap.String("fetcher", p.Fetcher.Name()), zap.String("query", q.String()))
			frags, err := p.Fetcher.Fetch(ctx, q)
			if err != nil {
				log.Warn("batch failed", zap.String("query", q.String()), zap.Error(err))
				out[i].err = err
				return nil
			}
			if q.Limit > 0 && len(frags) > q.Limit {
				frags = frags[:q.Limit]
			}
			out[i].frags = frags
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Stats) countBatches(batches []batch) {
	for _, b := range batches {
		s.Batches++
		if b.err != nil {
			s.FailedBatches++
		}
		s.Fragments += len(b.frags)
	}
}
