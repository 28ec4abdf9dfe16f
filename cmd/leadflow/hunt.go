package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadflow-engine/internal/enrich"
	"leadflow-engine/internal/export"
	"leadflow-engine/internal/fetch"
	"leadflow-engine/internal/metrics"
	"leadflow-engine/internal/pipeline"
	"leadflow-engine/internal/schedule"
	"leadflow-engine/internal/store"
)

const (
	kindInvestors   = "investors"
	kindInheritance = "inheritance"
)

type huntFlags struct {
	cities []string
	every  time.Duration
	seed   int64
}

func newHuntCmd(g *globalFlags, kind string) *cobra.Command {
	f := &huntFlags{}
	short := "Search target cities for real-estate investor profiles"
	if kind == kindInheritance {
		short = "Read obituary listings and look up inherited properties"
	}
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			return a.hunt(cmd.Context(), kind, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringArrayVar(&f.cities, "city", nil, "city to search (repeatable); default samples the configured targets")
	cmd.Flags().DurationVar(&f.every, "every", 0, "repeat the run on this interval until interrupted")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for city sampling and enrichment (0 uses enrichment.seed)")
	return cmd
}

func (a *app) hunt(ctx context.Context, kind string, f *huntFlags, out io.Writer) error {
	unlock, err := export.LockDir(a.cfg.App.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	rec := metrics.New()
	once := func(ctx context.Context) error {
		return a.runOnce(ctx, kind, f, rec, out)
	}
	if f.every <= 0 {
		return once(ctx)
	}

	a.log.Info("scheduled", zap.String("kind", kind), zap.Duration("every", f.every))
	schedule.Every(ctx, f.every, kind, a.log.Named("schedule"), once)
	return nil
}

func (a *app) runOnce(ctx context.Context, kind string, f *huntFlags, rec *metrics.Recorder, out io.Writer) error {
	cfg := a.cfg
	if f.seed != 0 {
		cfg.Enrichment.Seed = f.seed
	}
	seed := cfg.Enrichment.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		cfg.Enrichment.Seed = seed
	}

	run := store.Run{ID: uuid.NewString(), Kind: kind, StartedAt: time.Now().UTC()}
	log := a.log.With(zap.String("run", run.ID))

	fetcher, err := fetch.New(ctx, cfg, log.Named("fetch"))
	if err != nil {
		return fmt.Errorf("fetcher setup: %w", err)
	}
	defer func() { _ = fetcher.Close() }()

	provider, err := enrich.New(cfg)
	if err != nil {
		return err
	}
	p := &pipeline.Pipeline{
		Cfg:      cfg,
		Fetcher:  fetcher,
		Provider: provider,
		Rand:     enrich.NewRand(seed),
		Log:      log,
	}
	log.Info("run started", zap.String("kind", kind), zap.String("fetcher", fetcher.Name()), zap.Int64("seed", seed))

	var (
		stats  pipeline.Stats
		msg    string
		runErr error // interrupted run; results are still saved
	)
	switch kind {
	case kindInvestors:
		res, err := p.RunInvestors(ctx, f.cities)
		if err != nil && !interrupted(err) {
			return err
		}
		runErr = err
		stats = res.Stats
		run.Cities = res.Cities
		run.FinishedAt = time.Now().UTC()
		if err := a.saveInvestors(context.WithoutCancel(ctx), &run, res, log); err != nil {
			return err
		}
		msg = fmt.Sprintf("%d investor leads from %s", len(res.Leads), strings.Join(res.Cities, ", "))
	case kindInheritance:
		res, err := p.RunInheritance(ctx, f.cities)
		if err != nil && !interrupted(err) {
			return err
		}
		runErr = err
		stats = res.Stats
		run.Cities = res.Cities
		run.FinishedAt = time.Now().UTC()
		if err := a.saveInheritance(context.WithoutCancel(ctx), &run, res, log); err != nil {
			return err
		}
		msg = fmt.Sprintf("%d inherited properties from %d obituaries in %s",
			len(res.Properties), len(res.Obituaries), strings.Join(res.Cities, ", "))
	default:
		return fmt.Errorf("unknown hunt %q", kind)
	}

	rec.Observe(kind, stats, run.StartedAt, run.FinishedAt)
	if err := rec.WriteTextfile(cfg.App.MetricsTextfile); err != nil {
		log.Warn("metrics textfile not written", zap.Error(err))
	}
	if runErr != nil {
		log.Warn("run interrupted, partial results saved", zap.Error(runErr))
		return runErr
	}
	if stats.Batches > 0 && stats.FailedBatches == stats.Batches {
		return errors.New("every fetch batch failed")
	}
	_, err = fmt.Fprintln(out, msg)
	return err
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
