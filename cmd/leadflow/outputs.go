package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"leadflow-engine/internal/export"
	"leadflow-engine/internal/pipeline"
	"leadflow-engine/internal/report"
	"leadflow-engine/internal/store"
)

// saveInvestors writes the CSV (when there are leads), the report and the
// SQLite history row, in that order.
func (a *app) saveInvestors(ctx context.Context, run *store.Run, res pipeline.InvestorResult, log *zap.Logger) error {
	cfg := a.cfg
	run.Batches, run.FailedBatches, run.Kept = res.Stats.Batches, res.Stats.FailedBatches, res.Stats.Kept

	if cfg.Export.CSV && len(res.Leads) > 0 {
		path := export.InvestorsPath(cfg.App.DataDir, run.FinishedAt)
		if err := export.WriteInvestors(path, res.Leads); err != nil {
			return fmt.Errorf("write investors csv: %w", err)
		}
		run.CSVPath = path
		log.Info("csv written", zap.String("path", path), zap.Int("rows", len(res.Leads)))
	}

	sum := report.SummarizeInvestors(res.Leads, report.OptionsFrom(cfg), run.FinishedAt)
	path, err := report.Save(cfg.App.DataDir, report.InvestorReportFile, func(w io.Writer) error {
		return report.RenderInvestors(w, sum)
	})
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info("report written", zap.String("path", path), zap.Int("revenue", sum.Revenue))

	return a.withStore(ctx, func(db *store.DB) error {
		return db.SaveInvestorRun(ctx, *run, res.Leads)
	})
}

func (a *app) saveInheritance(ctx context.Context, run *store.Run, res pipeline.InheritanceResult, log *zap.Logger) error {
	cfg := a.cfg
	run.Batches, run.FailedBatches, run.Kept = res.Stats.Batches, res.Stats.FailedBatches, res.Stats.Kept

	if cfg.Export.CSV && len(res.Properties) > 0 {
		path := export.PropertiesPath(cfg.App.DataDir, run.FinishedAt)
		if err := export.WriteProperties(path, res.Properties); err != nil {
			return fmt.Errorf("write properties csv: %w", err)
		}
		run.CSVPath = path
		log.Info("csv written", zap.String("path", path), zap.Int("rows", len(res.Properties)))
	}
	if cfg.Export.IncludeObituaries && len(res.Obituaries) > 0 {
		path := export.ObituariesPath(cfg.App.DataDir, run.FinishedAt)
		if err := export.WriteObituaries(path, res.Obituaries); err != nil {
			return fmt.Errorf("write obituaries csv: %w", err)
		}
		log.Info("csv written", zap.String("path", path), zap.Int("rows", len(res.Obituaries)))
	}

	sum := report.SummarizeProperties(res.Properties, report.OptionsFrom(cfg), run.FinishedAt)
	path, err := report.Save(cfg.App.DataDir, report.InheritanceReportFile, func(w io.Writer) error {
		return report.RenderProperties(w, sum)
	})
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info("report written", zap.String("path", path), zap.Int("total_value", sum.TotalValue))

	return a.withStore(ctx, func(db *store.DB) error {
		return db.SavePropertyRun(ctx, *run, res.Properties)
	})
}

// withStore opens the run history for fn. It does nothing when
// export.sqlite_path is unset.
func (a *app) withStore(ctx context.Context, fn func(db *store.DB) error) error {
	path := a.dbPath()
	if path == "" {
		return nil
	}
	db, err := store.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer db.Close()
	return fn(db)
}
