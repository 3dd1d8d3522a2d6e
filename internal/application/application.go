package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"deal_analyzer/internal/config"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/internal/domain/service/analyzer"
	"deal_analyzer/internal/infrastructure/aiclient"
	"deal_analyzer/internal/infrastructure/notifier"
	"deal_analyzer/internal/infrastructure/report"
	"deal_analyzer/internal/infrastructure/runlock"
	"deal_analyzer/internal/infrastructure/snapshot"
	"deal_analyzer/internal/transport/bot"
	"deal_analyzer/internal/worker"
	"deal_analyzer/pkg/application/connectors"
	"deal_analyzer/pkg/application/modules"
	"deal_analyzer/pkg/contextx"
	"deal_analyzer/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run wires the pipeline and blocks until ctx is canceled or a module fails.
func Run(ctx context.Context, cfg config.Config) error {
	// 1. Notifier
	tgBot, err := notifier.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	// 2. Analysis client
	aiClient := aiclient.New(aiclient.Options{
		URL:            cfg.AI.URL,
		APIKey:         cfg.AI.APIKey,
		Mode:           cfg.AI.Mode,
		User:           cfg.AI.User,
		Timeout:        cfg.AI.Timeout,
		LogFieldMaxLen: cfg.AI.LogFieldMaxLen,
	})

	// 3. Pipeline
	svc := analyzer.New(
		analyzer.Config{
			DataDir:     cfg.Analysis.DataDir,
			AnalysisDir: cfg.Analysis.AnalysisDir,
			Headline:    cfg.Telegram.Headline,
		},
		snapshot.NewLoader(),
		aiClient,
		report.NewWriter(),
		tgBot,
	).
		WithThreshold(cfg.Analysis.Threshold).
		WithSummaryCache(cfg.AI.CacheTTL)

	scheduler := worker.NewScheduler(svc).
		WithDailyAt(cfg.Scheduler.DailyAt).
		WithInterval(cfg.Scheduler.Interval).
		WithRunOnStart(cfg.Scheduler.RunOnStart)

	// 4. Shared run lock (optional)
	if cfg.Redis.Enabled() {
		rc := &connectors.Redis{
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			Address:        cfg.Redis.Addr,
			DatabaseNumber: cfg.Redis.DB,
		}
		defer rc.Close(ctx)

		client, err := rc.Client(ctx)
		if err != nil {
			return fmt.Errorf("redis.Client: %w", err)
		}

		scheduler.WithLocker(runlock.NewRedisLocker(client, cfg.Redis.LockKey, cfg.Redis.LockTTL))
	}

	if cfg.Scheduler.RunOnce {
		return runOnce(ctx, scheduler)
	}

	// 5. Modules
	g, gCtx := errgroup.WithContext(ctx)

	modules.MetricServer{
		ListenAddress: cfg.Servers.MetricsListenAddress,
	}.Run(gCtx, g)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Servers.ProbeListenAddress,
		Ready:         readiness(scheduler),
	}.Run(gCtx, g)

	g.Go(func() error {
		if err := scheduler.Run(gCtx); err != nil {
			return fmt.Errorf("scheduler.Run: %w", err)
		}

		return nil
	})

	if cfg.Telegram.CommandsEnabled {
		adminBot := bot.New(tgBot.Bot(), cfg.Telegram.Admin(), scheduler)

		g.Go(func() error {
			if err := adminBot.Run(gCtx); err != nil {
				return fmt.Errorf("adminBot.Run: %w", err)
			}

			return nil
		})
	}

	logger(ctx).Info("application started",
		slog.String("data-dir", cfg.Analysis.DataDir),
		slog.String("analysis-dir", cfg.Analysis.AnalysisDir),
		slog.Bool("bot-commands", cfg.Telegram.CommandsEnabled),
		slog.Bool("run-lock", cfg.Redis.Enabled()),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	logger(ctx).Info("application stopping...")

	return nil
}

type trigger interface {
	Trigger(ctx context.Context) (entity.RunReport, error)
}

// runOnce runs a single analysis in the foreground, for cron jobs and manual
// invocations.
func runOnce(ctx context.Context, t trigger) error {
	report, err := t.Trigger(ctx)
	if err != nil {
		return fmt.Errorf("scheduler.Trigger: %w", err)
	}

	logger(ctx).Info("single run finished",
		slog.String("trace-id", report.TraceID),
		slog.Int("deals", report.DealCount),
		slog.Int("files", report.FilesProcessed),
	)

	return nil
}

// readiness reports ready once the schedules are registered, with the last
// run outcome as details.
func readiness(scheduler *worker.Scheduler) probe.ReadinessFunc {
	return func() probe.Readiness {
		status := scheduler.Status()

		details := map[string]any{
			"running": status.Running,
		}

		if !status.NextRun.IsZero() {
			details["next_run"] = status.NextRun
		}

		if report := status.LastReport; report != nil {
			details["last_run"] = map[string]any{
				"trace_id":    report.TraceID,
				"finished_at": report.FinishedAt,
				"deals":       report.DealCount,
				"ok":          report.Succeeded(),
			}
		}

		return probe.Readiness{
			Ready:   scheduler.Ready(),
			Details: details,
		}
	}
}
