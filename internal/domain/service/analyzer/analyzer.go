package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"deal_analyzer/internal/domain"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/internal/domain/service/deals"
	"deal_analyzer/internal/infrastructure/snapshot"
	"deal_analyzer/pkg/contextx"
	"deal_analyzer/pkg/errcodes"
	"deal_analyzer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type SnapshotLoader interface {
	Discover(dir string, day time.Time) ([]string, error)
	Load(path string) ([]entity.Deal, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, deals []entity.Deal) (any, error)
}

type ReportWriter interface {
	Write(result entity.RunResult, dir string) (jsonPath, csvPath string, err error)
}

type Notifier interface {
	SendText(ctx context.Context, text string) error
	SendFile(ctx context.Context, path, caption string) error
}

type Config struct {
	DataDir     string
	AnalysisDir string
	// Headline is sent as a text message before the report file. Empty skips it.
	Headline string
}

// Analyzer runs the daily pipeline: discover snapshots, pick out significant
// deals per category, ask for a summary, write the report and deliver it.
type Analyzer struct {
	cfg        Config
	loader     SnapshotLoader
	summarizer Summarizer
	writer     ReportWriter
	notifier   Notifier

	threshold    float64
	summaryCache *cache.Cache
	now          func() time.Time
}

func New(
	cfg Config,
	loader SnapshotLoader,
	summarizer Summarizer,
	writer ReportWriter,
	notifier Notifier,
) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		loader:     loader,
		summarizer: summarizer,
		writer:     writer,
		notifier:   notifier,
		threshold:  deals.DefaultThreshold,
		now:        time.Now,
	}
}

func (a *Analyzer) WithThreshold(percent float64) *Analyzer {
	a.threshold = percent
	return a
}

// WithSummaryCache reuses summaries of unchanged deal sets for ttl.
// A non-positive ttl leaves caching off.
func (a *Analyzer) WithSummaryCache(ttl time.Duration) *Analyzer {
	if ttl <= 0 {
		a.summaryCache = nil
		return a
	}

	a.summaryCache = cache.New(ttl, 2*ttl)

	return a
}

func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Discover lists the snapshots of the given day in the data directory.
func (a *Analyzer) Discover(ctx context.Context, day time.Time) ([]string, error) {
	paths, err := a.loader.Discover(a.cfg.DataDir, day)
	if err != nil {
		return nil, fmt.Errorf("loader.Discover: %w", err)
	}

	logger(ctx).Info("snapshots discovered",
		logx.FieldFileCount, len(paths),
	)

	return paths, nil
}

// ProcessFile turns one snapshot into its CategoryResult. A failed summary
// does not fail the file: the category keeps its deals with an error marker.
func (a *Analyzer) ProcessFile(ctx context.Context, path string) (result entity.CategoryResult, err error) {
	category := snapshot.Category(path)

	defer func() {
		if r := recover(); r != nil {
			logger(ctx).Error("panic while processing snapshot",
				logx.FieldFile, path,
				logx.FieldStack, string(debug.Stack()),
			)

			err = domain.NewError(errcodes.LoadError, fmt.Sprintf("panic: %v", r))
		}
	}()

	records, err := a.loader.Load(path)
	if err != nil {
		return entity.CategoryResult{}, fmt.Errorf("loader.Load: %w", err)
	}

	found := deals.FilterAndRank(records, a.threshold)

	logger(ctx).Info("snapshot loaded",
		logx.FieldCategory, category,
		logx.FieldRecordCount, len(records),
		logx.FieldDealCount, len(found),
	)

	dealsTotal.WithLabelValues(category).Add(float64(len(found)))

	return entity.CategoryResult{
		Category:   category,
		Deals:      found,
		AIAnalysis: a.summarize(ctx, category, found),
	}, nil
}

func (a *Analyzer) summarize(ctx context.Context, category string, found []entity.Deal) any {
	key, cacheable := a.summaryKey(category, found)
	if cacheable {
		if cached, ok := a.summaryCache.Get(key); ok {
			summaryRequestsTotal.WithLabelValues(statusCached).Inc()
			logger(ctx).Debug("summary served from cache", logx.FieldCategory, category)

			return cached
		}
	}

	analysis, err := a.summarizer.Summarize(ctx, found)
	if err != nil {
		summaryRequestsTotal.WithLabelValues(statusFailed).Inc()
		logger(ctx).Error("summary request failed",
			logx.FieldCategory, category,
			logx.Error(err),
		)

		return entity.AnalysisError{Error: err.Error()}
	}

	summaryRequestsTotal.WithLabelValues(statusSuccess).Inc()

	if cacheable {
		a.summaryCache.Set(key, analysis, cache.DefaultExpiration)
	}

	return analysis
}

func (a *Analyzer) summaryKey(category string, found []entity.Deal) (string, bool) {
	if a.summaryCache == nil {
		return "", false
	}

	payload, err := json.Marshal(found)
	if err != nil {
		return "", false
	}

	return category + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), true
}

// Run executes one full pass. Only discovery and materialization failures
// fail the run; per-file and notification problems are logged and counted.
func (a *Analyzer) Run(ctx context.Context) (entity.RunReport, error) {
	ctx, traceID := contextx.StartTrace(ctx)

	// снапшоты ищутся по дате старта прогона
	report := entity.RunReport{
		TraceID:   traceID.String(),
		StartedAt: a.now(),
	}

	logger(ctx).Info("analysis run started")

	err := a.run(ctx, &report)

	report.FinishedAt = a.now()
	runDuration.Observe(report.Duration().Seconds())

	if err != nil {
		report.Error = err.Error()
		runsTotal.WithLabelValues(statusFailed).Inc()
		logger(ctx).Error("analysis run failed",
			logx.FieldDurationMs, report.Duration().Milliseconds(),
			logx.Error(err),
		)

		return report, err
	}

	runsTotal.WithLabelValues(statusSuccess).Inc()
	lastSuccessTimestamp.Set(float64(report.FinishedAt.Unix()))

	logger(ctx).Info("analysis run finished",
		logx.FieldFileCount, report.FilesProcessed,
		logx.FieldDealCount, report.DealCount,
		logx.FieldCSVPath, report.CSVPath,
		logx.FieldDurationMs, report.Duration().Milliseconds(),
	)

	return report, nil
}

func (a *Analyzer) run(ctx context.Context, report *entity.RunReport) error {
	paths, err := a.Discover(ctx, report.StartedAt)
	if err != nil {
		return err
	}

	report.FilesDiscovered = len(paths)

	result := make(entity.RunResult, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted: %w", err)
		}

		categoryResult, err := a.ProcessFile(ctx, path)
		if err != nil {
			report.FilesFailed++
			filesTotal.WithLabelValues(statusFailed).Inc()
			logger(ctx).Error("snapshot skipped",
				logx.FieldFile, path,
				logx.Error(err),
			)

			continue
		}

		report.FilesProcessed++
		filesTotal.WithLabelValues(statusSuccess).Inc()
		result = append(result, categoryResult)
	}

	report.DealCount = result.DealCount()

	jsonPath, csvPath, err := a.writer.Write(result, a.cfg.AnalysisDir)
	if err != nil {
		if !domain.IsAppError(err) {
			err = domain.WrapError(err, errcodes.MaterializationError, "write report")
		}

		return fmt.Errorf("writer.Write: %w", err)
	}

	report.JSONPath = jsonPath
	report.CSVPath = csvPath

	logger(ctx).Info("report written",
		logx.FieldJSONPath, jsonPath,
		logx.FieldCSVPath, csvPath,
	)

	a.notify(ctx, csvPath)

	return nil
}

func (a *Analyzer) notify(ctx context.Context, csvPath string) {
	if a.notifier == nil {
		return
	}

	if a.cfg.Headline != "" {
		if err := a.notifier.SendText(ctx, a.cfg.Headline); err != nil {
			logger(ctx).Error("headline not delivered", logx.Error(err))
		}
	}

	if err := a.notifier.SendFile(ctx, csvPath, ""); err != nil {
		if errors.Is(err, context.Canceled) {
			logger(ctx).Warn("report delivery canceled", logx.FieldCSVPath, csvPath)
			return
		}

		logger(ctx).Error("report not delivered",
			logx.FieldCSVPath, csvPath,
			logx.Error(err),
		)
	}
}
