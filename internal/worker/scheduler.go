package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"deal_analyzer/internal/domain"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/pkg/contextx"
	"deal_analyzer/pkg/errcodes"
	"deal_analyzer/pkg/logx"
)

const (
	DefaultDailyAt  = "00:10"
	DefaultInterval = 6 * time.Hour

	triggerStart    = "start"
	triggerDaily    = "daily"
	triggerInterval = "interval"
	triggerManual   = "manual"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ErrRunInProgress is returned when a run is requested while another one,
// in this process or behind the shared lock, is still active.
var ErrRunInProgress = domain.NewError(errcodes.RunInProgress, "analysis run already in progress") //nolint:gochecknoglobals

type Runner interface {
	Run(ctx context.Context) (entity.RunReport, error)
}

// Locker guards runs across processes.
type Locker interface {
	TryLock(ctx context.Context) (release func(context.Context) error, ok bool, err error)
}

type Status struct {
	Running    bool
	LastReport *entity.RunReport
	NextRun    time.Time
}

// Scheduler runs the analysis at start, once a day and on a fixed interval,
// never two at a time.
type Scheduler struct {
	runner Runner
	locker Locker

	dailyAt    string
	interval   time.Duration
	runOnStart bool

	// Control fields
	mu         sync.Mutex
	cron       *cron.Cron
	baseCtx    context.Context //nolint:containedctx
	isRunning  bool
	stopping   bool
	lastReport *entity.RunReport
	wg         sync.WaitGroup
}

func NewScheduler(runner Runner) *Scheduler {
	return &Scheduler{
		runner:     runner,
		dailyAt:    DefaultDailyAt,
		interval:   DefaultInterval,
		runOnStart: true,
	}
}

// WithDailyAt sets the daily run time as HH:MM. Empty disables the daily run.
func (s *Scheduler) WithDailyAt(hhmm string) *Scheduler {
	s.dailyAt = hhmm
	return s
}

// WithInterval sets the periodic rerun. Zero disables it.
func (s *Scheduler) WithInterval(interval time.Duration) *Scheduler {
	s.interval = interval
	return s
}

func (s *Scheduler) WithRunOnStart(enabled bool) *Scheduler {
	s.runOnStart = enabled
	return s
}

func (s *Scheduler) WithLocker(locker Locker) *Scheduler {
	s.locker = locker
	return s
}

// DailySpec converts HH:MM into a five-field cron expression.
func DailySpec(hhmm string) (string, error) {
	hours, minutes, found := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !found {
		return "", fmt.Errorf("invalid time of day %q: want HH:MM", hhmm)
	}

	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("invalid hour in %q", hhmm)
	}

	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("invalid minute in %q", hhmm)
	}

	return fmt.Sprintf("%d %d * * *", m, h), nil
}

// Run registers the schedules and blocks until ctx is done. On shutdown it
// waits for the active run to return.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.Local))

	if s.dailyAt != "" {
		spec, err := DailySpec(s.dailyAt)
		if err != nil {
			return fmt.Errorf("worker.DailySpec: %w", err)
		}

		if _, err := c.AddFunc(spec, func() { s.scheduled(ctx, triggerDaily) }); err != nil {
			return fmt.Errorf("cron.AddFunc: %w", err)
		}

		logger(ctx).Info("daily run scheduled", logx.FieldSchedule, spec)
	}

	if s.interval > 0 {
		c.Schedule(cron.Every(s.interval), cron.FuncJob(func() { s.scheduled(ctx, triggerInterval) }))

		logger(ctx).Info("interval run scheduled", logx.FieldSchedule, "@every "+s.interval.String())
	}

	s.mu.Lock()
	s.cron = c
	s.baseCtx = ctx
	s.mu.Unlock()

	c.Start()
	logger(ctx).Info("scheduler started")

	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.scheduled(ctx, triggerStart)
		}()
	}

	<-ctx.Done()

	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()

	<-c.Stop().Done()
	s.wg.Wait()

	s.mu.Lock()
	s.cron = nil
	s.stopping = false
	s.mu.Unlock()

	logger(ctx).Info("scheduler stopped")

	return nil
}

// Trigger runs the analysis now and waits for it. It does not need Run.
func (s *Scheduler) Trigger(ctx context.Context) (entity.RunReport, error) {
	if !s.acquire() {
		return entity.RunReport{}, ErrRunInProgress
	}
	defer s.release()

	return s.execute(ctx, triggerManual)
}

// RunNow starts a run in the background on the scheduler context, so the
// caller does not wait and shutdown still does.
func (s *Scheduler) RunNow() error {
	if !s.acquire() {
		return ErrRunInProgress
	}

	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		defer s.release()

		_, _ = s.execute(ctx, triggerManual)
	}()

	return nil
}

// Ready reports whether the schedules are registered and ticking.
func (s *Scheduler) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cron != nil
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{Running: s.isRunning}

	if s.lastReport != nil {
		report := *s.lastReport
		status.LastReport = &report
	}

	if s.cron != nil {
		for _, entry := range s.cron.Entries() {
			if entry.Next.IsZero() {
				continue
			}

			if status.NextRun.IsZero() || entry.Next.Before(status.NextRun) {
				status.NextRun = entry.Next
			}
		}
	}

	return status
}

func (s *Scheduler) scheduled(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}

	if !s.acquire() {
		logger(ctx).Warn("run skipped: previous run still active", logx.FieldSchedule, trigger)
		return
	}
	defer s.release()

	_, _ = s.execute(ctx, trigger)
}

func (s *Scheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning || s.stopping {
		return false
	}

	s.isRunning = true
	s.wg.Add(1)

	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()

	s.wg.Done()
}

// execute never panics; every failure ends up logged and returned.
func (s *Scheduler) execute(ctx context.Context, trigger string) (report entity.RunReport, err error) {
	if s.locker != nil {
		unlock, ok, lockErr := s.locker.TryLock(ctx)

		switch {
		case lockErr != nil:
			// Redis недоступен: запускаем без общего лока
			logger(ctx).Error("run lock unavailable, running unguarded",
				logx.FieldSchedule, trigger,
				logx.Error(lockErr),
			)
		case !ok:
			logger(ctx).Warn("run skipped: lock held by another instance", logx.FieldSchedule, trigger)
			return entity.RunReport{}, ErrRunInProgress
		default:
			defer func() {
				if err := unlock(context.WithoutCancel(ctx)); err != nil {
					logger(ctx).Error("run lock release failed", logx.Error(err))
				}
			}()
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logger(ctx).Error("analysis run panicked",
				logx.FieldSchedule, trigger,
				logx.FieldStack, string(debug.Stack()),
			)

			err = domain.NewError(errcodes.InternalServerError, fmt.Sprintf("panic: %v", r))
			report.Error = err.Error()
		}

		s.mu.Lock()
		s.lastReport = &report
		s.mu.Unlock()
	}()

	logger(ctx).Info("analysis run triggered", logx.FieldSchedule, trigger)

	report, err = s.runner.Run(ctx)
	if err != nil {
		logger(ctx).Error("analysis run ended with error",
			logx.FieldSchedule, trigger,
			logx.Error(err),
		)

		return report, fmt.Errorf("runner.Run: %w", err)
	}

	return report, nil
}
