package in

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"inkwell/internal/modules/goals/dto"
	goalsin "inkwell/internal/modules/goals/port/in"
	"inkwell/internal/platform/clock"
)

const DefaultReconcileAt = "00:05"

// Reminder receives the day's overview when the configured notification
// time passes and today's daily goals are not met yet.
type Reminder func(overview dto.OverviewOutput)

// ChangeSource reports whether persisted state was modified outside this
// process since it was last asked.
type ChangeSource interface {
	Changed(ctx context.Context) (bool, error)
}

// Scheduler runs the periodic maintenance jobs: the nightly reconcile, an
// hourly day-rollover check, the optional storage check and the optional
// writing reminder.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	goals       goalsin.Usecase
	clock       clock.Clock
	reconcileAt string
	logger      *zap.Logger
	remind      Reminder
	storage     ChangeSource

	mu      sync.Mutex
	lastDay string
}

func NewScheduler(goals goalsin.Usecase, clk clock.Clock, reconcileAt string, logger *zap.Logger) *Scheduler {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if reconcileAt == "" {
		reconcileAt = DefaultReconcileAt
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		goals:       goals,
		clock:       clk,
		reconcileAt: reconcileAt,
		logger:      logger,
		lastDay:     clk.Now().UTC().Format(time.DateOnly),
	}
}

// WithReminder enables the daily reminder job.
func (s *Scheduler) WithReminder(fn Reminder) *Scheduler {
	s.remind = fn
	return s
}

// WithStorage re-reads persisted state whenever src reports that another
// process wrote it. Checked once a minute.
func (s *Scheduler) WithStorage(src ChangeSource) *Scheduler {
	s.storage = src
	return s
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.scheduler.SingletonModeAll()
	if _, err := s.scheduler.Every(1).Day().At(s.reconcileAt).Do(func() { s.reconcile(ctx) }); err != nil {
		return fmt.Errorf("schedule reconcile at %q: %w", s.reconcileAt, err)
	}
	if _, err := s.scheduler.Every(1).Hour().Do(func() { s.rollover(ctx) }); err != nil {
		return fmt.Errorf("schedule rollover check: %w", err)
	}
	if s.storage != nil {
		if _, err := s.scheduler.Every(1).Minute().Do(func() { s.syncStorage(ctx) }); err != nil {
			return fmt.Errorf("schedule storage check: %w", err)
		}
	}
	if s.remind != nil {
		settings, err := s.goals.GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if settings.EnableNotifications {
			if _, err := s.scheduler.Every(1).Day().At(settings.NotificationTime).Do(func() { s.reminder(ctx) }); err != nil {
				return fmt.Errorf("schedule reminder at %q: %w", settings.NotificationTime, err)
			}
		}
	}
	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.String("reconcile_at", s.reconcileAt), zap.Int("jobs", len(s.scheduler.Jobs())))
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Run starts the jobs and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Scheduler) reconcile(ctx context.Context) {
	out, err := s.goals.Reconcile(ctx)
	if err != nil {
		s.logger.Warn("nightly reconcile", zap.Error(err))
		return
	}
	s.logger.Info("nightly reconcile",
		zap.Int("populated", out.Populated),
		zap.Int("orphaned", out.Orphaned),
		zap.Int("duplicates", out.Duplicates),
		zap.Int("removed", out.Removed),
		zap.Int("ledger_pruned", out.LedgerPruned),
		zap.Strings("archived", out.ArchivedIDs),
	)
}

// rollover re-reads persisted state once the UTC day changes so cached
// stores do not serve yesterday's view.
func (s *Scheduler) rollover(ctx context.Context) bool {
	today := s.clock.Now().UTC().Format(time.DateOnly)
	s.mu.Lock()
	changed := today != s.lastDay
	s.lastDay = today
	s.mu.Unlock()
	if !changed {
		return false
	}
	if err := s.goals.Reload(ctx); err != nil {
		s.logger.Warn("reload on day rollover", zap.Error(err))
		return true
	}
	s.logger.Info("day rollover", zap.String("date", today))
	return true
}

// syncStorage drops cached state when the storage directory was written by
// someone else, e.g. a track command run from an editor hook.
func (s *Scheduler) syncStorage(ctx context.Context) bool {
	changed, err := s.storage.Changed(ctx)
	if err != nil {
		s.logger.Warn("check storage for changes", zap.Error(err))
	}
	if !changed {
		return false
	}
	if err := s.goals.Reload(ctx); err != nil {
		s.logger.Warn("reload after storage change", zap.Error(err))
		return true
	}
	s.logger.Info("storage changed on disk, state reloaded")
	return true
}

func (s *Scheduler) reminder(ctx context.Context) {
	overview, err := s.goals.Overview(ctx)
	if err != nil {
		s.logger.Warn("reminder overview", zap.Error(err))
		return
	}
	if dailyGoalsMet(overview) {
		return
	}
	s.remind(overview)
}

func dailyGoalsMet(overview dto.OverviewOutput) bool {
	for _, stats := range overview.Goals {
		if stats.Goal.Type == "daily" && stats.Goal.Status == "active" && stats.Percent < 100 {
			return false
		}
	}
	return true
}
