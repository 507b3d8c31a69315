package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	goalsinadapter "inkwell/internal/modules/goals/adapter/in"
	goalsoutadapter "inkwell/internal/modules/goals/adapter/out"
	goalsin "inkwell/internal/modules/goals/port/in"
	goalsservice "inkwell/internal/modules/goals/service"
	goalsusecase "inkwell/internal/modules/goals/usecase"
	ledgerinadapter "inkwell/internal/modules/ledger/adapter/in"
	ledgeroutadapter "inkwell/internal/modules/ledger/adapter/out"
	ledgerservice "inkwell/internal/modules/ledger/service"
	ledgerusecase "inkwell/internal/modules/ledger/usecase"
	manuscriptinadapter "inkwell/internal/modules/manuscript/adapter/in"
	manuscriptoutadapter "inkwell/internal/modules/manuscript/adapter/out"
	manuscriptin "inkwell/internal/modules/manuscript/port/in"
	manuscriptservice "inkwell/internal/modules/manuscript/service"
	manuscriptusecase "inkwell/internal/modules/manuscript/usecase"
	"inkwell/internal/platform/clock"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/id"
	"inkwell/internal/platform/kvstore"
	"inkwell/internal/platform/logging"
	"inkwell/internal/platform/metrics"
	uiapp "inkwell/internal/ui/app"
)

type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	GoalsCLI      goalsinadapter.CLIHandler
	LedgerCLI     ledgerinadapter.CLIHandler
	ManuscriptCLI manuscriptinadapter.CLIHandler

	goals       goalsin.Usecase
	manuscripts manuscriptin.Usecase
	clock       clock.Clock
	storage     *kvstore.FileStore
	closers     []io.Closer
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Verbose: cfg.Log.Verbose})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	m := metrics.New()
	kv := kvstore.NewFileStore(cfg.StorageDir)

	ledgerUC := ledgerusecase.NewInteractor(ledgerservice.NewLedgerService(
		clk,
		ledgeroutadapter.NewKVLedgerStore(kv, logger.Named("ledger"), m),
		logger.Named("ledger"),
	))

	manuscriptUC := manuscriptusecase.NewInteractor(manuscriptservice.NewDocumentService(
		manuscriptoutadapter.NewVaultDocumentStore(cfg.ManuscriptDir, logger.Named("manuscript")),
	))

	projector, err := goalsoutadapter.NewSQLiteProgressProjector(cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("new progress projector: %w", err)
	}
	goalsLogger := logger.Named("goals")
	goalStore := goalsoutadapter.NewKVGoalStore(kv, goalsLogger, m)
	progressStore := goalsoutadapter.NewKVProgressStore(kv, goalsLogger, m)
	ledger := goalsoutadapter.NewLedgerAdapter(ledgerUC)

	goalsUC := goalsusecase.NewInteractor(clk, goalsusecase.Deps{
		Goals: goalsservice.NewGoalService(clk, ids, goalStore, progressStore, projector, goalsLogger),
		Progress: goalsservice.NewProgressService(clk, ids, goalsservice.ProgressDeps{
			Goals:     goalStore,
			Progress:  progressStore,
			Projector: projector,
			Documents: goalsoutadapter.NewManuscriptDocumentAdapter(manuscriptUC),
			Ledger:    ledger,
			Logger:    goalsLogger,
			Metrics:   m,
		}),
		Stats:    goalsservice.NewStatsService(clk, goalStore, progressStore, projector, ledger, goalsLogger),
		Settings: goalsservice.NewSettingsService(goalsoutadapter.NewKVSettingsStore(kv, goalsLogger, m)),
		Exporter: goalsoutadapter.NewXLSXReportExporter(),
		Logger:   goalsLogger,
		Metrics:  m,
	}, goalsusecase.Options{RetentionDays: cfg.Progress.RetentionDays})

	app := &App{
		Config:        cfg,
		Logger:        logger,
		Metrics:       m,
		GoalsCLI:      goalsinadapter.NewCLIHandler(goalsUC),
		LedgerCLI:     ledgerinadapter.NewCLIHandler(ledgerUC),
		ManuscriptCLI: manuscriptinadapter.NewCLIHandler(manuscriptUC),
		goals:         goalsUC,
		manuscripts:   manuscriptUC,
		clock:         clk,
		storage:       kv,
	}
	if closer, ok := projector.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// Watcher builds the manuscript watcher for the configured directory.
func (a *App) Watcher() *goalsinadapter.ManuscriptWatcher {
	return goalsinadapter.NewManuscriptWatcher(a.Config.ManuscriptDir, a.Config.Watch.Debounce, a.goals, a.manuscripts, a.Logger.Named("watch"))
}

// Scheduler builds the maintenance scheduler. It reloads state when another
// process writes the storage directory. The reminder is optional.
func (a *App) Scheduler(remind goalsinadapter.Reminder) *goalsinadapter.Scheduler {
	s := goalsinadapter.NewScheduler(a.goals, a.clock, a.Config.Schedule.ReconcileAt, a.Logger.Named("schedule")).
		WithStorage(a.storage)
	if remind != nil {
		s.WithReminder(remind)
	}
	return s
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	// Sync on stderr returns EINVAL on some platforms.
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.VaultPath, app.GoalsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
