package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inkwell/internal/bootstrap"
	goalsdto "inkwell/internal/modules/goals/dto"
	ledgerdto "inkwell/internal/modules/ledger/dto"
	"inkwell/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	vaultPath string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Writing goal tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.vaultPath, "vault", ".", "vault path holding manuscripts/ and .inkwell/")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr at the configured level")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newGoalCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newStreakCmd(opts))
	root.AddCommand(newCalendarCmd(opts))
	root.AddCommand(newSettingsCmd(opts))
	root.AddCommand(newLedgerCmd(opts))
	root.AddCommand(newManuscriptCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.vaultPath)
	if err != nil {
		return nil, err
	}
	cfg.Log.Verbose = opts.verbose
	return bootstrap.New(cfg)
}

// withApp loads the app, runs fn and closes the app again.
func withApp(opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(context.Background(), app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

// ─── goals ───────────────────────────────────────────────────────────────────

func newGoalCmd(opts *rootOptions) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage writing goals"}

	var goalType, start, end string
	var target int
	var inactive bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.CreateGoal(ctx, goalType, target, start, end, !inactive)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s goal %s (%d words, %s → %s)\n", out.Type, out.ID, out.TargetWords, out.StartDate, out.EndDate)
				return nil
			})
		},
	}
	create.Flags().StringVar(&goalType, "type", "daily", "goal type: daily|weekly|monthly|yearly")
	create.Flags().IntVar(&target, "target", 0, "target word count")
	create.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (defaults to the current year)")
	create.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD (defaults to the current year)")
	create.Flags().BoolVar(&inactive, "inactive", false, "create the goal inactive")
	_ = create.MarkFlagRequired("target")

	var includeArchived, activeOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				goals, err := app.GoalsCLI.ListGoals(ctx, includeArchived, activeOnly)
				if err != nil {
					return err
				}
				if len(goals) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
					return nil
				}
				for _, g := range goals {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%s\t%s\n", g.ID, g.Type, g.TargetWords, g.StartDate, g.EndDate, g.Status)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&includeArchived, "archived", false, "include archived goals")
	list.Flags().BoolVar(&activeOnly, "active", false, "only active goals")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.GoalsCLI.GetGoal(ctx, args[0])
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	}

	var updType, updStart, updEnd string
	var updTarget int
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update goal fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := goalsdto.UpdateGoalInput{ID: args[0]}
			if cmd.Flags().Changed("type") {
				input.Type = &updType
			}
			if cmd.Flags().Changed("target") {
				input.TargetWords = &updTarget
			}
			if cmd.Flags().Changed("start") {
				input.StartDate = &updStart
			}
			if cmd.Flags().Changed("end") {
				input.EndDate = &updEnd
			}
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.GoalsCLI.UpdateGoal(ctx, input)
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	}
	update.Flags().StringVar(&updType, "type", "", "goal type")
	update.Flags().IntVar(&updTarget, "target", 0, "target word count")
	update.Flags().StringVar(&updStart, "start", "", "start date YYYY-MM-DD")
	update.Flags().StringVar(&updEnd, "end", "", "end date YYYY-MM-DD")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.DeleteGoal(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%d progress rows)\n", out.ID, out.ProgressRemoved)
				return nil
			})
		},
	}

	goal.AddCommand(create, list, show, update, remove,
		newGoalStateCmd(opts, "activate", "Mark a goal active"),
		newGoalStateCmd(opts, "deactivate", "Mark a goal inactive"),
		newGoalStateCmd(opts, "archive", "Archive a goal"),
		&cobra.Command{
			Use:   "defaults",
			Short: "Create the default daily goal when none exist",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
					created, err := app.GoalsCLI.EnsureDefaults(ctx)
					if err != nil {
						return err
					}
					if created {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "default goal created")
					} else {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goals already exist")
					}
					return nil
				})
			},
		},
	)
	return goal
}

func newGoalStateCmd(opts *rootOptions, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				var (
					g   goalsdto.GoalOutput
					err error
				)
				switch verb {
				case "activate":
					g, err = app.GoalsCLI.SetGoalActive(ctx, args[0], true)
				case "deactivate":
					g, err = app.GoalsCLI.SetGoalActive(ctx, args[0], false)
				default:
					g, err = app.GoalsCLI.ArchiveGoal(ctx, args[0])
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", g.ID, g.Status)
				return nil
			})
		},
	}
}

func printGoal(cmd *cobra.Command, g goalsdto.GoalOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntype: %s\ntarget: %d\nstart: %s\nend: %s\nstatus: %s\ncreated: %s\nupdated: %s\n",
		g.ID, g.Type, g.TargetWords, g.StartDate, g.EndDate, g.Status,
		g.CreatedAt.Format(time.RFC3339), g.UpdatedAt.Format(time.RFC3339))
}

// ─── progress ────────────────────────────────────────────────────────────────

func newProgressCmd(opts *rootOptions) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Record and maintain goal progress"}

	var docID, projectID string
	var words, chars int
	track := &cobra.Command{
		Use:   "track",
		Short: "Record a document's current size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Track(ctx, docID, projectID, words, chars)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: +%d words (+%d chars), %d today, %d goals updated\n",
					out.Date, out.WordsDelta, out.CharsDelta, out.DayWords, len(out.GoalIDs))
				return nil
			})
		},
	}
	track.Flags().StringVar(&docID, "doc", "", "document id")
	track.Flags().StringVar(&projectID, "project", "", "project id")
	track.Flags().IntVar(&words, "words", 0, "current word count")
	track.Flags().IntVar(&chars, "chars", 0, "current character count (estimated when 0)")
	_ = track.MarkFlagRequired("doc")

	populate := &cobra.Command{
		Use:   "populate",
		Short: "Backfill progress from document modification dates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Populate(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "populated %d rows from %d documents\n", out.Created, out.Documents)
				return nil
			})
		},
	}

	reconcile := &cobra.Command{
		Use:   "reconcile",
		Short: "Run the nightly maintenance pass now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Reconcile(ctx)
				printReconcile(cmd, out)
				return err
			})
		},
	}

	var retention int
	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Drop progress and ledger days past retention",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				days := retention
				if days == 0 {
					days = app.Config.Progress.RetentionDays
				}
				out, err := app.GoalsCLI.Cleanup(ctx, days)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d rows and %d ledger days older than %d days\n", out.Removed, out.LedgerPruned, out.RetentionDays)
				return nil
			})
		},
	}
	cleanup.Flags().IntVar(&retention, "days", 0, "retention in days (defaults to config)")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Remove orphaned and duplicate progress rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Validate(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "orphaned %d, duplicates %d, remaining %d\n", out.Orphaned, out.Duplicates, out.Remaining)
				return nil
			})
		},
	}

	var listGoal, from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List progress rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				rows, err := app.GoalsCLI.ListProgress(ctx, listGoal, from, to)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no progress")
					return nil
				}
				for _, r := range rows {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%d\t%s\n", r.Date, r.GoalID, r.WordsWritten, r.CharsWritten, strings.Join(r.DocumentIDs, ","))
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&listGoal, "goal", "", "goal id")
	list.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	list.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")

	var histFrom, histTo string
	history := &cobra.Command{
		Use:   "history",
		Short: "Words per day across goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				days, err := app.GoalsCLI.History(ctx, histFrom, histTo)
				if err != nil {
					return err
				}
				for _, d := range days {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\n", d.Date, d.Words, d.Chars)
				}
				return nil
			})
		},
	}
	history.Flags().StringVar(&histFrom, "from", "", "first day YYYY-MM-DD (defaults to 30 days ago)")
	history.Flags().StringVar(&histTo, "to", "", "last day YYYY-MM-DD (defaults to today)")

	progress.AddCommand(track, populate, reconcile, cleanup, validate, list, history)
	return progress
}

func printReconcile(cmd *cobra.Command, out goalsdto.ReconcileOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "populated %d, orphaned %d, duplicates %d, removed %d, ledger pruned %d, archived %d\n",
		out.Populated, out.Orphaned, out.Duplicates, out.Removed, out.LedgerPruned, len(out.ArchivedIDs))
}

// ─── stats ───────────────────────────────────────────────────────────────────

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var goalID, ref string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show progress for one goal, or today's overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				if goalID != "" {
					s, err := app.GoalsCLI.Stats(ctx, goalID, ref)
					if err != nil {
						return err
					}
					printStats(cmd, s)
					return nil
				}
				ov, err := app.GoalsCLI.Overview(ctx)
				if err != nil {
					return err
				}
				line := fmt.Sprintf("%s: %d words", ov.Date, ov.TodayWords)
				if ov.ShowChars {
					line += fmt.Sprintf(", %d chars", ov.TodayChars)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s, streak %d (best %d)\n", line, ov.CurrentStreak, ov.LongestStreak)
				for _, s := range ov.Goals {
					printStats(cmd, s)
				}
				return nil
			})
		},
	}
	stats.Flags().StringVar(&goalID, "goal", "", "goal id")
	stats.Flags().StringVar(&ref, "date", "", "reference day YYYY-MM-DD (defaults to today)")
	return stats
}

func printStats(cmd *cobra.Command, s goalsdto.GoalStatsOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s..%s\t%d/%d\t%d%%\tremaining %d\tstreak %d\n",
		s.Goal.ID, s.Goal.Type, s.PeriodStart, s.PeriodEnd, s.WordsWritten, s.Goal.TargetWords,
		s.DisplayPercent, s.RemainingWords, s.CurrentStreak)
}

func newStreakCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the writing streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Streak(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current %d, longest %d (as of %s)\n", out.Current, out.Longest, out.Date)
				return nil
			})
		},
	}
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var month string
	cal := &cobra.Command{
		Use:   "calendar",
		Short: "Show words per day for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Calendar(ctx, month)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (daily target %d)\n", out.Month, out.DailyTarget)
				for _, c := range out.Cells {
					mark := ""
					if c.GoalMet {
						mark = "✓"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", c.Date, c.Words, mark)
				}
				return nil
			})
		},
	}
	cal.Flags().StringVar(&month, "month", "", "month YYYY-MM (defaults to the current month)")
	return cal
}

// ─── settings ────────────────────────────────────────────────────────────────

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.GoalsCLI.Settings(ctx)
				if err != nil {
					return err
				}
				printSettings(cmd, s)
				return nil
			})
		},
	})

	var (
		notify, chars, autoArchive bool
		notifyAt                   string
		weekStart, archiveAfter    int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the given flags are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch goalsdto.SettingsPatchInput
			flags := cmd.Flags()
			if flags.Changed("notifications") {
				patch.EnableNotifications = &notify
			}
			if flags.Changed("notification-time") {
				patch.NotificationTime = &notifyAt
			}
			if flags.Changed("week-starts-on") {
				patch.WeekStartsOn = &weekStart
			}
			if flags.Changed("chars") {
				patch.IncludeCharacterCount = &chars
			}
			if flags.Changed("auto-archive") {
				patch.AutoArchiveOldGoals = &autoArchive
			}
			if flags.Changed("archive-after") {
				patch.ArchiveAfterDays = &archiveAfter
			}
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.GoalsCLI.UpdateSettings(ctx, patch)
				if err != nil {
					return err
				}
				printSettings(cmd, s)
				return nil
			})
		},
	}
	set.Flags().BoolVar(&notify, "notifications", true, "enable the daily reminder")
	set.Flags().StringVar(&notifyAt, "notification-time", "", "reminder time HH:MM")
	set.Flags().IntVar(&weekStart, "week-starts-on", 1, "0 for Sunday, 1 for Monday")
	set.Flags().BoolVar(&chars, "chars", false, "show character counts")
	set.Flags().BoolVar(&autoArchive, "auto-archive", false, "archive goals after they end")
	set.Flags().IntVar(&archiveAfter, "archive-after", 30, "days after the end date before archiving")
	settings.AddCommand(set)
	return settings
}

func printSettings(cmd *cobra.Command, s goalsdto.SettingsOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifications: %t\nnotification_time: %s\nweek_starts_on: %d\ninclude_character_count: %t\nauto_archive_old_goals: %t\narchive_after_days: %d\n",
		s.EnableNotifications, s.NotificationTime, s.WeekStartsOn, s.IncludeCharacterCount, s.AutoArchiveOldGoals, s.ArchiveAfterDays)
}

// ─── ledger and manuscripts ──────────────────────────────────────────────────

func newLedgerCmd(opts *rootOptions) *cobra.Command {
	ledger := &cobra.Command{Use: "ledger", Short: "Inspect the daily word ledger"}

	ledger.AddCommand(&cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show one day's entries (today by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				var (
					day ledgerdto.DayOutput
					err error
				)
				if len(args) == 1 {
					day, err = app.LedgerCLI.Day(ctx, args[0])
				} else {
					day, err = app.LedgerCLI.Today(ctx)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words, %d chars\n", day.Date, day.WordsAdded, day.CharsAdded)
				for _, e := range day.Entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t+%d\n", e.At.Format("15:04:05"), e.ProjectID, e.DocumentID, e.WordsDelta)
				}
				return nil
			})
		},
	})

	var from, to string
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Show daily totals for a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				days, err := app.LedgerCLI.Range(ctx, from, to)
				if err != nil {
					return err
				}
				for _, d := range days {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\n", d.Date, d.WordsAdded, d.CharsAdded)
				}
				return nil
			})
		},
	}
	rangeCmd.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	rangeCmd.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")
	ledger.AddCommand(rangeCmd)
	return ledger
}

func newManuscriptCmd(opts *rootOptions) *cobra.Command {
	manuscript := &cobra.Command{Use: "manuscript", Short: "Inspect tracked manuscripts"}
	manuscript.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List manuscript documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				docs, err := app.ManuscriptCLI.ListDocuments(ctx)
				if err != nil {
					return err
				}
				if len(docs) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no documents")
					return nil
				}
				for _, d := range docs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", d.ID, d.ProjectID, d.WordCount, d.UpdatedAt.Format(time.DateOnly))
				}
				return nil
			})
		},
	})
	return manuscript
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the sqlite progress index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.GoalsCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d rows\n", out.Rows)
				return nil
			})
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write goals, progress and stats to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				res, err := app.GoalsCLI.Export(ctx, out)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d goals and %d progress rows to %s\n", res.Goals, res.Progress, res.Path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&out, "out", "inkwell.xlsx", "output workbook path")
	return export
}

// ─── watch ───────────────────────────────────────────────────────────────────

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var metricsAddr string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Track manuscript saves and run scheduled maintenance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			seeded, err := app.GoalsCLI.SeedBaselines(ctx)
			if err != nil {
				return fmt.Errorf("seed baselines: %w", err)
			}
			app.Logger.Info("ledger baselines ready", zap.Int("seeded", seeded))

			watcher := app.Watcher()
			watcher.OnTracked = func(path string, out goalsdto.TrackOutput) {
				if out.WordsDelta > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s +%d words (%d today)\n", path, out.WordsDelta, out.DayWords)
				}
			}
			scheduler := app.Scheduler(func(ov goalsdto.OverviewOutput) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminder: %d words so far today\n", ov.TodayWords)
			})

			addr := metricsAddr
			if addr == "" {
				addr = app.Config.Watch.MetricsAddr
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return watcher.Run(gctx) })
			g.Go(func() error { return scheduler.Run(gctx) })
			if addr != "" {
				g.Go(func() error { return app.Metrics.Serve(gctx, addr) })
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", app.Config.ManuscriptDir)
			return g.Wait()
		},
	}
	watch.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	return watch
}
