package dto

import "time"

type CreateGoalInput struct {
	Type        string
	TargetWords int
	StartDate   string
	EndDate     string
	// IsActive defaults to true when nil.
	IsActive *bool
}

type UpdateGoalInput struct {
	ID          string
	Type        *string
	TargetWords *int
	StartDate   *string
	EndDate     *string
	IsActive    *bool
}

type ListGoalsInput struct {
	IncludeArchived bool
	ActiveOnly      bool
}

type GoalOutput struct {
	ID          string
	Type        string
	TargetWords int
	StartDate   string
	EndDate     string
	IsActive    bool
	Archived    bool
	Status      string
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DeleteGoalOutput struct {
	ID              string
	ProgressRemoved int
}

type TrackInput struct {
	DocumentID string
	ProjectID  string
	WordCount  int
	CharCount  int
}

type TrackOutput struct {
	Date       string
	WordsDelta int
	CharsDelta int
	DayWords   int
	GoalIDs    []string
}

type PopulateOutput struct {
	Created   int
	Documents int
}

type CleanupOutput struct {
	RetentionDays int
	Removed       int
	LedgerPruned  int
}

type ValidateOutput struct {
	Orphaned   int
	Duplicates int
	Remaining  int
}

type ReconcileOutput struct {
	Populated    int
	Orphaned     int
	Duplicates   int
	Removed      int
	LedgerPruned int
	ArchivedIDs  []string
	RanAt        time.Time
}

type ListProgressInput struct {
	GoalID string
	From   string
	To     string
}

type ProgressOutput struct {
	ID           string
	GoalID       string
	Date         string
	WordsWritten int
	CharsWritten int
	ProjectIDs   []string
	DocumentIDs  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StatsInput struct {
	GoalID string
	// Reference is a YYYY-MM-DD day; empty means today.
	Reference string
}

type GoalStatsOutput struct {
	Goal           GoalOutput
	PeriodStart    string
	PeriodEnd      string
	WordsWritten   int
	CharsWritten   int
	DayCount       int
	Percent        int
	DisplayPercent int
	RemainingWords int
	CurrentStreak  int
	LongestStreak  int
	DaysActive     int
}

type OverviewOutput struct {
	Date          string
	TodayWords    int
	TodayChars    int
	CurrentStreak int
	LongestStreak int
	Goals         []GoalStatsOutput
	ShowChars     bool
}

type CalendarCellOutput struct {
	Date    string
	Words   int
	GoalMet bool
}

type CalendarOutput struct {
	Month       string
	DailyTarget int
	Cells       []CalendarCellOutput
}

type StreakOutput struct {
	Date    string
	Current int
	Longest int
}

type DailyTotalOutput struct {
	Date  string
	Words int
	Chars int
	Goals int
}

type SettingsOutput struct {
	EnableNotifications   bool
	NotificationTime      string
	WeekStartsOn          int
	IncludeCharacterCount bool
	AutoArchiveOldGoals   bool
	ArchiveAfterDays      int
}

type SettingsPatchInput struct {
	EnableNotifications   *bool
	NotificationTime      *string
	WeekStartsOn          *int
	IncludeCharacterCount *bool
	AutoArchiveOldGoals   *bool
	ArchiveAfterDays      *int
}

type ReindexOutput struct {
	Rows int
}

type ExportOutput struct {
	Path     string
	Goals    int
	Progress int
}
