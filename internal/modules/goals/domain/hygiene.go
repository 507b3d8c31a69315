package domain

import "time"

const DefaultRetentionDays = 365

// CleanupOldProgress drops rows dated before today minus retentionDays. A
// non-positive retention falls back to DefaultRetentionDays.
func CleanupOldProgress(progress []GoalProgress, retentionDays int, today string) []GoalProgress {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	cutoff, err := AddDays(today, -retentionDays)
	if err != nil {
		return progress
	}
	out := make([]GoalProgress, 0, len(progress))
	for _, row := range progress {
		if row.Date < cutoff {
			continue
		}
		out = append(out, row)
	}
	return out
}

type FixReport struct {
	Orphaned   int
	Duplicates int
}

func (r FixReport) Changed() bool {
	return r.Orphaned > 0 || r.Duplicates > 0
}

// ValidateAndFixProgress removes rows whose goal no longer exists and
// collapses (goal, date) collisions to the row with the latest UpdatedAt. On
// equal timestamps the later row in input order wins. Output keeps the
// position of each key's first occurrence.
func ValidateAndFixProgress(progress []GoalProgress, goals []WritingGoal) ([]GoalProgress, FixReport) {
	known := make(map[string]struct{}, len(goals))
	for _, goal := range goals {
		known[goal.ID] = struct{}{}
	}

	report := FixReport{}
	index := map[ProgressKey]int{}
	out := make([]GoalProgress, 0, len(progress))
	for _, row := range progress {
		if _, ok := known[row.GoalID]; !ok {
			report.Orphaned++
			continue
		}
		key := row.Key()
		if pos, ok := index[key]; ok {
			report.Duplicates++
			if !row.UpdatedAt.Before(out[pos].UpdatedAt) {
				out[pos] = row
			}
			continue
		}
		index[key] = len(out)
		out = append(out, row)
	}
	return out, report
}

// ArchiveCandidates lists goals whose end date lies more than
// ArchiveAfterDays before today. Nothing qualifies unless auto-archiving is
// enabled.
func ArchiveCandidates(goals []WritingGoal, settings Settings, today string) []WritingGoal {
	if !settings.AutoArchiveOldGoals || settings.ArchiveAfterDays < 1 {
		return nil
	}
	cutoff, err := AddDays(today, -settings.ArchiveAfterDays)
	if err != nil {
		return nil
	}
	out := make([]WritingGoal, 0)
	for _, goal := range goals {
		if goal.Archived {
			continue
		}
		if goal.EndDate < cutoff {
			out = append(out, goal)
		}
	}
	return out
}

// ArchiveAll archives every candidate that is still archivable and returns the
// ids that changed.
func ArchiveAll(goals []WritingGoal, candidates []WritingGoal, now time.Time) ([]WritingGoal, []string) {
	want := make(map[string]struct{}, len(candidates))
	for _, goal := range candidates {
		want[goal.ID] = struct{}{}
	}
	archived := make([]string, 0, len(candidates))
	out := make([]WritingGoal, len(goals))
	copy(out, goals)
	for i := range out {
		if _, ok := want[out[i].ID]; !ok {
			continue
		}
		if err := out[i].Archive(now); err == nil {
			archived = append(archived, out[i].ID)
		}
	}
	return out, archived
}
