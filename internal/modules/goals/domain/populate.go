package domain

import "time"

// Populate backfills progress for active goals from document activity. It
// walks each goal from its start date to min(end date, today), skips days
// that already have a row and emits one row per remaining day with activity.
// Existing rows are never rewritten, so running it again on its own output
// yields nothing new.
func Populate(goals []WritingGoal, docs []Document, existing []GoalProgress, now time.Time, newID func() string) []GoalProgress {
	activity := ExtractActivity(docs)
	today := DayOf(now)

	seen := make(map[ProgressKey]struct{}, len(existing))
	for _, row := range existing {
		seen[row.Key()] = struct{}{}
	}

	out := make([]GoalProgress, 0)
	for _, goal := range goals {
		if !goal.IsActive || goal.Archived {
			continue
		}
		days, err := DaysBetween(goal.StartDate, minDay(goal.EndDate, today))
		if err != nil {
			continue
		}
		for _, day := range days {
			key := ProgressKey{GoalID: goal.ID, Date: day}
			if _, ok := seen[key]; ok {
				continue
			}
			entries := activity[day]
			if len(entries) == 0 {
				continue
			}
			row := GoalProgress{
				ID:          newID(),
				GoalID:      goal.ID,
				Date:        day,
				ProjectIDs:  []string{},
				DocumentIDs: []string{},
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			for _, entry := range entries {
				row.Add(entry.WordsWritten, entry.CharsWritten, entry.ProjectID, entry.DocumentID, now)
			}
			seen[key] = struct{}{}
			out = append(out, row)
		}
	}
	return out
}
