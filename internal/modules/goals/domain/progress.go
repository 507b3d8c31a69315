package domain

import (
	"sort"
	"time"
)

type GoalProgress struct {
	ID           string    `json:"id"`
	GoalID       string    `json:"goalId"`
	Date         string    `json:"date"`
	WordsWritten int       `json:"wordsWritten"`
	CharsWritten int       `json:"charsWritten"`
	ProjectIDs   []string  `json:"projectIds"`
	DocumentIDs  []string  `json:"documentIds"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProgressKey is the composite identity of a progress row. At most one row
// exists per key.
type ProgressKey struct {
	GoalID string
	Date   string
}

func (p GoalProgress) Key() ProgressKey {
	return ProgressKey{GoalID: p.GoalID, Date: p.Date}
}

// Add accumulates counts into the row and records the contributing ids.
// Negative counts are ignored.
func (p *GoalProgress) Add(words, chars int, projectID, documentID string, at time.Time) {
	if words > 0 {
		p.WordsWritten += words
	}
	if chars > 0 {
		p.CharsWritten += chars
	}
	if projectID != "" {
		p.ProjectIDs = UnionIDs(p.ProjectIDs, []string{projectID})
	}
	if documentID != "" {
		p.DocumentIDs = UnionIDs(p.DocumentIDs, []string{documentID})
	}
	p.UpdatedAt = at
}

// Merge folds other into the row: counters add, id sets union.
func (p *GoalProgress) Merge(other GoalProgress) {
	p.WordsWritten += other.WordsWritten
	p.CharsWritten += other.CharsWritten
	p.ProjectIDs = UnionIDs(p.ProjectIDs, other.ProjectIDs)
	p.DocumentIDs = UnionIDs(p.DocumentIDs, other.DocumentIDs)
	if other.UpdatedAt.After(p.UpdatedAt) {
		p.UpdatedAt = other.UpdatedAt
	}
}

// UnionIDs returns the sorted set union of both slices without empty ids.
func UnionIDs(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, id := range list {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// SortProgress orders rows by date, then goal id.
func SortProgress(rows []GoalProgress) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].GoalID < rows[j].GoalID
	})
}

func ProgressForGoal(rows []GoalProgress, goalID string) []GoalProgress {
	out := make([]GoalProgress, 0)
	for _, row := range rows {
		if row.GoalID == goalID {
			out = append(out, row)
		}
	}
	return out
}
