package domain

import "time"

// AverageCharsPerWord estimates characters for documents that only report a
// word count.
const AverageCharsPerWord = 5

// Document is the read model of a manuscript document.
type Document struct {
	ID        string
	ProjectID string
	Title     string
	WordCount int
	CharCount int
	UpdatedAt time.Time
}

type WritingActivity struct {
	Date         string
	ProjectID    string
	DocumentID   string
	WordsWritten int
	CharsWritten int
}

func EstimateChars(words, chars int) int {
	if chars > 0 {
		return chars
	}
	if words <= 0 {
		return 0
	}
	return words * AverageCharsPerWord
}

// ExtractActivity groups documents by the UTC day of their last update.
// Documents with no words contribute nothing.
func ExtractActivity(docs []Document) map[string][]WritingActivity {
	out := map[string][]WritingActivity{}
	for _, doc := range docs {
		if doc.WordCount <= 0 || doc.UpdatedAt.IsZero() {
			continue
		}
		day := DayOf(doc.UpdatedAt)
		out[day] = append(out[day], WritingActivity{
			Date:         day,
			ProjectID:    doc.ProjectID,
			DocumentID:   doc.ID,
			WordsWritten: doc.WordCount,
			CharsWritten: EstimateChars(doc.WordCount, doc.CharCount),
		})
	}
	return out
}
