package domain

import (
	"strings"
	"time"
)

const (
	DayKeyPrefix = "word-progress-"
	BaselinesKey = "document-baselines"
)

func DayKey(date string) string {
	return DayKeyPrefix + date
}

// DateFromKey reports the date encoded in a daily ledger key.
func DateFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, DayKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, DayKeyPrefix), true
}

// Entry is one attributed save. Entries are appended to their day and never
// rewritten.
type Entry struct {
	At         time.Time `json:"at"`
	DocumentID string    `json:"documentId"`
	ProjectID  string    `json:"projectId,omitempty"`
	WordCount  int       `json:"wordCount"`
	CharCount  int       `json:"charCount"`
	WordsDelta int       `json:"wordsDelta"`
	CharsDelta int       `json:"charsDelta"`
}

type DayRecord struct {
	Date        string    `json:"date"`
	WordsAdded  int       `json:"wordsAdded"`
	CharsAdded  int       `json:"charsAdded"`
	LastUpdated time.Time `json:"lastUpdated"`
	Entries     []Entry   `json:"entries"`
}

func EmptyDay(date string) DayRecord {
	return DayRecord{Date: date, Entries: []Entry{}}
}

func (d *DayRecord) Append(entry Entry) {
	d.Entries = append(d.Entries, entry)
	d.WordsAdded += entry.WordsDelta
	d.CharsAdded += entry.CharsDelta
	if entry.At.After(d.LastUpdated) {
		d.LastUpdated = entry.At
	}
}

// Baseline is the last absolute size seen for a document.
type Baseline struct {
	Words     int       `json:"words"`
	Chars     int       `json:"chars"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Delta struct {
	Words int
	Chars int
}

func (d Delta) Zero() bool {
	return d.Words == 0 && d.Chars == 0
}

// ComputeDelta converts absolute counts into growth since prev. A document
// with no baseline counts in full. Shrinking documents contribute zero.
func ComputeDelta(prev Baseline, known bool, words, chars int) Delta {
	if !known {
		return Delta{Words: nonNegative(words), Chars: nonNegative(chars)}
	}
	return Delta{Words: nonNegative(words - prev.Words), Chars: nonNegative(chars - prev.Chars)}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
