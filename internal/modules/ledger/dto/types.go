package dto

import "time"

type RecordInput struct {
	DocumentID string
	ProjectID  string
	WordCount  int
	CharCount  int
}

type RecordOutput struct {
	Date       string
	WordsDelta int
	CharsDelta int
	DayWords   int
	DayChars   int
}

type SeedInput struct {
	DocumentID string
	WordCount  int
	CharCount  int
	UpdatedAt  time.Time
}

type EntryOutput struct {
	At         time.Time
	DocumentID string
	ProjectID  string
	WordsDelta int
	CharsDelta int
}

type DayOutput struct {
	Date        string
	WordsAdded  int
	CharsAdded  int
	LastUpdated time.Time
	Entries     []EntryOutput
}
