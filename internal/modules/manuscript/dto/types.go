package dto

import "time"

type DocumentOutput struct {
	ID        string
	ProjectID string
	Title     string
	Path      string
	WordCount int
	CharCount int
	UpdatedAt time.Time
}
