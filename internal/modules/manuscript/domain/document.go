package domain

import (
	"fmt"
	"strings"
	"time"
)

type Document struct {
	ID        string
	ProjectID string
	Title     string
	Path      string
	WordCount int
	CharCount int
	UpdatedAt time.Time
}

// Frontmatter is the YAML header of a manuscript note. Counts are optional;
// the body is measured when they are absent.
type Frontmatter struct {
	ID        string `yaml:"id"`
	ProjectID string `yaml:"project_id"`
	Title     string `yaml:"title"`
	UpdatedAt string `yaml:"updated_at"`
	WordCount *int   `yaml:"word_count"`
	CharCount *int   `yaml:"char_count"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 and plain dates. Values without a zone are
// read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("document id is required")
	}
	if d.WordCount < 0 || d.CharCount < 0 {
		return fmt.Errorf("document %s has negative counts", d.ID)
	}
	return nil
}
