package markdown_test

import (
	"testing"

	"inkwell/internal/platform/markdown"
)

type header struct {
	ID        string `yaml:"id"`
	ProjectID string `yaml:"project_id"`
	WordCount int    `yaml:"word_count"`
}

func TestDecodeFrontmatter(t *testing.T) {
	t.Parallel()
	content := "---\nid: d1\nproject_id: p1\nword_count: 3\n---\n\nOnce upon time\n"
	got := header{}
	body, err := markdown.DecodeFrontmatter(content, &got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "d1" || got.ProjectID != "p1" || got.WordCount != 3 {
		t.Fatalf("unexpected header: %+v", got)
	}
	if body != "\nOnce upon time\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestDecodeFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()
	got := header{}
	body, err := markdown.DecodeFrontmatter("just text", &got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body != "just text" || got.ID != "" {
		t.Fatalf("expected passthrough, got body=%q header=%+v", body, got)
	}
}

func TestDecodeFrontmatterMissingClose(t *testing.T) {
	t.Parallel()
	if _, err := markdown.DecodeFrontmatter("---\nid: x\nbody", &header{}); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestCountWordsSkipsMarkers(t *testing.T) {
	t.Parallel()
	body := "# Chapter One\n\n- the quick fox\n> jumps\n"
	if got := markdown.CountWords(body); got != 6 {
		t.Fatalf("expected 6 words, got %d", got)
	}
	if got := markdown.CountChars("héllo world"); got != 10 {
		t.Fatalf("expected 10 chars, got %d", got)
	}
}
