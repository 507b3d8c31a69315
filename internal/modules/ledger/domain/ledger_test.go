package domain_test

import (
	"testing"
	"time"

	"inkwell/internal/modules/ledger/domain"
)

func TestComputeDelta(t *testing.T) {
	t.Parallel()
	prev := domain.Baseline{Words: 100, Chars: 500}
	cases := []struct {
		name         string
		known        bool
		words, chars int
		want         domain.Delta
	}{
		{"first sighting counts in full", false, 120, 600, domain.Delta{Words: 120, Chars: 600}},
		{"growth", true, 130, 650, domain.Delta{Words: 30, Chars: 150}},
		{"unchanged", true, 100, 500, domain.Delta{}},
		{"shrink clamps to zero", true, 80, 400, domain.Delta{}},
		{"negative input", false, -4, -1, domain.Delta{}},
	}
	for _, tc := range cases {
		if got := domain.ComputeDelta(prev, tc.known, tc.words, tc.chars); got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

func TestDayRecordAppend(t *testing.T) {
	t.Parallel()
	day := domain.EmptyDay("2024-03-01")
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	day.Append(domain.Entry{At: t1, DocumentID: "d1", WordsDelta: 40, CharsDelta: 200})
	day.Append(domain.Entry{At: t1.Add(-time.Hour), DocumentID: "d2", WordsDelta: 10, CharsDelta: 50})
	if day.WordsAdded != 50 || day.CharsAdded != 250 || len(day.Entries) != 2 {
		t.Fatalf("unexpected day %+v", day)
	}
	if !day.LastUpdated.Equal(t1) {
		t.Fatalf("last updated should be the latest entry, got %s", day.LastUpdated)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	t.Parallel()
	key := domain.DayKey("2024-03-01")
	if key != "word-progress-2024-03-01" {
		t.Fatalf("unexpected key %s", key)
	}
	if date, ok := domain.DateFromKey(key); !ok || date != "2024-03-01" {
		t.Fatalf("expected date back, got %s ok=%v", date, ok)
	}
	if _, ok := domain.DateFromKey("goal-settings"); ok {
		t.Fatalf("unrelated key must not parse")
	}
}
