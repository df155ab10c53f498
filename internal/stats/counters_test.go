package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestCounters(t *testing.T) *Counters {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "data", "stats.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestInc_CreatesAndIncrements(t *testing.T) {
	c := newTestCounters(t)

	c.Inc("article")
	c.Inc("article")
	c.Inc("articles")

	got := c.Snapshot()
	if got["article"] != 2 || got["articles"] != 1 {
		t.Fatalf("unexpected counters: %+v", got)
	}

	// The file is valid JSON on disk with today's date.
	raw, err := os.ReadFile(c.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("file is not JSON: %v", err)
	}
	if snap.Date != time.Now().Format(dateLayout) {
		t.Fatalf("unexpected date: %q", snap.Date)
	}
}

func TestInc_ResetsOnDateChange(t *testing.T) {
	c := newTestCounters(t)

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return day }
	c.Inc("article")
	c.Inc("article")

	// Next day: the stale snapshot resets before the new increment.
	c.now = func() time.Time { return day.Add(24 * time.Hour) }
	c.Inc("article")

	got := c.Snapshot()
	if got["article"] != 1 {
		t.Fatalf("expected reset to 1, got %+v", got)
	}
}

func TestSnapshot_StaleFileReadsEmpty(t *testing.T) {
	c := newTestCounters(t)

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return day }
	c.Inc("article")

	c.now = func() time.Time { return day.Add(24 * time.Hour) }
	if got := c.Snapshot(); len(got) != 0 {
		t.Fatalf("stale file must read empty, got %+v", got)
	}
}

func TestSnapshot_CopiesState(t *testing.T) {
	c := newTestCounters(t)
	c.Inc("article")

	got := c.Snapshot()
	got["article"] = 99

	if again := c.Snapshot()["article"]; again != 1 {
		t.Fatalf("snapshot must not alias internal state, got %d", again)
	}
}

func TestRollover(t *testing.T) {
	c := newTestCounters(t)

	day := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	c.now = func() time.Time { return day }
	c.Inc("article")

	c.now = func() time.Time { return day.Add(time.Hour) }
	c.Rollover()

	if got := c.Snapshot(); len(got) != 0 {
		t.Fatalf("rollover must clear the counters, got %+v", got)
	}

	var snap snapshot
	raw, err := os.ReadFile(c.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil || snap.Date != "2026-03-02" {
		t.Fatalf("rollover must stamp the new date: %q (%v)", snap.Date, err)
	}
}

func TestReadLocked_CorruptFile(t *testing.T) {
	c := newTestCounters(t)
	if err := os.WriteFile(c.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c.Inc("article")
	if got := c.Snapshot(); got["article"] != 1 {
		t.Fatalf("corrupt file must read as empty and recover, got %+v", got)
	}
}
