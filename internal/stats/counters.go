// Package stats maintains per-day request counters in a small JSON file
// shared between server processes. The legacy deployment ran several workers
// behind one document root and aggregated hits in a flat file; the file
// format and the daily reset are kept so existing reporting keeps working.
// An advisory file lock (shared for reads, exclusive for writes) arbitrates
// between processes, and every increment is mirrored into a Prometheus
// counter for dashboards.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus"
)

const dateLayout = "2006-01-02"

var feedHits = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "feed_requests_total",
		Help: "Total number of feed requests by endpoint.",
	},
	[]string{"endpoint"},
)

func init() {
	prometheus.MustRegister(feedHits)
}

// snapshot is the on-disk shape of the counter file.
type snapshot struct {
	Date     string           `json:"date"`
	Counters map[string]int64 `json:"counters"`
}

// Counters tracks per-day request counts in a lock-guarded JSON file.
type Counters struct {
	path string
	lock *flock.Flock

	mu  sync.Mutex
	now func() time.Time // test seam
}

// New opens (or prepares) the counter file at path. The file itself is
// created on first increment.
func New(path string) (*Counters, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Counters{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}, nil
}

// Inc adds one to the named endpoint counter for today and mirrors the hit
// into Prometheus. File errors are swallowed: losing a count must never fail
// a request.
func (c *Counters) Inc(endpoint string) {
	feedHits.WithLabelValues(endpoint).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.lock.Lock(); err != nil {
		return
	}
	defer c.lock.Unlock()

	snap := c.readLocked()
	today := c.now().Format(dateLayout)
	if snap.Date != today {
		// Another process may have rolled the file over between our read
		// and the lock; the date check after acquiring the exclusive lock
		// settles it.
		snap = snapshot{Date: today, Counters: map[string]int64{}}
	}
	snap.Counters[endpoint]++
	c.writeLocked(snap)
}

// Snapshot returns today's counters. A file from a previous day reads as
// empty.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.lock.RLock(); err != nil {
		return map[string]int64{}
	}
	defer c.lock.Unlock()

	snap := c.readLocked()
	if snap.Date != c.now().Format(dateLayout) {
		return map[string]int64{}
	}
	out := make(map[string]int64, len(snap.Counters))
	for k, v := range snap.Counters {
		out[k] = v
	}
	return out
}

// Rollover resets the file to an empty snapshot for today. Wired to a daily
// cron job so the file never carries stale dates across quiet days.
func (c *Counters) Rollover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.lock.Lock(); err != nil {
		return
	}
	defer c.lock.Unlock()

	today := c.now().Format(dateLayout)
	snap := c.readLocked()
	if snap.Date == today && len(snap.Counters) == 0 {
		return
	}
	c.writeLocked(snapshot{Date: today, Counters: map[string]int64{}})
}

// readLocked loads the snapshot; callers hold the file lock. Missing or
// corrupt files read as empty.
func (c *Counters) readLocked() snapshot {
	snap := snapshot{Counters: map[string]int64{}}
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return snap
	}
	if json.Unmarshal(raw, &snap) != nil || snap.Counters == nil {
		return snapshot{Counters: map[string]int64{}}
	}
	return snap
}

// writeLocked persists the snapshot atomically via a temp-file rename.
func (c *Counters) writeLocked(snap snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	tmp := c.path + ".tmp"
	if os.WriteFile(tmp, raw, 0o644) != nil {
		return
	}
	_ = os.Rename(tmp, c.path)
}
