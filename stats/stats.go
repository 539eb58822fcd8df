// Package stats implements the append-only flat-file statistics collector
// every optimization pass reports through: one record per pass run,
// serialized as key=value tuples on a single line.
package stats

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Record is one pass run's statistics: identity, timing, size delta, and
// any pass-specific counters (nodes removed, calls inlined, and so on).
type Record struct {
	RunID      string
	PassID     string
	StartUnix  int64
	EndUnix    int64
	BeforeSize int
	AfterSize  int
	Counters   map[string]int64
}

// Line renders r as the collector's one-line, key=value wire format.
func (r Record) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run=%s pass=%s start=%d end=%d before=%d after=%d",
		r.RunID, r.PassID, r.StartUnix, r.EndUnix, r.BeforeSize, r.AfterSize)
	keys := make([]string, 0, len(r.Counters))
	for k := range r.Counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%d", k, r.Counters[k])
	}
	return b.String()
}

// Collector appends Records to a file, one per line. A zero-value Collector
// discards records; use NewFileCollector for a durable one.
type Collector struct {
	mu   sync.Mutex
	file *os.File
	runID string
}

// NewFileCollector opens path for appending (creating it if necessary) and
// returns a Collector that writes every record to it. All records written
// by this collector carry the same run ID, generated once here, so records
// from concurrent batch.Runner workers writing to the same path can still
// be told apart.
func NewFileCollector(path string) (*Collector, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("stats: open %s: %w", path, err)
	}
	return &Collector{file: f, runID: uuid.New().String()}, nil
}

// RunID returns the run identifier stamped on every record this collector
// writes.
func (c *Collector) RunID() string {
	if c == nil {
		return ""
	}
	return c.runID
}

// Write appends rec to the backing file. A nil Collector silently discards
// the record, so passes can take a *Collector that may be nil without
// branching on every call site.
func (c *Collector) Write(rec Record) error {
	if c == nil || c.file == nil {
		return nil
	}
	if rec.RunID == "" {
		rec.RunID = c.runID
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.file, rec.Line())
	return err
}

// Close closes the backing file.
func (c *Collector) Close() error {
	if c == nil || c.file == nil {
		return nil
	}
	return c.file.Close()
}
