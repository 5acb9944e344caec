// Package profiling accumulates per-frame wall time of named operations and
// mirrors every sample into Prometheus.
package profiling

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// frame holds the totals since the last ResetFrame.
type frame struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

func (f *frame) add(name string, d time.Duration) {
	f.mu.Lock()
	f.totals[name] += d
	f.mu.Unlock()
}

var current = &frame{totals: make(map[string]time.Duration)}

// Track starts timing name and returns the function that stops it:
//
//	defer profiling.Track("meshing.Patch")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		current.add(name, d)
		opDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}

// ResetFrame starts a new frame.
func ResetFrame() {
	current.mu.Lock()
	clear(current.totals)
	current.mu.Unlock()
}

// Snapshot copies the totals of the current frame.
func Snapshot() map[string]time.Duration {
	current.mu.Lock()
	defer current.mu.Unlock()
	return maps.Clone(current.totals)
}

type sample struct {
	name string
	d    time.Duration
}

// TopN renders the n slowest operations of the frame, slowest first, as
// "name:1.5ms, other:0.2ms". Ties sort by name.
func TopN(n int) string {
	snap := Snapshot()
	samples := make([]sample, 0, len(snap))
	for name, d := range snap {
		samples = append(samples, sample{name, d})
	}
	slices.SortFunc(samples, func(a, b sample) int {
		if c := cmp.Compare(b.d, a.d); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	var sb strings.Builder
	for i, s := range samples[:min(n, len(samples))] {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.name)
		sb.WriteByte(':')
		sb.WriteString(millis(s.d))
	}
	return sb.String()
}

// millis prints d in milliseconds with one decimal, dropping a trailing ".0".
func millis(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	return strings.TrimSuffix(strconv.FormatFloat(ms, 'f', 1, 64), ".0") + "ms"
}
