package probes

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jonwraymond/launchgate/health"
)

// Memory checks that heap usage leaves headroom.
type Memory struct {
	// MaxHeapRatio is the heap fraction at which the check fails.
	// Default: 0.9
	MaxHeapRatio float64

	// MaxHeapBytes is the heap budget the ratio applies to.
	// Default: 0 (memory obtained from the OS, runtime.MemStats.Sys)
	MaxHeapBytes uint64

	// readStats is replaced in tests.
	readStats func(*runtime.MemStats)
}

// Probe implements health.Probe.
func (p Memory) Probe(ctx context.Context) (health.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return health.Outcome{}, err
	}

	threshold := p.MaxHeapRatio
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.9
	}
	readStats := p.readStats
	if readStats == nil {
		readStats = runtime.ReadMemStats
	}

	var stats runtime.MemStats
	readStats(&stats)

	budget := p.MaxHeapBytes
	if budget == 0 {
		budget = stats.Sys
	}
	if budget == 0 {
		return health.Pass("memory stats unavailable"), nil
	}

	ratio := float64(stats.HeapAlloc) / float64(budget)
	details := map[string]any{
		"heap_alloc_bytes": stats.HeapAlloc,
		"heap_budget":      budget,
		"usage_percent":    ratio * 100,
		"num_gc":           stats.NumGC,
		"goroutines":       runtime.NumGoroutine(),
	}

	if ratio >= threshold {
		return health.Fail(fmt.Sprintf("heap usage %.1f%% exceeds %.1f%%", ratio*100, threshold*100)).WithDetails(details), nil
	}
	return health.Pass(fmt.Sprintf("heap usage %.1f%%", ratio*100)).WithDetails(details), nil
}
