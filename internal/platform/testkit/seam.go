package testkit

import (
	"sync"
	"testing"
)

// seamMu serializes tests that touch process-wide state: the root logger,
// the swagger mutator registry, doc readers and env driven defaults
var seamMu sync.Mutex

// Swap points *target at replacement until the test (and its cleanups) finish.
// Works for any seam: func vars, registries, plain values
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}

// Serial holds the package wide seam lock for the rest of the test.
// Pair it with Swap whenever the swapped value is shared across packages' tests
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
