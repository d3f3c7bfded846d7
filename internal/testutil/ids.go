package testutil

import (
	"fmt"
	"sync"
)

// DeterministicIDs issues "<prefix>-1", "<prefix>-2", ... and can be reset,
// so the same test can run twice and produce identical trees.
//
// It satisfies editor.IDGenerator.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type DeterministicIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewDeterministicIDs creates a generator whose first id is "<prefix>-1".
func NewDeterministicIDs(prefix string) *DeterministicIDs {
	return &DeterministicIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *DeterministicIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Reset restarts the sequence; the next id is "<prefix>-1" again.
func (g *DeterministicIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
