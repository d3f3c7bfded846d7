package editor

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces node ids.
// Implementations must return a distinct value on every call, including
// concurrent calls.
type IDGenerator interface {
	Generate() string
}

// SequenceGenerator issues ids of the form "<prefix>-<session>-<n>".
//
// The session part is taken from a random UUIDv7 when the generator is built,
// so two generators never collide; n comes from an atomic counter, so a single
// generator never repeats itself.
//
// Thread-safety: safe for concurrent use.
type SequenceGenerator struct {
	prefix  string
	session string
	seq     atomic.Int64
}

// NewSequenceGenerator creates a generator with a fresh random session.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	raw := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
	// the trailing hex digits of a v7 uuid are random, the leading ones are time
	return &SequenceGenerator{prefix: prefix, session: raw[len(raw)-10:]}
}

// NewSequenceGeneratorWithSession creates a generator with a known session,
// for reproducible ids in tests and fixtures.
func NewSequenceGeneratorWithSession(prefix, session string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, session: session}
}

// Generate returns the next id.
func (g *SequenceGenerator) Generate() string {
	n := g.seq.Add(1)
	if g.session == "" {
		return fmt.Sprintf("%s-%d", g.prefix, n)
	}
	return fmt.Sprintf("%s-%s-%d", g.prefix, g.session, n)
}

// Issued returns how many ids have been generated.
func (g *SequenceGenerator) Issued() int64 {
	return g.seq.Load()
}

// UUIDGenerator generates time-sortable UUIDv7 ids with an optional prefix.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDGenerator struct {
	Prefix string
}

// Generate creates a new UUIDv7 id.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) Generate() string {
	id := uuid.Must(uuid.NewV7()).String()
	if g.Prefix == "" {
		return id
	}
	return g.Prefix + "-" + id
}

// FixedGenerator returns predetermined ids, for tests.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedGenerator("n1", "n2")
//	gen.Generate() // "n1"
//	gen.Generate() // "n2"
//	gen.Generate() // panic: all ids exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
// Panics when exhausted so a test that creates more nodes than it planned for
// fails loudly instead of reusing an id.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
