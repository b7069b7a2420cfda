package memory

import (
	"strconv"
	"sync/atomic"
)

// SequenceGenerator issues identifiers from a monotonically increasing
// counter with a fixed prefix, e.g. transfer0, transfer1, ... Counters are
// scoped to the generator instance, so independent stores in one process
// never share a sequence. Identifiers are never reused.
type SequenceGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequenceGenerator creates a generator for the given prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next identifier in the sequence.
func (g *SequenceGenerator) Generate() string {
	n := g.next.Add(1) - 1
	return g.prefix + strconv.FormatUint(n, 10)
}
