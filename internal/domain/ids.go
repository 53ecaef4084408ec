package domain

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator mints identifiers for new sections and items
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator mints random UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceGenerator mints predictable IDs ("s1", "s2", ...). Used in tests.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Int64
}

// NewSequence creates a sequence generator with the given prefix
func NewSequence(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	return g.Prefix + strconv.FormatInt(g.n.Add(1), 10)
}
