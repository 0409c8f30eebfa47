package todo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID strategies accepted by NewIDGenerator.
const (
	StrategyCounter = "counter"
	StrategyUUID    = "uuid"
)

// IDGenerator hands out task ids. The store calls NextID while holding its
// lock, so implementations need no synchronization of their own.
type IDGenerator interface {
	NextID() ID
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() ID

// NextID calls f.
func (f IDGeneratorFunc) NextID() ID {
	return f()
}

// Counter produces "1", "2", "3", ...
type Counter struct {
	last uint64
}

// NewCounter returns a counter starting at 1.
func NewCounter() *Counter {
	return &Counter{}
}

// NextID returns the next number in the sequence.
func (c *Counter) NextID() ID {
	c.last++
	return ID(strconv.FormatUint(c.last, 10))
}

// UUIDGenerator produces time-ordered random UUIDv7 tokens.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a UUIDv7 generator.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// NextID returns a fresh UUIDv7 string.
func (UUIDGenerator) NextID() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}

// NewIDGenerator returns the generator for a strategy name.
// An empty name selects the counter.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyCounter:
		return NewCounter(), nil
	case StrategyUUID:
		return NewUUIDGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q (expected %s|%s)", strategy, StrategyCounter, StrategyUUID)
	}
}
