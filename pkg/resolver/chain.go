package resolver

import (
	"strings"

	"github.com/arthur-debert/assuo/pkg/errors"
)

// Chain tracks the nested documents currently being compiled along one
// call path. A key is visible only from the root compile down to the
// current nested compile; sibling branches never see each other's
// keys. Entering a key that is already active is a cycle.
//
// Compilation recurses on a single goroutine, so Chain needs no
// locking.
type Chain struct {
	active []string
}

// NewChain returns an empty chain for a fresh root compile.
func NewChain() *Chain {
	return &Chain{}
}

// Enter adds key to the chain for the duration of a nested compile.
// Callers must pair every successful Enter with an Exit, on success
// and failure alike.
func (c *Chain) Enter(key string) error {
	for _, k := range c.active {
		if k == key {
			return errors.Newf(errors.ErrCycle, "nested document %q is already being compiled", key).
				WithDetail("chain", c.Path())
		}
	}
	c.active = append(c.active, key)
	return nil
}

// Exit removes the most recently entered key.
func (c *Chain) Exit() {
	if len(c.active) > 0 {
		c.active = c.active[:len(c.active)-1]
	}
}

// Depth returns the number of active nested compiles.
func (c *Chain) Depth() int {
	return len(c.active)
}

// Path renders the active chain for error reporting.
func (c *Chain) Path() string {
	return strings.Join(c.active, " -> ")
}
