// Test Type: Unit Test
// Description: Tests for the resolution chain cycle guard

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/resolver"
)

func TestChain_EnterExit(t *testing.T) {
	c := resolver.NewChain()
	assert.Equal(t, 0, c.Depth())

	require.NoError(t, c.Enter("/a.toml"))
	require.NoError(t, c.Enter("/b.toml"))
	assert.Equal(t, 2, c.Depth())
	assert.Equal(t, "/a.toml -> /b.toml", c.Path())

	c.Exit()
	assert.Equal(t, 1, c.Depth())
}

func TestChain_RejectsActiveKey(t *testing.T) {
	c := resolver.NewChain()
	require.NoError(t, c.Enter("/a.toml"))
	require.NoError(t, c.Enter("/b.toml"))

	err := c.Enter("/a.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCycle))

	// The failed Enter must not have grown the chain.
	assert.Equal(t, 2, c.Depth())
}

// A key is visible only along the active path: once a branch exits,
// a sibling may enter the same key again.
func TestChain_SiblingsMayReuseKeys(t *testing.T) {
	c := resolver.NewChain()
	require.NoError(t, c.Enter("/root.toml"))

	require.NoError(t, c.Enter("/shared.toml"))
	c.Exit()

	require.NoError(t, c.Enter("/shared.toml"))
	c.Exit()
}

func TestChain_ExitOnEmptyIsHarmless(t *testing.T) {
	c := resolver.NewChain()
	c.Exit()
	assert.Equal(t, 0, c.Depth())
}
