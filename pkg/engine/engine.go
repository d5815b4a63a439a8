// Package engine orchestrates one compile: resolve the root source,
// size a ledger to it, apply every patch in list order, render. Any
// failure is terminal for the compile and no partial output is
// produced.
package engine

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/assuo/pkg/config"
	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/ledger"
	"github.com/arthur-debert/assuo/pkg/logging"
	"github.com/arthur-debert/assuo/pkg/resolver"
	"github.com/arthur-debert/assuo/pkg/types"
)

// Engine compiles patch documents. It wires the resolver back to
// itself so nested documents compile through the same driver, each
// with its own ledger.
type Engine struct {
	res *resolver.Resolver
	log zerolog.Logger
}

// New creates an engine reading files through fs and fetching through
// client (nil for the default client).
func New(fs types.FS, client *http.Client) *Engine {
	e := &Engine{log: logging.GetLogger("engine")}
	e.res = resolver.New(fs, client, config.Parse, e.compile)
	return e
}

// Compile compiles a document that has no resolution key of its own,
// such as one read from stdin. The cycle chain starts empty.
func (e *Engine) Compile(doc types.PatchFile) ([]byte, error) {
	return e.compile(doc, resolver.NewChain())
}

// CompileFrom compiles a document whose own resolution key is known (a
// canonical path or normalized address). Seeding the chain with it
// makes a directly self-referential document fail on its first nested
// hop.
func (e *Engine) CompileFrom(key string, doc types.PatchFile) ([]byte, error) {
	chain := resolver.NewChain()
	if err := chain.Enter(key); err != nil {
		return nil, err
	}
	defer chain.Exit()
	return e.compile(doc, chain)
}

// CompileFile compiles the patch document at path. The read, parse,
// chain seeding, and compile go through the same route as a nested
// file source, so a directly self-referential document fails on its
// first hop.
func (e *Engine) CompileFile(path string) ([]byte, error) {
	return e.res.Resolve(types.NewNestedFileSource(path), resolver.NewChain())
}

// CompileURL compiles the patch document fetched from address.
func (e *Engine) CompileURL(address string) ([]byte, error) {
	return e.res.Resolve(types.NewNestedURLSource(address), resolver.NewChain())
}

func (e *Engine) compile(doc types.PatchFile, chain *resolver.Chain) ([]byte, error) {
	rootBytes, err := e.res.Resolve(doc.Source, chain)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "resolving root source")
	}

	led := ledger.New(len(rootBytes))
	e.log.Debug().
		Int("rootLen", led.RootLen()).
		Int("patches", len(doc.Patches)).
		Int("depth", chain.Depth()).
		Msg("Applying patches")

	// Strict list order: it is the sole tie-break for insertions that
	// share a spot and anchor.
	for i, p := range doc.Patches {
		payload, err := e.res.Resolve(p.Payload, chain)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err),
				"resolving patch #%d (%s %d)", i+1, p.Anchor, p.Spot)
		}
		if err := led.Insert(p.Spot, p.Anchor, payload); err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "applying patch #%d", i+1)
		}
	}

	return led.Render(rootBytes)
}
