// Package ledger implements the positional bookkeeping that lets every
// patch target offsets of the original source, no matter how much
// content earlier patches have already inserted.
//
// The ledger is an arena of gaps: gap i is the zero-width point
// between original byte i-1 and original byte i, so a source of length
// n has n+1 gaps. Inserted content accumulates in the gaps and the
// original offsets never shift, which is what distinguishes this from
// repeatedly splicing a buffer.
package ledger

import (
	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/types"
)

// gap holds the content accumulated at one insertion point. Both
// buckets render front to back; they grow in opposite directions so
// that each new insertion lands closest to its anchor byte.
type gap struct {
	// post is anchored to the original byte on the gap's left.
	// Insertions prepend, so the newest payload renders first,
	// immediately after that byte.
	post [][]byte

	// pre is anchored to the original byte on the gap's right.
	// Insertions append, so the newest payload renders last,
	// immediately before that byte.
	pre [][]byte
}

// Ledger maps gap indexes to accumulated insertions for one compile.
// It is sized once from the resolved root source, mutated in patch
// list order, and rendered exactly once.
type Ledger struct {
	rootLen int
	gaps    map[int]*gap
}

// New creates a ledger covering gaps 0 through rootLen, all empty.
// Gaps are allocated lazily on first insertion.
func New(rootLen int) *Ledger {
	return &Ledger{
		rootLen: rootLen,
		gaps:    make(map[int]*gap),
	}
}

// RootLen returns the length of the original source the ledger was
// sized to.
func (l *Ledger) RootLen() int {
	return l.rootLen
}

// Insert records payload at the given spot. Spot is an offset into the
// original source and stays valid regardless of prior insertions.
func (l *Ledger) Insert(spot int, anchor types.Anchor, payload []byte) error {
	if spot < 0 || spot > l.rootLen {
		return errors.Newf(errors.ErrSpotRange, "spot %d outside source of length %d", spot, l.rootLen).
			WithDetail("spot", spot).
			WithDetail("rootLen", l.rootLen)
	}

	g, ok := l.gaps[spot]
	if !ok {
		g = &gap{}
		l.gaps[spot] = g
	}

	switch anchor {
	case types.AnchorPost:
		g.post = append([][]byte{payload}, g.post...)
	case types.AnchorPre:
		g.pre = append(g.pre, payload)
	default:
		return errors.Newf(errors.ErrConfigInvalid, "unknown anchor %q", anchor)
	}
	return nil
}

// Render assembles the output: for each gap, the post bucket, then the
// pre bucket, then the original byte to the gap's right. The root
// slice must be the source the ledger was sized to.
func (l *Ledger) Render(root []byte) ([]byte, error) {
	if len(root) != l.rootLen {
		return nil, errors.Newf(errors.ErrInternal,
			"render called with %d root bytes, ledger sized to %d", len(root), l.rootLen)
	}

	size := len(root)
	for _, g := range l.gaps {
		for _, chunk := range g.post {
			size += len(chunk)
		}
		for _, chunk := range g.pre {
			size += len(chunk)
		}
	}

	out := make([]byte, 0, size)
	for i := 0; i <= l.rootLen; i++ {
		if g, ok := l.gaps[i]; ok {
			for _, chunk := range g.post {
				out = append(out, chunk...)
			}
			for _, chunk := range g.pre {
				out = append(out, chunk...)
			}
		}
		if i < l.rootLen {
			out = append(out, root[i])
		}
	}
	return out, nil
}
