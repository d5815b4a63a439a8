package types

// Anchor selects which original-byte neighbor a patch's payload stays
// adjacent to.
type Anchor string

const (
	// AnchorPre positions the payload immediately before the original
	// byte at the patch's spot.
	AnchorPre Anchor = "pre"

	// AnchorPost positions the payload immediately after the original
	// byte preceding the patch's spot.
	AnchorPost Anchor = "post"
)

// Patch is a single insertion. Spot is always an offset into the
// original root source, never into the output built so far.
type Patch struct {
	Anchor  Anchor
	Spot    int
	Payload Source
}

// PatchFile is a parsed patch document: the root source every spot
// refers to, and the patches to apply in order. List order is the
// sole tie-break for insertions landing at the same spot and anchor.
type PatchFile struct {
	Source  Source
	Patches []Patch
}
