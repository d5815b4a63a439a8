// Test Type: Unit Test
// Description: Tests for the ledger package - positional insertion bookkeeping

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/ledger"
	"github.com/arthur-debert/assuo/pkg/types"
)

type insert struct {
	spot    int
	anchor  types.Anchor
	payload string
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		inserts []insert
		want    string
	}{
		{
			name: "no_inserts_is_identity",
			root: "Hello!",
			want: "Hello!",
		},
		{
			name: "empty_root_identity",
			root: "",
			want: "",
		},
		{
			name:    "post_insert_mid_source",
			root:    "Hello!",
			inserts: []insert{{5, types.AnchorPost, ", World"}},
			want:    "Hello, World!",
		},
		{
			name:    "post_inserts_stack_newest_first",
			root:    "><",
			inserts: []insert{{1, types.AnchorPost, "a"}, {1, types.AnchorPost, "b"}},
			want:    ">ba<",
		},
		{
			name:    "post_precedes_pre_at_same_gap",
			root:    "><",
			inserts: []insert{{1, types.AnchorPost, "a"}, {1, types.AnchorPre, "c"}},
			want:    ">ac<",
		},
		{
			name:    "pre_inserts_stack_newest_last",
			root:    "><",
			inserts: []insert{{1, types.AnchorPre, "a"}, {1, types.AnchorPre, "b"}},
			want:    ">ab<",
		},
		{
			name:    "insert_at_gap_zero",
			root:    "tail",
			inserts: []insert{{0, types.AnchorPre, "head "}},
			want:    "head tail",
		},
		{
			name:    "insert_at_last_gap",
			root:    "head",
			inserts: []insert{{4, types.AnchorPost, " tail"}},
			want:    "head tail",
		},
		{
			name: "empty_payload_is_noop",
			root: "ab",
			inserts: []insert{
				{1, types.AnchorPost, ""},
				{1, types.AnchorPre, ""},
			},
			want: "ab",
		},
		{
			name: "spots_keep_original_coordinates",
			root: "0123",
			inserts: []insert{
				{1, types.AnchorPost, "xx"},
				// spot 3 still means "between original bytes 2 and 3"
				// even though the output has already grown.
				{3, types.AnchorPre, "yy"},
			},
			want: "0xx12yy3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New(len(tt.root))
			for _, in := range tt.inserts {
				require.NoError(t, l.Insert(in.spot, in.anchor, []byte(in.payload)))
			}
			out, err := l.Render([]byte(tt.root))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestInsert_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		spot int
	}{
		{"negative_spot", -1},
		{"spot_past_last_gap", 3},
		{"spot_far_out", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New(2)
			err := l.Insert(tt.spot, types.AnchorPost, []byte("x"))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSpotRange))
		})
	}
}

func TestInsert_UnknownAnchor(t *testing.T) {
	l := ledger.New(2)
	err := l.Insert(1, types.Anchor("sideways"), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

// Reversing the order of two patches sharing a spot and anchor must
// reverse their relative order in the output.
func TestInsert_OrderIsTheTieBreak(t *testing.T) {
	forward := ledger.New(2)
	require.NoError(t, forward.Insert(1, types.AnchorPost, []byte("a")))
	require.NoError(t, forward.Insert(1, types.AnchorPost, []byte("b")))

	reversed := ledger.New(2)
	require.NoError(t, reversed.Insert(1, types.AnchorPost, []byte("b")))
	require.NoError(t, reversed.Insert(1, types.AnchorPost, []byte("a")))

	fwd, err := forward.Render([]byte("><"))
	require.NoError(t, err)
	rev, err := reversed.Render([]byte("><"))
	require.NoError(t, err)

	assert.Equal(t, ">ba<", string(fwd))
	assert.Equal(t, ">ab<", string(rev))
}

// A pre insertion stays adjacent to the following original byte no
// matter how many post insertions pile up at the same gap, and the
// other way around.
func TestInsert_AnchorsAreIndependent(t *testing.T) {
	l := ledger.New(2)
	require.NoError(t, l.Insert(1, types.AnchorPre, []byte("p")))
	for _, chunk := range []string{"1", "2", "3"} {
		require.NoError(t, l.Insert(1, types.AnchorPost, []byte(chunk)))
	}
	require.NoError(t, l.Insert(1, types.AnchorPost, []byte("q")))

	out, err := l.Render([]byte("><"))
	require.NoError(t, err)
	// q is the newest post insertion, nearest '>'; p still touches '<'.
	assert.Equal(t, ">q321p<", string(out))
}

func TestRender_RootLengthMismatch(t *testing.T) {
	l := ledger.New(4)
	_, err := l.Render([]byte("too long for the ledger"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestRootLen(t *testing.T) {
	assert.Equal(t, 7, ledger.New(7).RootLen())
	assert.Equal(t, 0, ledger.New(0).RootLen())
}
