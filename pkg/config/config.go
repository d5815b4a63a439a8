// Package config parses assuo patch documents. A document is TOML with
// a [source] table naming the root source and an optional list of
// [[patch]] tables applied in order:
//
//	[source]
//	text = "Hello!"
//
//	[[patch]]
//	do = "insert"
//	way = "post"
//	spot = 4
//	source = { text = ", World" }
//
// Source tables carry exactly one of bytes/text/file/url/assuo-file/
// assuo-url. Deeper validation (spot range against the root source) is
// the ledger's job at insertion time.
package config

import (
	"bytes"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/logging"
	"github.com/arthur-debert/assuo/pkg/types"
)

var log = logging.GetLogger("config")

// rawDocument mirrors the TOML shape before validation
type rawDocument struct {
	Source rawSource  `toml:"source"`
	Patch  []rawPatch `toml:"patch"`
}

// rawSource lists every source case as optional; validation enforces
// that exactly one is present.
type rawSource struct {
	Bytes      *[]int64 `toml:"bytes"`
	Text       *string  `toml:"text"`
	File       *string  `toml:"file"`
	URL        *string  `toml:"url"`
	NestedFile *string  `toml:"assuo-file"`
	NestedURL  *string  `toml:"assuo-url"`
}

// rawPatch keeps a Count field even though remove patches are not
// supported, so a remove patch fails with a useful message instead of
// an unknown-field parse error.
type rawPatch struct {
	Do     string    `toml:"do"`
	Way    string    `toml:"way"`
	Spot   *int64    `toml:"spot"`
	Source rawSource `toml:"source"`
	Count  *int64    `toml:"count"`
}

// Parse parses and validates a patch document.
func Parse(data []byte) (types.PatchFile, error) {
	var raw rawDocument
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return types.PatchFile{}, errors.Wrap(err, errors.ErrConfigParse, "cannot parse patch document")
	}

	source, err := raw.Source.toSource()
	if err != nil {
		return types.PatchFile{}, errors.Wrap(err, errors.GetErrorCode(err), "in [source]")
	}

	patches := make([]types.Patch, 0, len(raw.Patch))
	for i, rp := range raw.Patch {
		p, err := rp.toPatch()
		if err != nil {
			return types.PatchFile{}, errors.Wrapf(err, errors.GetErrorCode(err), "in [[patch]] #%d", i+1)
		}
		patches = append(patches, p)
	}

	log.Debug().
		Str("source", source.String()).
		Int("patches", len(patches)).
		Msg("Patch document parsed")

	return types.PatchFile{Source: source, Patches: patches}, nil
}

// Load reads and parses a patch document from disk.
func Load(fs types.FS, path string) (types.PatchFile, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return types.PatchFile{}, errors.Wrapf(err, errors.ErrFileRead, "cannot read patch document %q", path)
	}
	return Parse(data)
}

func (r rawSource) toSource() (types.Source, error) {
	populated := 0
	var source types.Source

	if r.Bytes != nil {
		populated++
		b := make([]byte, len(*r.Bytes))
		for i, v := range *r.Bytes {
			if v < 0 || v > 255 {
				return types.Source{}, errors.Newf(errors.ErrConfigInvalid,
					"bytes[%d] is %d, outside [0, 255]", i, v)
			}
			b[i] = byte(v)
		}
		source = types.NewBytesSource(b)
	}
	if r.Text != nil {
		populated++
		source = types.NewTextSource(*r.Text)
	}
	if r.File != nil {
		populated++
		source = types.NewFileSource(*r.File)
	}
	if r.URL != nil {
		populated++
		source = types.NewURLSource(*r.URL)
	}
	if r.NestedFile != nil {
		populated++
		source = types.NewNestedFileSource(*r.NestedFile)
	}
	if r.NestedURL != nil {
		populated++
		source = types.NewNestedURLSource(*r.NestedURL)
	}

	switch populated {
	case 0:
		return types.Source{}, errors.New(errors.ErrConfigInvalid,
			"source must carry one of bytes/text/file/url/assuo-file/assuo-url")
	case 1:
		return source, source.Validate()
	default:
		return types.Source{}, errors.Newf(errors.ErrConfigInvalid,
			"source carries %d cases, exactly one expected", populated)
	}
}

func (r rawPatch) toPatch() (types.Patch, error) {
	switch {
	case r.Do == "":
		return types.Patch{}, errors.New(errors.ErrConfigInvalid, "patch is missing 'do'")
	case strings.EqualFold(r.Do, "remove"):
		return types.Patch{}, errors.New(errors.ErrConfigInvalid, "remove patches are not supported")
	case !strings.EqualFold(r.Do, "insert"):
		return types.Patch{}, errors.Newf(errors.ErrConfigInvalid, "unknown action %q, expected 'insert'", r.Do)
	}
	if r.Count != nil {
		return types.Patch{}, errors.New(errors.ErrConfigInvalid, "unexpected 'count' on an insert patch")
	}

	var anchor types.Anchor
	switch r.Way {
	case "pre":
		anchor = types.AnchorPre
	case "post":
		anchor = types.AnchorPost
	case "":
		return types.Patch{}, errors.New(errors.ErrConfigInvalid, "patch is missing 'way'")
	default:
		return types.Patch{}, errors.Newf(errors.ErrConfigInvalid, "unknown way %q, expected 'pre' or 'post'", r.Way)
	}

	if r.Spot == nil {
		return types.Patch{}, errors.New(errors.ErrConfigInvalid, "patch is missing 'spot'")
	}
	if *r.Spot < 0 {
		return types.Patch{}, errors.Newf(errors.ErrConfigInvalid, "spot must be non-negative, got %d", *r.Spot)
	}

	payload, err := r.Source.toSource()
	if err != nil {
		return types.Patch{}, err
	}

	return types.Patch{Anchor: anchor, Spot: int(*r.Spot), Payload: payload}, nil
}
