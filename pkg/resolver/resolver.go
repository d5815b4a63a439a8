// Package resolver turns source descriptors into byte sequences. Four
// kinds are terminal (bytes, text, file, url); the two nested kinds
// designate a whole patch document that is compiled recursively, with
// a chain guard rejecting cyclic references.
package resolver

import (
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/assuo/pkg/errors"
	"github.com/arthur-debert/assuo/pkg/logging"
	"github.com/arthur-debert/assuo/pkg/paths"
	"github.com/arthur-debert/assuo/pkg/types"
	"github.com/rs/zerolog"
)

// ParseFunc parses nested patch-document bytes into its root source
// and patch list. Wired to the config loader by the engine; a function
// value keeps this package free of a dependency on the document
// format.
type ParseFunc func(data []byte) (types.PatchFile, error)

// NestedFunc compiles a nested patch document. Wired to the engine's
// compile entry point; the chain passed in already contains the nested
// document's own key.
type NestedFunc func(doc types.PatchFile, chain *Chain) ([]byte, error)

// Resolver resolves sources. File reads go through types.FS, fetches
// through the injected HTTP client.
type Resolver struct {
	fs     types.FS
	client *http.Client
	parse  ParseFunc
	nested NestedFunc
	log    zerolog.Logger
}

// DefaultClient returns the HTTP client used when none is injected.
// The timeout is a quality-of-service guard, not part of the
// resolution contract.
func DefaultClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// New creates a resolver. client may be nil, in which case
// DefaultClient is used.
func New(fs types.FS, client *http.Client, parse ParseFunc, nested NestedFunc) *Resolver {
	if client == nil {
		client = DefaultClient()
	}
	return &Resolver{
		fs:     fs,
		client: client,
		parse:  parse,
		nested: nested,
		log:    logging.GetLogger("resolver"),
	}
}

// Resolve turns src into its byte sequence. chain carries the nested
// documents active on the current call path and must not be nil.
func (r *Resolver) Resolve(src types.Source, chain *Chain) ([]byte, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	switch src.Kind {
	case types.SourceBytes:
		return src.Bytes, nil

	case types.SourceText:
		// Go strings are already byte sequences; this only documents
		// the contract for text that is not valid UTF-8.
		if !utf8.ValidString(src.Value) {
			return nil, errors.New(errors.ErrEncoding, "text payload is not valid UTF-8")
		}
		return []byte(src.Value), nil

	case types.SourceFile:
		data, err := r.fs.ReadFile(src.Value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read file %q", src.Value)
		}
		return data, nil

	case types.SourceURL:
		return r.fetch(src.Value)

	case types.SourceNestedFile:
		key, err := paths.CanonicalPath(src.Value)
		if err != nil {
			return nil, err
		}
		return r.resolveNested(src, key, chain, func() ([]byte, error) {
			data, err := r.fs.ReadFile(src.Value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read patch document %q", src.Value)
			}
			return data, nil
		})

	case types.SourceNestedURL:
		key, err := paths.NormalizeURL(src.Value)
		if err != nil {
			return nil, err
		}
		return r.resolveNested(src, key, chain, func() ([]byte, error) {
			return r.fetch(src.Value)
		})

	default:
		return nil, errors.Newf(errors.ErrConfigInvalid, "source has no recognized case (kind %q)", src.Kind)
	}
}

// resolveNested guards the chain, obtains the document bytes, parses
// them, and hands the parsed document to the nested compiler. The key
// is held for exactly the duration of the nested compile.
func (r *Resolver) resolveNested(src types.Source, key string, chain *Chain, fetch func() ([]byte, error)) ([]byte, error) {
	if err := chain.Enter(key); err != nil {
		return nil, err
	}
	defer chain.Exit()

	r.log.Debug().
		Str("target", key).
		Int("depth", chain.Depth()).
		Msg("Compiling nested patch document")

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	doc, err := r.parse(data)
	if err != nil {
		code := errors.GetErrorCode(err)
		if code == errors.ErrUnknown {
			code = errors.ErrConfigParse
		}
		return nil, errors.Wrapf(err, code, "in nested document %s", src)
	}

	return r.nested(doc, chain)
}

// fetch performs a synchronous GET. Any status outside 2xx is a fetch
// failure, never an empty body.
func (r *Resolver) fetch(address string) ([]byte, error) {
	resp, err := r.client.Get(address)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetch, "cannot fetch %q", address)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrFetch, "fetching %q returned status %s", address, resp.Status).
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFetch, "cannot read response body from %q", address)
	}
	return body, nil
}
