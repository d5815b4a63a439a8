package types

import (
	"github.com/arthur-debert/assuo/pkg/errors"
)

// SourceKind identifies which case of a Source is populated. The kind
// names match the keys used in the TOML document format.
type SourceKind string

const (
	// SourceBytes is a literal byte array.
	SourceBytes SourceKind = "bytes"

	// SourceText is a UTF-8 string.
	SourceText SourceKind = "text"

	// SourceFile reads a file on disk.
	SourceFile SourceKind = "file"

	// SourceURL fetches an address over HTTP.
	SourceURL SourceKind = "url"

	// SourceNestedFile reads a patch document on disk and compiles it;
	// the compiled output is the resolved value.
	SourceNestedFile SourceKind = "assuo-file"

	// SourceNestedURL fetches a patch document over HTTP and compiles it.
	SourceNestedURL SourceKind = "assuo-url"
)

// Nested reports whether the kind designates a nested patch document
// that must be compiled recursively.
func (k SourceKind) Nested() bool {
	return k == SourceNestedFile || k == SourceNestedURL
}

// Source is a tagged variant describing where the bytes of a source
// come from. Exactly one case is populated: Bytes carries the payload
// for SourceBytes, Value carries it for every other kind (the text
// itself, a path, or an address).
type Source struct {
	Kind  SourceKind
	Bytes []byte
	Value string
}

// NewBytesSource returns a literal byte source.
func NewBytesSource(b []byte) Source {
	return Source{Kind: SourceBytes, Bytes: b}
}

// NewTextSource returns a UTF-8 text source.
func NewTextSource(s string) Source {
	return Source{Kind: SourceText, Value: s}
}

// NewFileSource returns a source read from a file on disk.
func NewFileSource(path string) Source {
	return Source{Kind: SourceFile, Value: path}
}

// NewURLSource returns a source fetched from an address.
func NewURLSource(address string) Source {
	return Source{Kind: SourceURL, Value: address}
}

// NewNestedFileSource returns a source compiled from a patch document
// on disk.
func NewNestedFileSource(path string) Source {
	return Source{Kind: SourceNestedFile, Value: path}
}

// NewNestedURLSource returns a source compiled from a patch document
// fetched from an address.
func NewNestedURLSource(address string) Source {
	return Source{Kind: SourceNestedURL, Value: address}
}

// Validate checks the exactly-one-case invariant. A Source with an
// unknown or empty kind is a configuration error, not a resolution
// error.
func (s Source) Validate() error {
	switch s.Kind {
	case SourceBytes, SourceText:
		return nil
	case SourceFile, SourceURL, SourceNestedFile, SourceNestedURL:
		if s.Value == "" {
			return errors.Newf(errors.ErrConfigInvalid, "source %q has an empty target", s.Kind)
		}
		return nil
	default:
		return errors.Newf(errors.ErrConfigInvalid, "source has no recognized case (kind %q)", s.Kind)
	}
}

// String renders the source for error reporting without dumping byte
// payloads.
func (s Source) String() string {
	switch s.Kind {
	case SourceBytes, SourceText:
		return string(s.Kind)
	default:
		return string(s.Kind) + " " + s.Value
	}
}
