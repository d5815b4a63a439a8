// Package paths provides centralized path and address handling for
// assuo. Resolution keys produced here identify nested patch documents
// for cycle detection, so two spellings of the same target must map to
// the same key.
package paths

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/assuo/pkg/errors"
)

// CanonicalPath returns the canonical resolution key for a file path:
// absolute and lexically cleaned. Symlinks are not chased; the key
// identifies the spelled target, which is what a patch document refers
// to.
func CanonicalPath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrConfigInvalid, "empty file path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "cannot canonicalize path %q", path)
	}
	return filepath.Clean(abs), nil
}

// NormalizeURL returns the canonical resolution key for an address:
// lowercased scheme and host, default ports stripped, fragment
// dropped, empty path normalized to "/".
func NormalizeURL(address string) (string, error) {
	u, err := url.Parse(address)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "invalid url %q", address)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Newf(errors.ErrConfigInvalid, "unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.Newf(errors.ErrConfigInvalid, "url %q has no host", address)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if (u.Scheme == "http" && strings.HasSuffix(u.Host, ":80")) ||
		(u.Scheme == "https" && strings.HasSuffix(u.Host, ":443")) {
		u.Host = u.Host[:strings.LastIndex(u.Host, ":")]
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
