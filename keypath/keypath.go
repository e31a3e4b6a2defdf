// Package keypath implements the dotted-path addressing used throughout
// sprout. A Path is a segment list whose first segment is always the root
// marker; further segments are mapping keys or decimal sequence indices.
package keypath

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// RootMarker is the first segment of every Path.
	RootMarker = "$"

	// keyJoin separates segments in cache keys. It cannot occur in a
	// parsed segment, so joined keys are collision free even when
	// segments contain the configured separator.
	keyJoin = "\x1f"
)

var ErrMalformedPath = errors.New("malformed path")

type Path []string

func Root() Path {
	return Path{RootMarker}
}

func (p Path) IsRoot() bool {
	return len(p) <= 1
}

// Join returns a new path with seg appended. The receiver is never
// aliased, so joined paths can be retained across recursive calls.
func (p Path) Join(seg string) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = seg
	return res
}

func (p Path) JoinIndex(i int) Path {
	return p.Join(strconv.Itoa(i))
}

// JoinAll appends all segs at once.
func (p Path) JoinAll(segs []string) Path {
	res := make(Path, len(p), len(p)+len(segs))
	copy(res, p)
	return append(res, segs...)
}

// Parent drops the last segment. The root path has no parent.
func (p Path) Parent() (Path, error) {
	if p.IsRoot() {
		return nil, ErrMalformedPath
	}
	return p[:len(p)-1], nil
}

// Key is the canonical cache key for p.
func (p Path) Key() string {
	return strings.Join(p, keyJoin)
}

// KeyWithin reports whether the path identified by key equals or descends
// from the path identified by ancestor, both in Key() form.
func KeyWithin(key, ancestor string) bool {
	return key == ancestor || strings.HasPrefix(key, ancestor+keyJoin)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// IsAbsolute reports whether a reference expression is root anchored,
// i.e. begins with the configured separator.
func IsAbsolute(expr, sep string) bool {
	return strings.HasPrefix(expr, sep)
}

// Parse splits a reference expression into segments. Absolute expressions
// must have their leading separator stripped before parsing. Empty
// expressions and empty segments are malformed.
func Parse(expr, sep string) ([]string, error) {
	if expr == "" {
		return nil, ErrMalformedPath
	}
	segs := strings.Split(expr, sep)
	for _, seg := range segs {
		if seg == "" {
			return nil, ErrMalformedPath
		}
		if strings.Contains(seg, keyJoin) {
			return nil, ErrMalformedPath
		}
	}
	return segs, nil
}
