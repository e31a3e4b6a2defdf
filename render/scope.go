package render

import (
	"errors"
	"strings"

	"github.com/sprout-format/sprout/debug"
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/keypath"
)

// resolver searches enclosing scopes for reference targets, innermost
// first, falling back to a root-anchored lookup. Found targets are
// returned evaluated, through the store's cache.
type resolver struct {
	cfg *config
	s   *store
	ev  evalFunc
}

// resolve looks up refExpr from the location from. The boolean result is
// false when the reference has no target anywhere; that is not an error.
func (r *resolver) resolve(refExpr string, from keypath.Path) (*ir.Node, bool, error) {
	if keypath.IsAbsolute(refExpr, r.cfg.sep) {
		return r.lookupAbsolute(strings.TrimPrefix(refExpr, r.cfg.sep))
	}
	segs, err := keypath.Parse(refExpr, r.cfg.sep)
	if err != nil {
		return nil, false, err
	}
	// Innermost scope wins: probe parent(from), then each enclosing
	// scope outward. The last iteration probes root, which doubles as
	// the absolute fallback.
	scope := from
	for !scope.IsRoot() {
		scope, _ = scope.Parent()
		node, ok, err := r.probe(scope.JoinAll(segs))
		if err != nil {
			return nil, false, err
		}
		if ok {
			return node, true, nil
		}
	}
	if from.IsRoot() {
		// no enclosing scopes; still try the root itself
		return r.probe(keypath.Root().JoinAll(segs))
	}
	if debug.Scope() {
		debug.Logf("scope: %q unresolved from %s\n", refExpr, from)
	}
	return nil, false, nil
}

// lookupAbsolute resolves expr from the root only, bypassing scope
// search. expr must already have its leading separator stripped.
func (r *resolver) lookupAbsolute(expr string) (*ir.Node, bool, error) {
	segs, err := keypath.Parse(expr, r.cfg.sep)
	if err != nil {
		return nil, false, err
	}
	return r.probe(keypath.Root().JoinAll(segs))
}

// probe attempts one candidate path. A type mismatch on the way counts
// as not found so that an outer scope can still match.
func (r *resolver) probe(candidate keypath.Path) (*ir.Node, bool, error) {
	node, ok, err := r.s.get(candidate)
	if err != nil {
		if errors.Is(err, ErrTypeMismatch) {
			if debug.Scope() {
				debug.Logf("scope: probe %s: %v\n", candidate, err)
			}
			return nil, false, nil
		}
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	res, err := r.s.cachedOrEvaluate(candidate, node, r.ev)
	if err != nil {
		return nil, false, err
	}
	if debug.Scope() {
		debug.Logf("scope: resolved %s\n", candidate)
	}
	return res, true, nil
}
