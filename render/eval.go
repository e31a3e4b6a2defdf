package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sprout-format/sprout/debug"
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/keypath"
)

// evaluator drives the depth-first walk. Every visit is routed through
// the store's cache, so each path is evaluated exactly once unless a
// nested-key write re-enters it.
type evaluator struct {
	cfg  *config
	s    *store
	res  *resolver
	tmpl *templater
}

func newEvaluator(cfg *config, root *ir.Node) *evaluator {
	e := &evaluator{
		cfg: cfg,
		s:   newStore(root),
	}
	e.res = &resolver{cfg: cfg, s: e.s, ev: e.evaluate}
	e.tmpl = &templater{cfg: cfg, res: e.res}
	return e
}

func (e *evaluator) evaluate(p keypath.Path, node *ir.Node) (*ir.Node, error) {
	if debug.Eval() {
		debug.Logf("eval %s (%s)\n", p, node.Type)
	}
	switch node.Type {
	case ir.NullType, ir.BoolType, ir.NumberType:
		return node, nil
	case ir.StringType:
		return e.evalString(p, node)
	case ir.SequenceType:
		for i, child := range node.Values {
			res, err := e.s.cachedOrEvaluate(p.JoinIndex(i), child, e.evaluate)
			if err != nil {
				return nil, err
			}
			node.Values[i] = res
		}
		return node, nil
	case ir.MappingType:
		return e.evalMapping(p, node)
	default:
		return nil, fmt.Errorf("%w: %d at %s", ir.ErrInvalidNodeKind, int(node.Type), p)
	}
}

// evalString dispatches a scalar string: substitution reference or
// template. Substitutions return the resolved node verbatim, so sequences
// and mappings substitute as themselves, not as strings.
func (e *evaluator) evalString(p keypath.Path, node *ir.Node) (*ir.Node, error) {
	if rest, isSubst := strings.CutPrefix(node.String, e.cfg.substTag); isSubst {
		refExpr := strings.TrimLeft(rest, " \t")
		if refExpr == "" {
			return nil, fmt.Errorf("%w: empty substitution reference at %s", keypath.ErrMalformedPath, p)
		}
		target, ok, err := e.res.resolve(refExpr, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			// missing targets resolve to null, they do not fail
			// the render
			if debug.Eval() {
				debug.Logf("eval: substitution %q at %s has no target\n", refExpr, p)
			}
			return ir.Null(), nil
		}
		return target.Clone(), nil
	}
	out, err := e.tmpl.render(node.String, p)
	if err != nil {
		return nil, err
	}
	return ir.FromString(out), nil
}

func (e *evaluator) evalMapping(p keypath.Path, node *ir.Node) (*ir.Node, error) {
	// snapshot the key set before any mutation
	keys := slices.Clone(node.Keys)
	var nested, plain []string
	for _, k := range keys {
		if e.isNestedKey(k) {
			nested = append(nested, k)
		} else {
			plain = append(plain, k)
		}
	}
	slices.Sort(nested)
	slices.Sort(plain)

	for _, k := range nested {
		value := node.Get(k)
		node.Delete(k)
		target, err := e.nestedTarget(p, k)
		if err != nil {
			return nil, err
		}
		merged, err := e.s.write(target, value, e.evaluate)
		if err != nil {
			return nil, err
		}
		if !merged && debug.Write() {
			debug.Logf("eval: dropped nested key %q at %s\n", k, p)
		}
	}
	for _, k := range plain {
		res, err := e.s.cachedOrEvaluate(p.Join(k), node.Get(k), e.evaluate)
		if err != nil {
			return nil, err
		}
		node.Set(k, res)
	}
	return node, nil
}

// isNestedKey reports whether k encodes a deferred write: it contains the
// separator and carries the nested-key suffix. Keys with a separator but
// no suffix are left in place as plain keys.
func (e *evaluator) isNestedKey(k string) bool {
	return strings.Contains(k, e.cfg.sep) && strings.HasSuffix(k, e.cfg.nestedTag)
}

// nestedTarget resolves the write target for nested key k appearing in
// the mapping at p: root-anchored when the key begins with the separator,
// otherwise relative to p.
func (e *evaluator) nestedTarget(p keypath.Path, k string) (keypath.Path, error) {
	raw := strings.TrimSuffix(k, e.cfg.nestedTag)
	if keypath.IsAbsolute(raw, e.cfg.sep) {
		segs, err := keypath.Parse(strings.TrimPrefix(raw, e.cfg.sep), e.cfg.sep)
		if err != nil {
			return nil, err
		}
		return keypath.Root().JoinAll(segs), nil
	}
	segs, err := keypath.Parse(raw, e.cfg.sep)
	if err != nil {
		return nil, err
	}
	return p.JoinAll(segs), nil
}
