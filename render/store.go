package render

import (
	"fmt"
	"strconv"

	"github.com/sprout-format/sprout/debug"
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/keypath"
)

// evalFunc is the evaluator callback the store re-enters for cache misses
// and nested-key writes.
type evalFunc func(p keypath.Path, node *ir.Node) (*ir.Node, error)

// store owns the working tree, the memoization cache and the in-progress
// set. All state is private to one render call.
type store struct {
	root       *ir.Node
	cache      map[string]*ir.Node
	inProgress map[string]bool

	// evals counts cache misses, i.e. actual evaluations.
	evals int
}

func newStore(root *ir.Node) *store {
	return &store{
		root:       root,
		cache:      map[string]*ir.Node{},
		inProgress: map[string]bool{},
	}
}

// get walks the live tree to p. Absent keys and out-of-range indices are
// not found; addressing through a scalar is ErrTypeMismatch.
func (s *store) get(p keypath.Path) (*ir.Node, bool, error) {
	node := s.root
	for _, seg := range p[1:] {
		switch node.Type {
		case ir.MappingType:
			child := node.Get(seg)
			if child == nil {
				return nil, false, nil
			}
			node = child
		case ir.SequenceType:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false, nil
			}
			child, ok := node.Index(i)
			if !ok {
				return nil, false, nil
			}
			node = child
		default:
			return nil, false, fmt.Errorf("%w: %s addresses segment %q of a %s", ErrTypeMismatch, p, seg, node.Type)
		}
	}
	return node, true, nil
}

// cachedOrEvaluate is the single serialization point guaranteeing each
// path is evaluated at most once per render. Re-entering a path whose
// evaluation has not completed is a reference cycle.
func (s *store) cachedOrEvaluate(p keypath.Path, node *ir.Node, ev evalFunc) (*ir.Node, error) {
	key := p.Key()
	if res, ok := s.cache[key]; ok {
		return res, nil
	}
	if s.inProgress[key] {
		return nil, fmt.Errorf("%w at %s", ErrCycle, p)
	}
	s.inProgress[key] = true
	s.evals++
	res, err := ev(p, node)
	delete(s.inProgress, key)
	if err != nil {
		return nil, err
	}
	s.cache[key] = res
	return res, nil
}

// invalidate drops cache entries at p and every descendant of p.
func (s *store) invalidate(p keypath.Path) {
	key := p.Key()
	for k := range s.cache {
		if keypath.KeyWithin(k, key) {
			delete(s.cache, k)
		}
	}
}

// write merges value at p: the nested-key write path. Missing or mistyped
// intermediate locations drop the write (false, nil) rather than failing
// the render. On success the value is evaluated at p and stored in the
// parent's child slot.
func (s *store) write(p keypath.Path, value *ir.Node, ev evalFunc) (bool, error) {
	parentPath, err := p.Parent()
	if err != nil {
		return false, err
	}
	parent, ok, err := s.get(parentPath)
	if err != nil || !ok {
		// soft drop, including type mismatches along the way
		if debug.Write() {
			debug.Logf("write: no parent for %s (err=%v)\n", p, err)
		}
		return false, nil
	}
	seg := p[len(p)-1]
	var idx int
	switch parent.Type {
	case ir.MappingType:
	case ir.SequenceType:
		i, err := strconv.Atoi(seg)
		if err != nil {
			return false, nil
		}
		if _, ok := parent.Index(i); !ok {
			return false, nil
		}
		idx = i
	default:
		return false, nil
	}
	s.invalidate(p)
	res, err := s.cachedOrEvaluate(p, value, ev)
	if err != nil {
		return false, err
	}
	if parent.Type == ir.MappingType {
		parent.Set(seg, res)
	} else {
		parent.Values[idx] = res
	}
	if debug.Write() {
		debug.Logf("write: merged %s\n", p)
	}
	return true, nil
}
