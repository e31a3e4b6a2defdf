// Package render evaluates a tree in place of its references: scalar
// substitutions pointing at other locations, template strings expanded by
// the expression engine, and nested keys merged into deeper locations.
// Reference resolution searches enclosing scopes innermost first, then
// falls back to the document root.
package render

import (
	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/keypath"
)

// Render evaluates doc and returns the transformed tree. The input is
// cloned first; the caller's tree is never mutated. All evaluation state
// (cache, in-progress set) is scoped to this one call.
func Render(doc *ir.Node, opts ...Option) (*ir.Node, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	e := newEvaluator(cfg, doc.Clone())
	return e.s.cachedOrEvaluate(keypath.Root(), e.s.root, e.evaluate)
}
