// Package patch applies RFC 7386 merge patches and RFC 6902 operation
// lists to ir trees. It is used to fold overrides into a document before
// rendering.
package patch

import (
	"encoding/json"
	"fmt"

	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/parse"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Merge applies p to doc as an RFC 7386 merge patch and returns the
// merged tree. Neither input is mutated.
func Merge(doc, p *ir.Node) (*ir.Node, error) {
	docJSON, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	pJSON, err := marshal(p)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(docJSON, pJSON)
	if err != nil {
		return nil, fmt.Errorf("error applying merge patch: %w", err)
	}
	return parse.Parse(out)
}

// Apply applies ops, an RFC 6902 operation list, to doc.
func Apply(doc, ops *ir.Node) (*ir.Node, error) {
	opsJSON, err := marshal(ops)
	if err != nil {
		return nil, err
	}
	decoded, err := jsonpatch.DecodePatch(opsJSON)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	docJSON, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := decoded.Apply(docJSON)
	if err != nil {
		return nil, fmt.Errorf("error applying patch: %w", err)
	}
	return parse.Parse(out)
}

func marshal(node *ir.Node) ([]byte, error) {
	d, err := json.Marshal(ir.ToAny(node))
	if err != nil {
		return nil, fmt.Errorf("error marshaling tree: %w", err)
	}
	return d, nil
}
