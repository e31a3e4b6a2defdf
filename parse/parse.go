// Package parse decodes YAML (and therefore JSON) documents into ir
// trees, preserving mapping key order.
package parse

import (
	"errors"
	"fmt"

	"github.com/sprout-format/sprout/ir"

	"github.com/goccy/go-yaml"
)

var ErrParse = errors.New("parse error")

// Parse decodes one document.
func Parse(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromDecoded(v)
}

// fromDecoded converts the goccy decode shape to ir, keeping the key
// order carried by yaml.MapSlice.
func fromDecoded(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		node := &ir.Node{Type: ir.MappingType}
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			child, err := fromDecoded(item.Value)
			if err != nil {
				return nil, err
			}
			node.Set(key, child)
		}
		return node, nil
	case map[string]any:
		tmp := make(map[string]*ir.Node, len(x))
		for k, vv := range x {
			child, err := fromDecoded(vv)
			if err != nil {
				return nil, err
			}
			tmp[k] = child
		}
		return ir.FromMap(tmp), nil
	case []any:
		vs := make([]*ir.Node, len(x))
		for i, vv := range x {
			child, err := fromDecoded(vv)
			if err != nil {
				return nil, err
			}
			vs[i] = child
		}
		return ir.FromSlice(vs), nil
	default:
		node, err := ir.FromAny(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return node, nil
	}
}
