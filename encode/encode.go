// Package encode emits ir trees as YAML, with optional ANSI color for
// terminal output.
package encode

import (
	"fmt"
	"io"

	"github.com/sprout-format/sprout/ir"

	"github.com/goccy/go-yaml"
)

type EncodeOption func(*encState)

type encState struct {
	colors bool
}

// Colors enables colorized output.
func Colors(v bool) EncodeOption {
	return func(es *encState) { es.colors = v }
}

// Encode writes node to w as a YAML document, preserving mapping key
// order.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	d, err := yaml.Marshal(toYAML(node))
	if err != nil {
		return fmt.Errorf("error encoding: %w", err)
	}
	if es.colors {
		d = colorize(d)
	}
	_, err = w.Write(d)
	return err
}

// toYAML converts ir to the goccy marshal shape. MapSlice keeps mapping
// key order in the output.
func toYAML(node *ir.Node) any {
	switch node.Type {
	case ir.MappingType:
		ms := make(yaml.MapSlice, len(node.Keys))
		for i, k := range node.Keys {
			ms[i] = yaml.MapItem{Key: k, Value: toYAML(node.Values[i])}
		}
		return ms
	case ir.SequenceType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	default:
		return ir.ToAny(node)
	}
}
