package ir

import (
	"maps"
	"slices"
)

// Node is a tagged union over the tree kinds. Mappings keep their keys in
// insertion order through the parallel Keys/Values slices; sequences use
// Values alone. NullType is the undefined scalar.
type Node struct {
	Type Type

	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap builds a mapping node with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: MappingType}
	res.Keys = slices.Sorted(maps.Keys(m))
	res.Values = make([]*Node, len(res.Keys))
	for i, key := range res.Keys {
		res.Values[i] = m[key]
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   SequenceType,
		Values: vs,
	}
}

// Get returns the value under key, or nil if the key is absent or the
// node is not a mapping.
func (node *Node) Get(key string) *Node {
	if node.Type != MappingType {
		return nil
	}
	for i, k := range node.Keys {
		if k == key {
			return node.Values[i]
		}
	}
	return nil
}

// Set replaces the value under key, appending the key if absent.
func (node *Node) Set(key string, v *Node) {
	for i, k := range node.Keys {
		if k == key {
			node.Values[i] = v
			return
		}
	}
	node.Keys = append(node.Keys, key)
	node.Values = append(node.Values, v)
}

// Delete removes key from a mapping, reporting whether it was present.
func (node *Node) Delete(key string) bool {
	for i, k := range node.Keys {
		if k == key {
			node.Keys = slices.Delete(node.Keys, i, i+1)
			node.Values = slices.Delete(node.Values, i, i+1)
			return true
		}
	}
	return false
}

// Index returns the i'th sequence element.
func (node *Node) Index(i int) (*Node, bool) {
	if node.Type != SequenceType || i < 0 || i >= len(node.Values) {
		return nil, false
	}
	return node.Values[i], true
}

func (node *Node) Clone() *Node {
	res := &Node{
		Type:   node.Type,
		String: node.String,
		Bool:   node.Bool,
	}
	if node.Int64 != nil {
		i := *node.Int64
		res.Int64 = &i
	}
	if node.Float64 != nil {
		f := *node.Float64
		res.Float64 = &f
	}
	if node.Keys != nil {
		res.Keys = slices.Clone(node.Keys)
	}
	if node.Values != nil {
		res.Values = make([]*Node, len(node.Values))
		for i, v := range node.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}
