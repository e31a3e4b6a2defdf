package ir

import "fmt"

// FromAny converts a plain Go value (the shape produced by YAML or JSON
// decoding into any) to a Node.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case map[string]any:
		tmp := make(map[string]*Node, len(x))
		for k, vv := range x {
			child, err := FromAny(vv)
			if err != nil {
				return nil, err
			}
			tmp[k] = child
		}
		return FromMap(tmp), nil
	case []any:
		vs := make([]*Node, len(x))
		for i, vv := range x {
			child, err := FromAny(vv)
			if err != nil {
				return nil, err
			}
			vs[i] = child
		}
		return FromSlice(vs), nil
	default:
		return nil, fmt.Errorf("%w: cannot represent %T", ErrInvalidNodeKind, v)
	}
}

// ToAny converts a Node to the plain Go value shape used by YAML and JSON
// encoding and by the template engine environment.
func ToAny(node *Node) any {
	switch node.Type {
	case MappingType:
		res := make(map[string]any, len(node.Keys))
		for i, k := range node.Keys {
			res[k] = ToAny(node.Values[i])
		}
		return res
	case SequenceType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToAny(v)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return int64(0)
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}
