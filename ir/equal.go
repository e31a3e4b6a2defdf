package ir

// Equal reports structural equality of two trees. Mapping key order is
// not significant.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		if a.Int64 != nil && b.Int64 != nil {
			return *a.Int64 == *b.Int64
		}
		if a.Float64 != nil && b.Float64 != nil {
			return *a.Float64 == *b.Float64
		}
		return numFloat(a) == numFloat(b)
	case SequenceType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case MappingType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for _, k := range a.Keys {
			bv := b.Get(k)
			if bv == nil {
				return false
			}
			if !Equal(a.Get(k), bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numFloat(node *Node) float64 {
	if node.Int64 != nil {
		return float64(*node.Int64)
	}
	if node.Float64 != nil {
		return *node.Float64
	}
	return 0
}
