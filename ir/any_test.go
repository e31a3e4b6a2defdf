package ir

import "testing"

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"name":  "svc",
		"count": int64(3),
		"ratio": 0.5,
		"on":    true,
		"none":  nil,
		"items": []any{"a", int64(1)},
	}
	node, err := FromAny(in)
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	out, ok := ToAny(node).(map[string]any)
	if !ok {
		t.Fatalf("ToAny did not return a map, got %T", ToAny(node))
	}
	if out["name"] != "svc" || out["count"] != int64(3) || out["ratio"] != 0.5 || out["on"] != true {
		t.Errorf("scalar values did not round trip: %#v", out)
	}
	if out["none"] != nil {
		t.Errorf("null did not round trip: %#v", out["none"])
	}
	items, ok := out["items"].([]any)
	if !ok || len(items) != 2 || items[0] != "a" || items[1] != int64(1) {
		t.Errorf("sequence did not round trip: %#v", out["items"])
	}
}

func TestFromAnyUnrepresentable(t *testing.T) {
	_, err := FromAny(struct{}{})
	if err == nil {
		t.Fatalf("expected error for struct input")
	}
}

func TestFromAnyIntWidths(t *testing.T) {
	for _, v := range []any{int(7), int64(7), uint64(7)} {
		node, err := FromAny(v)
		if err != nil {
			t.Fatalf("FromAny(%T): %v", v, err)
		}
		if node.Type != NumberType || node.Int64 == nil || *node.Int64 != 7 {
			t.Errorf("FromAny(%T) = %#v", v, node)
		}
	}
}
