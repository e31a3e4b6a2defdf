package parse

import (
	"testing"

	"github.com/sprout-format/sprout/ir"
)

func TestParsePreservesKeyOrder(t *testing.T) {
	doc := []byte("z: 1\na: 2\nm: 3\n")
	node, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"z", "a", "m"}
	if len(node.Keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(node.Keys), len(want))
	}
	for i, k := range want {
		if node.Keys[i] != k {
			t.Errorf("key %d: got %q, want %q", i, node.Keys[i], k)
		}
	}
}

func TestParseTypes(t *testing.T) {
	doc := []byte(`
str: hello
num: 3
flt: 0.5
ok: true
nul: null
seq: [1, two]
map: {k: v}
`)
	node, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s := node.Get("str"); s.Type != ir.StringType || s.String != "hello" {
		t.Errorf("str = %#v", s)
	}
	if n := node.Get("num"); n.Type != ir.NumberType || n.Int64 == nil || *n.Int64 != 3 {
		t.Errorf("num = %#v", n)
	}
	if f := node.Get("flt"); f.Type != ir.NumberType || f.Float64 == nil || *f.Float64 != 0.5 {
		t.Errorf("flt = %#v", f)
	}
	if b := node.Get("ok"); b.Type != ir.BoolType || !b.Bool {
		t.Errorf("ok = %#v", b)
	}
	if n := node.Get("nul"); n.Type != ir.NullType {
		t.Errorf("nul = %#v", n)
	}
	seq := node.Get("seq")
	if seq.Type != ir.SequenceType || len(seq.Values) != 2 {
		t.Fatalf("seq = %#v", seq)
	}
	if seq.Values[1].String != "two" {
		t.Errorf("seq[1] = %#v", seq.Values[1])
	}
	if m := node.Get("map"); m.Type != ir.MappingType || m.Get("k").String != "v" {
		t.Errorf("map = %#v", m)
	}
}

func TestParseJSONInput(t *testing.T) {
	node, err := Parse([]byte(`{"a": [1, 2], "b": "x"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if node.Get("a").Type != ir.SequenceType {
		t.Errorf("a = %#v", node.Get("a"))
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte("a: [1, 2\nb: }")); err == nil {
		t.Fatalf("expected parse error")
	}
}
