package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sprout-format/sprout/ir"
	"github.com/sprout-format/sprout/parse"
)

func TestEncodePreservesKeyOrder(t *testing.T) {
	node := &ir.Node{Type: ir.MappingType}
	node.Set("z", ir.FromInt(1))
	node.Set("a", ir.FromInt(2))
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "z:") > strings.Index(out, "a:") {
		t.Errorf("key order not preserved:\n%s", out)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	in := []byte("svc:\n  name: api\n  ports:\n  - 80\n  - 443\nenabled: true\n")
	node, err := parse.Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := parse.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if !ir.Equal(node, again) {
		t.Errorf("round trip changed the tree:\n%s", buf.String())
	}
}

func TestEncodeColors(t *testing.T) {
	node := &ir.Node{Type: ir.MappingType}
	node.Set("a", ir.FromString("x"))
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, Colors(true)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), escape) {
		t.Errorf("no ANSI escapes in colored output: %q", buf.String())
	}
}
