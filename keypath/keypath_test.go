package keypath

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		sep  string
		want []string
		err  bool
	}{
		{expr: "a", sep: ".", want: []string{"a"}},
		{expr: "a.b.c", sep: ".", want: []string{"a", "b", "c"}},
		{expr: "a.0.b", sep: ".", want: []string{"a", "0", "b"}},
		{expr: "a/b", sep: "/", want: []string{"a", "b"}},
		{expr: "a/b", sep: ".", want: []string{"a/b"}},
		{expr: "", sep: ".", err: true},
		{expr: "a..b", sep: ".", err: true},
		{expr: ".a", sep: ".", err: true},
		{expr: "a.", sep: ".", err: true},
	}
	for _, tc := range tests {
		segs, err := Parse(tc.expr, tc.sep)
		if tc.err {
			if !errors.Is(err, ErrMalformedPath) {
				t.Errorf("Parse(%q, %q): got err %v, want ErrMalformedPath", tc.expr, tc.sep, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q, %q): %v", tc.expr, tc.sep, err)
			continue
		}
		if !slices.Equal(segs, tc.want) {
			t.Errorf("Parse(%q, %q) = %v, want %v", tc.expr, tc.sep, segs, tc.want)
		}
	}
}

func TestJoinDoesNotAliasBase(t *testing.T) {
	base := Root().Join("a")
	p1 := base.Join("b")
	p2 := base.Join("c")
	if p1[2] != "b" || p2[2] != "c" {
		t.Fatalf("joined paths alias each other: %v %v", p1, p2)
	}
}

func TestParent(t *testing.T) {
	p := Root().Join("a").Join("b")
	parent, err := p.Parent()
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if parent.String() != "$.a" {
		t.Errorf("parent = %q, want %q", parent.String(), "$.a")
	}
	if _, err := Root().Parent(); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("parent of root: got %v, want ErrMalformedPath", err)
	}
}

func TestKeyWithin(t *testing.T) {
	a := Root().Join("a")
	ab := a.Join("b")
	abc := ab.Join("c")
	// "a" joined with a dotted segment must not look like a descendant
	// of $.a.b even though the display strings nest.
	trick := Root().Join("a.b")

	if !KeyWithin(ab.Key(), a.Key()) {
		t.Errorf("%q not within %q", ab, a)
	}
	if !KeyWithin(abc.Key(), a.Key()) {
		t.Errorf("%q not within %q", abc, a)
	}
	if !KeyWithin(a.Key(), a.Key()) {
		t.Errorf("path not within itself")
	}
	if KeyWithin(a.Key(), ab.Key()) {
		t.Errorf("ancestor reported within descendant")
	}
	if KeyWithin(trick.Key(), a.Key()) {
		t.Errorf("segment containing separator treated as descendant")
	}
}

func TestIsAbsolute(t *testing.T) {
	if !IsAbsolute(".a.b", ".") {
		t.Errorf(".a.b not absolute with sep .")
	}
	if IsAbsolute("a.b", ".") {
		t.Errorf("a.b absolute with sep .")
	}
	if !IsAbsolute("/a/b", "/") {
		t.Errorf("/a/b not absolute with sep /")
	}
}
