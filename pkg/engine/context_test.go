package engine

import (
	"reflect"
	"testing"
)

// TestContextOrdering verifies that insertion order is preserved and that
// overwriting a key keeps its original position.
func TestContextOrdering(t *testing.T) {
	ctx := NewContext().
		Set("write", func(string) {}).
		Set("a", 1).
		Set("b", 2)

	want := []string{"write", "a", "b"}
	if got := ctx.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	ctx.Set("a", 10)
	if got := ctx.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("overwriting a key changed the order: %v", got)
	}
	if v, _ := ctx.Get("a"); v != 10 {
		t.Errorf("overwritten value not visible, got %v", v)
	}
}

// TestContextMerge covers the shallow right-biased merge used for includes.
func TestContextMerge(t *testing.T) {
	parent := NewContext().
		Set("write", func(string) {}).
		Set("a", 1).
		Set("b", 2)
	override := NewContext().
		Set("b", 3).
		Set("c", 4)

	merged := parent.Merge(override)

	want := []string{"write", "a", "b", "c"}
	if got := merged.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("merged Names() = %v, want %v", got, want)
	}
	if v, _ := merged.Get("a"); v != 1 {
		t.Errorf("parent-only key lost, a = %v", v)
	}
	if v, _ := merged.Get("b"); v != 3 {
		t.Errorf("child value must win, b = %v", v)
	}
	if v, _ := merged.Get("c"); v != 4 {
		t.Errorf("novel child key missing, c = %v", v)
	}

	// The merge must not touch its inputs.
	if v, _ := parent.Get("b"); v != 2 {
		t.Errorf("merge mutated the parent, b = %v", v)
	}
	if parent.Len() != 3 || override.Len() != 2 {
		t.Errorf("merge changed input sizes: parent=%d override=%d", parent.Len(), override.Len())
	}
}

// TestContextClone verifies that clones are independent of the original.
func TestContextClone(t *testing.T) {
	orig := NewContext().Set("a", 1)
	clone := orig.Clone()
	clone.Set("a", 2).Set("b", 3)

	if v, _ := orig.Get("a"); v != 1 {
		t.Errorf("mutating the clone changed the original, a = %v", v)
	}
	if orig.Has("b") {
		t.Error("key added to the clone leaked into the original")
	}
	if clone.Len() != 2 || orig.Len() != 1 {
		t.Errorf("unexpected sizes: clone=%d orig=%d", clone.Len(), orig.Len())
	}
}

// TestResolveModulePath covers the injected require path rewrite.
func TestResolveModulePath(t *testing.T) {
	cases := []struct {
		dir  string
		name string
		want string
	}{
		{"/dir", "./mod", "/dir/mod"},
		{"/dir/sub", "../mod", "/dir/mod"},
		{"/dir", "mod", "mod"},
		{"/dir", "some/pkg", "some/pkg"},
		{"/dir", "/abs/mod", "/abs/mod"},
	}
	for _, tc := range cases {
		if got := resolveModulePath(tc.dir, tc.name); got != tc.want {
			t.Errorf("resolveModulePath(%q, %q) = %q, want %q", tc.dir, tc.name, got, tc.want)
		}
	}
}

// TestResolveIncludePath covers include target resolution.
func TestResolveIncludePath(t *testing.T) {
	cases := []struct {
		dir    string
		target string
		want   string
	}{
		{"/dir", "sub/x.seam", "/dir/sub/x.seam"},
		{"/dir", "x.seam", "/dir/x.seam"},
		{"/dir", "/abs/x.seam", "/abs/x.seam"},
		{"/dir", "../x.seam", "/x.seam"},
	}
	for _, tc := range cases {
		if got := resolveIncludePath(tc.dir, tc.target); got != tc.want {
			t.Errorf("resolveIncludePath(%q, %q) = %q, want %q", tc.dir, tc.target, got, tc.want)
		}
	}
}
