package strings

import (
	"testing"

	kit "textclf/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	got := IfEmpty([]int{1, 2, 3}, []int{9})
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	var empty []string
	got2 := IfEmpty(empty, []string{"x"})
	if len(got2) != 1 || got2[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestOr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"a", "b"}, "a"},
		{[]string{"", "  ", "b"}, "b"},
		{[]string{"", " "}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		if got := Or(c.in...); got != c.want {
			t.Errorf("Or(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("model.json", "path"); got != "model.json" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = MustString("   ", "path") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"predict":    "/predict",
		"/predict":   "/predict",
		"/predict/":  "/predict",
		"  /meta/  ": "/meta",
		"/api/v1":    "/api/v1",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { _ = MustPrefix("/") })
	kit.MustPanic(t, func() { _ = MustPrefix("  ") })
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	if !IsBlank("") || !IsBlank(" \t\n") || IsBlank(" x ") {
		t.Fatalf("IsBlank mismatch")
	}
}
