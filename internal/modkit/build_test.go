package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"textclf/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" || b.Prefix != "" {
		t.Fatalf("default Name/Prefix = %q/%q, want empty", b.Name, b.Prefix)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if len(b.Mw) != 0 {
		t.Fatalf("default Mw length = %d, want 0", len(b.Mw))
	}

	// Register default is a no-op
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(nil)
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	regCalled := 0
	type ports struct {
		Kind string
	}
	p := ports{Kind: "random_forest"}

	b := Build(
		WithName("predict"),
		WithPrefix("/predict"),
		WithMiddlewares(mid...),
		WithPorts(p),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	if b.Name != "predict" || b.Prefix != "/predict" {
		t.Fatalf("Name/Prefix = %q/%q", b.Name, b.Prefix)
	}
	if got, ok := b.Ports.(ports); !ok || got != p {
		t.Fatalf("Ports mismatch after Build")
	}
	if len(b.Mw) != 2 || fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Mw contents not preserved")
	}

	// mutating the source slice after Build must not leak into Built.Mw
	mid[0] = func(next http.Handler) http.Handler { return next }
	if fnPtr(b.Mw[0]) != fnPtr(mwA) {
		t.Fatalf("Built.Mw changed after source slice mutation")
	}

	b.Register(nil)
	if regCalled != 1 {
		t.Fatalf("Register invoked %d times, want 1", regCalled)
	}
}
