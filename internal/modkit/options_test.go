package modkit

import (
	"net/http"
	"testing"

	phttp "textclf/internal/platform/net/http"
)

func TestWithName(t *testing.T) {
	t.Parallel()
	var c buildCfg
	WithName("predict")(&c)
	if c.name != "predict" {
		t.Fatalf("expected name=predict got=%q", c.name)
	}
}

func TestWithPrefix(t *testing.T) {
	t.Parallel()
	var c buildCfg
	WithPrefix("/predict")(&c)
	if c.prefix != "/predict" {
		t.Fatalf("expected prefix=/predict got=%q", c.prefix)
	}
}

func TestWithMiddlewares_AccumulatesAndOrder(t *testing.T) {
	t.Parallel()

	log := []string{}
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log = append(log, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	var c buildCfg
	WithMiddlewares(mw("a"), mw("b"))(&c)
	WithMiddlewares(mw("c"))(&c)

	if len(c.mw) != 3 {
		t.Fatalf("expected 3 middlewares got=%d", len(c.mw))
	}

	// the first added should run first
	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(c.mw) - 1; i >= 0; i-- {
		h = c.mw[i](h)
	}
	h.ServeHTTP(nil, nil)

	want := []string{"a", "b", "c"}
	if len(log) != len(want) {
		t.Fatalf("unexpected call count got=%d want=%d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("middleware order mismatch at %d: got=%q want=%q", i, log[i], want[i])
		}
	}
}

func TestWithPorts_GenericStoresConcreteType(t *testing.T) {
	t.Parallel()

	type Ports struct {
		Kind string
		Dim  int
	}

	var c buildCfg
	WithPorts(Ports{Kind: "tfidf", Dim: 7})(&c)

	ps, ok := c.ports.(Ports)
	if !ok {
		t.Fatalf("expected ports of type Ports got %T", c.ports)
	}
	if ps.Kind != "tfidf" || ps.Dim != 7 {
		t.Fatalf("unexpected ports value: %+v", ps)
	}
}

func TestWithRegister_SetsHook(t *testing.T) {
	t.Parallel()

	called := false
	var c buildCfg
	WithRegister(func(phttp.Router) { called = true })(&c)
	if c.register == nil {
		t.Fatal("expected register hook to be set")
	}
	c.register(nil)
	if !called {
		t.Fatal("register hook not invoked")
	}
}
