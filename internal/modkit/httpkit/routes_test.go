package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountUnder_AppliesMiddleware_And_CallsMount(t *testing.T) {
	root := &fakeRouter{}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	MountUnder(root, "/predict", []func(http.Handler) http.Handler{mwA, mwB}, func(sub Router) {
		sub.Post("/", Call(func(*http.Request) (any, error) { return nil, nil }))
	})

	if len(root.prefixes) != 1 || root.prefixes[0] != "/predict" {
		t.Fatalf("expected Route to be called with /predict, got %v", root.prefixes)
	}
	if root.useCalls != 1 || root.lastMWLen != 2 {
		t.Fatalf("expected Use once with 2 middleware, got calls=%d len=%d", root.useCalls, root.lastMWLen)
	}
	if len(root.routes) != 1 || root.routes[0] != "POST /" {
		t.Fatalf("expected POST / under the subrouter, got %v", root.routes)
	}
}

func TestMountUnder_NoMiddleware_SkipsUse(t *testing.T) {
	root := &fakeRouter{}
	MountUnder(root, "/meta", nil, func(sub Router) {
		Get(sub, "/health", func(*http.Request) (any, error) { return "ok", nil })
	})
	if root.useCalls != 0 {
		t.Fatalf("expected Use to not be called when mw is empty, got %d", root.useCalls)
	}
	if len(root.routes) != 1 || root.routes[0] != "GET /health" {
		t.Fatalf("unexpected routes %v", root.routes)
	}
}

func TestMountUnder_ServesWithTrailingSlashVariants(t *testing.T) {
	r := chiRouter()
	MountUnder(r, "/predict", nil, func(sub Router) {
		sub.Post("/", Handle(func(*http.Request) Response { return Bare(map[string]string{"ok": "yes"}) }))
	})

	for _, path := range []string{"/predict", "/predict/"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("POST %s = %d, want 200", path, rec.Code)
		}
	}
}
