package httpkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	phttp "textclf/internal/platform/net/http"
)

// fakeRouter records the calls modules make against the seam
type fakeRouter struct {
	prefixes  []string
	useCalls  int
	lastMWLen int
	routes    []string // "VERB path"
}

func (f *fakeRouter) Get(p string, _ phttp.Handler)       { f.routes = append(f.routes, "GET "+p) }
func (f *fakeRouter) Post(p string, _ phttp.Handler)      { f.routes = append(f.routes, "POST "+p) }
func (f *fakeRouter) Method(m, p string, _ phttp.Handler) { f.routes = append(f.routes, m+" "+p) }
func (f *fakeRouter) Handle(p string, _ http.Handler)     { f.routes = append(f.routes, "HANDLE "+p) }
func (f *fakeRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}
func (f *fakeRouter) Group(fn func(Router)) { fn(f) }
func (f *fakeRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}
func (f *fakeRouter) NotFound(phttp.Handler)         {}
func (f *fakeRouter) MethodNotAllowed(phttp.Handler) {}
func (f *fakeRouter) Mux() http.Handler              { return http.NewServeMux() }

var _ Router = (*fakeRouter)(nil)

// chiRouter returns a real router over a fresh chi mux
func chiRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }
