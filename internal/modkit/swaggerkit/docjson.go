package swaggerkit

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var openapi []byte

var docReader = func() []byte { return openapi }

// serveDocJSON serves the embedded OpenAPI document
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(docReader())
	}
}
