package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"textclf/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins lists allowed origins, empty allows none
	CORSOrigins []string
	// RequestTimeout cancels the request context, 0 uses 30s
	RequestTimeout time.Duration
	// SlowRequest marks access log lines at warn, 0 disables
	SlowRequest time.Duration
}

// CommonStack returns the baseline middleware slice for the API scope
// slash redirects are left out so /predict and /predict/ both reach the handler
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/healthz"),
		middleware.Timeout(timeout),
	}
}
