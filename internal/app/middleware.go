package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestLogger stores a logger carrying the request id and, when tracing is active, the trace
// and span ids in the request context.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		spanCtx := trace.SpanContextFromContext(r.Context())
		if spanCtx.IsValid() {
			logger = logger.With("trace_id", spanCtx.TraceID().String(), "span_id", spanCtx.SpanID().String())
		}

		next.ServeHTTP(w, app.contextSetLogger(r, logger))
	})
}
