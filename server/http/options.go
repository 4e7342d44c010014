package http

import (
	"context"
	"net/http"

	"github.com/w-h-a/manualqa/server"
)

type middlewaresKey struct{}

// WithMiddleware wraps the handler chain outermost-first.
func WithMiddleware(ms ...func(h http.Handler) http.Handler) server.Option {
	return func(o *server.Options) {
		existing, _ := middlewareFrom(o.Context)
		o.Context = context.WithValue(o.Context, middlewaresKey{}, append(existing, ms...))
	}
}

func middlewareFrom(ctx context.Context) ([]func(h http.Handler) http.Handler, bool) {
	ms, ok := ctx.Value(middlewaresKey{}).([]func(h http.Handler) http.Handler)
	return ms, ok
}
