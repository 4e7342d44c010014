package http

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/w-h-a/manualqa/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpServer struct {
	options server.Options
	server  *nethttp.Server
}

func (s *httpServer) Run() error {
	slog.InfoContext(s.options.Context, "http server listening", "address", s.options.Address)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func NewServer(router *mux.Router, opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	var handler nethttp.Handler = router

	if ms, ok := middlewareFrom(options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	handler = otelhttp.NewHandler(handler, "manualqa")

	return &httpServer{
		options: options,
		server: &nethttp.Server{
			Addr:              options.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}
