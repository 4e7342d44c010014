package http

import (
	nethttp "net/http"

	"github.com/google/uuid"
)

// RequestId tags every request with an X-Request-Id header, generating one
// when the caller did not send it.
func RequestId() func(h nethttp.Handler) nethttp.Handler {
	return func(h nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			id := r.Header.Get("X-Request-Id")
			if len(id) == 0 {
				id = uuid.New().String()
				r.Header.Set("X-Request-Id", id)
			}

			w.Header().Set("X-Request-Id", id)

			h.ServeHTTP(w, r)
		})
	}
}
