// Package reqid provides request and transaction id propagation.
//
// Every request gets a request id: the client's X-Request-ID when present,
// otherwise a fresh UUID. Callers may also send a transaction id header
// (transaction_id, or X-Transaction-ID) which is echoed back untouched and
// attached to every log line so errors can be traced to the caller's flow.
//
//	r.Use(reqid.Middleware())
//
//	id := reqid.FromCtx(r.Context())
//	tx := reqid.TransactionFromCtx(r.Context())
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

type txKey struct{}

// Header is the HTTP header name used to propagate the request ID.
const Header = "X-Request-ID"

// TransactionHeaders are checked in order for a caller-supplied transaction id.
var TransactionHeaders = []string{"transaction_id", "transactionid", "X-Transaction-ID"}

// New generates a random request id.
func New() string {
	return uuid.NewString()
}

// WithValue stores id in ctx and returns the new context.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx extracts the request ID from ctx, or "" if none is present.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// WithTransaction stores a caller transaction id in ctx.
func WithTransaction(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, txKey{}, id)
}

// TransactionFromCtx returns the caller transaction id, or "".
func TransactionFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(txKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware injects the request id (and transaction id, when sent) into the
// request context and echoes both on the response.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}
			w.Header().Set(Header, id)
			ctx := WithValue(r.Context(), id)

			for _, h := range TransactionHeaders {
				if tx := r.Header.Get(h); tx != "" {
					w.Header().Set("X-Transaction-ID", tx)
					ctx = WithTransaction(ctx, tx)
					break
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
