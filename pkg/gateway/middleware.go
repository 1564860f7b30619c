package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
)

// Callers sign method, path, and body of each request. The gateway recovers
// the signing address and hands it to the core as the caller identity.
const (
	headerCaller    = "X-Ledger-Caller"
	headerSignature = "X-Ledger-Signature"

	maxBodyBytes = 1 << 20
)

type contextKey string

const callerKey contextKey = "ledger-caller"

// CallerFromContext returns the authenticated caller identity, if any.
func CallerFromContext(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(callerKey).(identity.Identity)
	return id, ok
}

// signedPayload builds the byte string callers sign: the request method, the
// URL path, and the raw body, newline separated.
func signedPayload(method, path string, body []byte) []byte {
	buf := make([]byte, 0, len(method)+len(path)+len(body)+2)
	buf = append(buf, method...)
	buf = append(buf, '\n')
	buf = append(buf, path...)
	buf = append(buf, '\n')
	buf = append(buf, body...)
	return buf
}

// authMiddleware recovers the caller identity from the request signature.
// When auth is disabled the declared caller header is trusted as-is, which
// keeps local development and tests simple.
func (g *Gateway) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerHex := r.Header.Get(headerCaller)
		if callerHex == "" {
			g.writeError(w, errors.NewUnauthenticatedError("missing "+headerCaller+" header"))
			return
		}
		caller, err := identity.Parse(callerHex)
		if err != nil {
			g.writeError(w, errors.NewUnauthenticatedError("invalid caller address"))
			return
		}

		if !g.cfg.RequireAuth {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, caller)))
			return
		}

		sig := r.Header.Get(headerSignature)
		if sig == "" {
			g.writeError(w, errors.NewUnauthenticatedError("missing "+headerSignature+" header"))
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			g.writeError(w, errors.NewInvalidArgumentError("body", "failed to read request body", nil))
			return
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		recovered, err := identity.RecoverSigner(signedPayload(r.Method, r.URL.Path, body), sig)
		if err != nil {
			g.writeError(w, errors.NewUnauthenticatedError("signature verification failed"))
			return
		}
		if recovered != caller {
			g.logger.ComponentWarn(logging.ComponentGateway, "signature does not match declared caller",
				zap.String("declared", caller.Hex()), zap.String("recovered", recovered.Hex()))
			g.writeError(w, errors.NewUnauthenticatedError("signature does not match declared caller"))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, caller)))
	})
}

// rateLimitMiddleware budgets write operations per caller identity, falling
// back to the remote address for unauthenticated requests.
func (g *Gateway) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := r.RemoteAddr
		if caller, ok := CallerFromContext(r.Context()); ok {
			key = caller.Hex()
		}
		if !g.limiter.Allow(key) {
			g.writeError(w, errors.NewRateLimitError("rate limit exceeded", "60"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware applies permissive CORS headers; browser clients read the
// public ledger and connect to the event stream cross-origin.
func (g *Gateway) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+headerCaller+", "+headerSignature)
		w.Header().Set("Access-Control-Max-Age", "600")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusResponseWriter captures the response code for request logging.
type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs each request with method, path, status, and latency.
func (g *Gateway) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		g.logger.ComponentDebug(logging.ComponentGateway, "request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
