package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/metrics"
)

type ctxKey int

const (
	ctxActorKey ctxKey = iota
	ctxCorrelationKey
	ctxTenantKey
)

// Request headers recognized by the middleware chain.
const (
	HeaderActor       = "X-Actor-ID"
	HeaderTenant      = "X-Tenant-ID"
	HeaderCorrelation = "X-Correlation-ID"
)

// actorFrom assembles the per-request actor context.
func actorFrom(r *http.Request) usecase.Context {
	ctx := r.Context()
	actor := usecase.Context{}
	if v, ok := ctx.Value(ctxActorKey).(string); ok {
		actor.ActorID = v
	}
	if v, ok := ctx.Value(ctxCorrelationKey).(string); ok {
		actor.CorrelationID = v
	}
	if v, ok := ctx.Value(ctxTenantKey).(string); ok {
		actor.TenantID = v
	}
	return actor
}

// correlationMiddleware assigns every request a correlation id, preserving
// one supplied by the caller, and echoes it on the response.
func correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderCorrelation))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelation, id)
		ctx := context.WithValue(r.Context(), ctxCorrelationKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorMiddleware resolves the caller identity. A bearer token takes
// precedence over the plain actor header; an unparseable token is rejected
// here rather than surfacing as a missing actor downstream.
func (h *handler) actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		actorID := strings.TrimSpace(r.Header.Get(HeaderActor))
		tenantID := strings.TrimSpace(r.Header.Get(HeaderTenant))

		if raw := r.Header.Get("Authorization"); strings.HasPrefix(raw, "Bearer ") {
			claims, err := h.app.Auth.ParseToken(strings.TrimPrefix(raw, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}
			actorID = claims.UserID
			if claims.TenantID != "" {
				tenantID = claims.TenantID
			}
		}

		if actorID != "" {
			ctx = context.WithValue(ctx, ctxActorKey, actorID)
		}
		if tenantID != "" {
			ctx = context.WithValue(ctx, ctxTenantKey, tenantID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// throttleMiddleware enforces a per-client request rate at the edge. This is
// independent of the per-actor create quota inside the use-case layer.
func throttleMiddleware(requestsPerSec float64) func(http.Handler) http.Handler {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if len(limiters) > 10000 {
			limiters = make(map[string]*rate.Limiter)
		}
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(requestsPerSec), int(requestsPerSec)+1)
			limiters[key] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !limiterFor(host).Allow() {
				writeErrorStatus(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func instrumentMiddleware(next http.Handler) http.Handler {
	return metrics.InstrumentHandler(next)
}
