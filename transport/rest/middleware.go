package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
)

const bearerPrefix = "Bearer "

type userContextKey struct{}

type verifier interface {
	Verify(ctx context.Context, token string) (*entity.User, error)
}

// UserFromContext - the caller resolved by RequireUser.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*entity.User)
	return user, ok
}

// RequireUser - rejects requests without a verifiable bearer token.
func RequireUser(logger *slog.Logger, verifier verifier) func(next http.Handler) http.Handler {
	log := logger.With("method", "RequireUser")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				metrics.AuthFailures.Inc()
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := verifier.Verify(r.Context(), strings.TrimPrefix(header, bearerPrefix))
			if errors.Is(err, apperror.ErrUnauthorized) {
				log.Debug("token rejected", "error", err)
				metrics.AuthFailures.Inc()
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if err != nil {
				log.Error("failed to verify token", "error", err, "request_id", middleware.GetReqID(r.Context()))
				writeError(w, http.StatusInternalServerError, "Server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey{}, user)))
		})
	}
}

// RequestLogger - one log line per request.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"action", r.URL.Query().Get("action"),
					"status", ww.Status(),
					"latency", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Metrics - request counters and latency by route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
