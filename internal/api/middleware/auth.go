// Package middleware HTTP middleware сервиса: сессия, права, метрики, лимиты
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

const bearerPrefix = "Bearer "

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// GetSession достает сессию из контекста запроса
func GetSession(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(domain.Session)
	return s, ok
}

// Auth проверяет токен из заголовка Authorization и кладет сессию в контекст
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
				return
			}

			session, err := parser.Parse(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin пропускает только администраторов; ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSession(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, handlers.MsgLoginRequired)
			return
		}
		if !session.IsAdmin() {
			handlers.RespondForbidden(w, handlers.MsgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
