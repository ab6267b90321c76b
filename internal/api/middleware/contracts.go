package middleware

import (
	"time"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TokenParser восстанавливает сессию из токена
type TokenParser interface {
	Parse(token string) (domain.Session, error)
}

// HTTPMetrics сбор метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
