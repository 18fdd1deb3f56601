package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetBoarding-BookingService/internal/api/handlers"
)

// AdminKeyHeader заголовок с ключом администратора
const AdminKeyHeader = "X-Admin-Key"

const msgAdminRequired = "требуется ключ администратора"

type contextKey string

const adminKey contextKey = "is_admin"

// AdminAuth пропускает запрос только с верным ключом администратора
// Пустой настроенный ключ закрывает админские маршруты полностью
func AdminAuth(apiKey string, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validKey(apiKey, r.Header.Get(AdminKeyHeader)) {
				log.Warn("%s %s - Admin key rejected", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgAdminRequired)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
		})
	}
}

// DetectAdmin помечает запрос как админский, если ключ верный, но не отклоняет остальные
// Используется на маршрутах, доступных и клиенту по токену, и администратору
func DetectAdmin(apiKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validKey(apiKey, r.Header.Get(AdminKeyHeader)) {
				r = r.WithContext(WithAdmin(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithAdmin помечает контекст как админский
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// IsAdmin сообщает, прошёл ли запрос проверку ключа администратора
func IsAdmin(ctx context.Context) bool {
	v, ok := ctx.Value(adminKey).(bool)
	return ok && v
}

func validKey(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
