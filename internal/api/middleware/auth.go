package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
)

const (
	HeaderUserID     = "X-User-ID"
	HeaderAdminToken = "X-Admin-Token"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgAdminOnly     = "доступ только для администратора"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isAdminKey contextKey = "isAdmin"
)

// Auth достает ID пользователя из заголовка X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// AdminGuard проверяет токен администратора из заголовка X-Admin-Token
type AdminGuard struct {
	token []byte
}

func NewAdminGuard(token string) *AdminGuard {
	return &AdminGuard{token: []byte(token)}
}

// Require пропускает только запросы с верным токеном
func (g *AdminGuard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.valid(r) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		ctx := context.WithValue(r.Context(), isAdminKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Detect отмечает запрос как административный, если токен верен; остальные пропускает как есть
func (g *AdminGuard) Detect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.valid(r) {
			r = r.WithContext(context.WithValue(r.Context(), isAdminKey, true))
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin true, если запрос прошел проверку AdminGuard
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(isAdminKey).(bool)
	return ok
}

func (g *AdminGuard) valid(r *http.Request) bool {
	got := r.Header.Get(HeaderAdminToken)
	if len(g.token) == 0 || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), g.token) == 1
}
