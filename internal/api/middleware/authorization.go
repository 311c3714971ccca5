package middleware

import (
	"net/http"
	"strings"
	"time"

	internaljwt "portfolio-backend/internal/jwt"
)

func ValidateJWTMiddleware(role internaljwt.Role) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")

			if !strings.HasPrefix(tokenString, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")

			claims, err := internaljwt.ParseToken(tokenString, role)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			expires, ok := claims["exp"].(float64)
			if !ok || time.Now().Unix() > int64(expires) {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}

var ValidateAdminJWT = ValidateJWTMiddleware(internaljwt.RoleAdmin)
