package middleware

import (
	"net/http"
	"strings"

	"purenest-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware parses a Bearer token and injects the authenticated user
// id and role into the request context. Requests without a valid token pass
// through unauthenticated; handlers decide whether auth is required.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))

			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				userID, _ := claims["user_id"].(string)
				role, _ := claims["role"].(string)
				if userID != "" {
					r = r.WithContext(utils.WithUser(r.Context(), userID, role))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
