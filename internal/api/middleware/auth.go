package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyago/travel-agency-backend/internal/application/services"
	"github.com/voyago/travel-agency-backend/internal/domain/entities"
)

type contextKey string

const principalContextKey contextKey = "principal"

// PrincipalFromContext returns the authenticated principal, or nil when the
// request carried no valid token.
func PrincipalFromContext(ctx context.Context) *services.Principal {
	principal, _ := ctx.Value(principalContextKey).(*services.Principal)
	return principal
}

// ContextWithPrincipal returns a context carrying the principal
func ContextWithPrincipal(ctx context.Context, principal *services.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// Claims are the JWT claims this service issues and accepts. The subject is
// the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthMiddleware parses the Bearer token and stores the principal in the
// request context. Token verification failures yield 401; requests without an
// Authorization header pass through unauthenticated, so the services' own
// checks decide.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, "invalid authorization header")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}
			if claims.Subject == "" {
				unauthorized(w, "token missing subject")
				return
			}

			principal := &services.Principal{
				UserID: claims.Subject,
				Role:   entities.UserRole(claims.Role),
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
