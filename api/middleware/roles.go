package middleware

import (
	"context"
	"net/http"

	"github.com/eight22lax/stringshop-backend/api/responses"
	pkgauth "github.com/eight22lax/stringshop-backend/pkg/auth"
	"github.com/eight22lax/stringshop-backend/pkg/config"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
)

const ctxClaims contextKey = "access_claims"

func withClaims(ctx context.Context, claims *pkgauth.AccessTokenClaims) context.Context {
	return context.WithValue(ctx, ctxClaims, claims)
}

func claimsFromContext(ctx context.Context) *pkgauth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxClaims).(*pkgauth.AccessTokenClaims); ok {
		return v
	}
	return nil
}

// RequireAdmin gates the admin surface. Admin access needs a verified email
// plus either the admin role claim or the allow-listed shop owner email.
func RequireAdmin(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFromContext(r.Context())
			if !claims.IsAdminFor(cfg.Email) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
