package http

import (
	"net/http"
	"strings"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type accessClaims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func extractBearerToken(authz string) (string, bool) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.TrimSpace(parts[1])
	if t == "" {
		return "", false
	}
	return t, true
}

// AuthRequired validates the bearer token issued by the auth collaborator
// and injects the actor identity and role into the request context. The core
// trusts this identity and never re-derives it.
func AuthRequired(accessSecret string, log *zap.Logger) gin.HandlerFunc {
	secret := []byte(accessSecret)
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			respondError(c, http.StatusUnauthorized, "authentification requise", "missing Authorization header")
			return
		}
		token, ok := extractBearerToken(authz)
		if !ok {
			respondError(c, http.StatusUnauthorized, "authentification requise", "invalid Authorization header")
			return
		}

		claims := &accessClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			if err != nil {
				log.Warn("token validation failed", zap.Error(err))
			}
			respondError(c, http.StatusUnauthorized, "authentification requise", "invalid token")
			return
		}

		actorID, err := uuid.Parse(claims.Sub)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "authentification requise", "invalid subject")
			return
		}
		role, ok := service.ParseRole(claims.Role)
		if !ok {
			respondError(c, http.StatusForbidden, "accès refusé", "unknown role")
			return
		}

		ctx := service.WithActorID(c.Request.Context(), actorID)
		ctx = service.WithRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. The service layer
// still re-checks; this only short-circuits the obvious mismatches.
func RequireRole(roles ...service.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := service.RoleFromContext(c.Request.Context())
		if !ok {
			respondError(c, http.StatusUnauthorized, "authentification requise", "missing role")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		respondError(c, http.StatusForbidden, "accès refusé", "role not allowed")
	}
}
