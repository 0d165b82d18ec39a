package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, sub string, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestRouter(t *testing.T, roles ...service.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", AuthRequired(testSecret, zap.NewNop()))
	if len(roles) > 0 {
		grp = grp.Group("/", RequireRole(roles...))
	}
	grp.GET("/whoami", func(c *gin.Context) {
		id, _ := service.ActorIDFromContext(c.Request.Context())
		role, _ := service.RoleFromContext(c.Request.Context())
		respondOK(c, http.StatusOK, "ok", gin.H{"id": id.String(), "role": string(role)})
	})
	return r
}

func doGet(r *gin.Engine, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := authTestRouter(t)
	actorID := uuid.New()

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "/whoami", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.False(t, resp.Success)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doGet(r, "/whoami", "Token abc")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signToken(t, "other-secret", actorID.String(), "CLIENT")
		w := doGet(r, "/whoami", "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": actorID.String(), "role": "CLIENT", "exp": time.Now().Add(-time.Hour).Unix()}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		w := doGet(r, "/whoami", "Bearer "+signed)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-uuid subject", func(t *testing.T) {
		token := signToken(t, testSecret, "not-a-uuid", "CLIENT")
		w := doGet(r, "/whoami", "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := signToken(t, testSecret, actorID.String(), "SUPERUSER")
		w := doGet(r, "/whoami", "Bearer "+token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token injects identity", func(t *testing.T) {
		token := signToken(t, testSecret, actorID.String(), "VENDOR")
		w := doGet(r, "/whoami", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		require.Equal(t, actorID.String(), data["id"])
		require.Equal(t, "VENDOR", data["role"])
	})
}

func TestRequireRole(t *testing.T) {
	r := authTestRouter(t, service.RoleAdmin)
	actorID := uuid.New()

	t.Run("role allowed", func(t *testing.T) {
		token := signToken(t, testSecret, actorID.String(), "ADMIN")
		w := doGet(r, "/whoami", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role denied", func(t *testing.T) {
		token := signToken(t, testSecret, actorID.String(), "CLIENT")
		w := doGet(r, "/whoami", "Bearer "+token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
