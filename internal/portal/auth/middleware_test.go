package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLookup implements AdminLookup for guard tests.
type mockLookup struct {
	getAdmin func(context.Context, string) (*models.Admin, error)
}

func (m *mockLookup) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	return m.getAdmin(ctx, id)
}

func guardRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	admin := &models.Admin{ID: "507f1f77bcf86cd799439011", Username: "admin"}
	lookup := &mockLookup{
		getAdmin: func(_ context.Context, id string) (*models.Admin, error) {
			if id == admin.ID {
				return admin, nil
			}
			return nil, e.ErrNotFound
		},
	}
	guard := NewGuard(testSecret, lookup)

	r := gin.New()
	r.GET("/header-only", guard.RequireAdmin(), func(c *gin.Context) {
		current, err := CurrentAdmin(c)
		require.NoError(t, err, "guard should have stored the admin")
		c.JSON(http.StatusOK, gin.H{"username": current.Username})
	})
	r.GET("/query-ok", guard.RequireAdminWithQueryToken(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := GenerateToken(admin.ID, admin.Username, testSecret)
	require.NoError(t, err)
	return r, token
}

func TestRequireAdminBearerHeader(t *testing.T) {
	r, token := guardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/header-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestRequireAdminNoToken(t *testing.T) {
	r, _ := guardRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/header-only", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token provided, access denied")
}

func TestRequireAdminBadToken(t *testing.T) {
	r, _ := guardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/header-only", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token is not valid")
}

// TestRequireAdminDeletedAdmin exercises the live-identity check: a valid
// token whose admin no longer exists must be rejected.
func TestRequireAdminDeletedAdmin(t *testing.T) {
	r, _ := guardRouter(t)

	token, err := GenerateToken("507f1f77bcf86cd799439099", "ghost", testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/header-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestQueryTokenOnlyWhereAllowed verifies ?token= works on the view route and
// nowhere else.
func TestQueryTokenOnlyWhereAllowed(t *testing.T) {
	r, token := guardRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/query-ok?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code, "query token should pass on the query-enabled route")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/header-only?token="+token, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "query token must not pass on header-only routes")
}

// TestExpiredTokenRejectedOnBothCarriers: expiry applies no matter how the
// token arrives.
func TestExpiredTokenRejectedOnBothCarriers(t *testing.T) {
	r, _ := guardRouter(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "507f1f77bcf86cd799439011",
		"username": "admin",
		"exp":      time.Now().Add(-time.Minute).Unix(),
		"iat":      time.Now().Add(-25 * time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/header-only", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/query-ok?token="+expired, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token is not valid")
}

// TestHeaderWinsOverQuery: when both carriers are present the header is used.
func TestHeaderWinsOverQuery(t *testing.T) {
	r, token := guardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/query-ok?token="+token, nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	r, token := guardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/header-only", nil)
	req.Header.Set("Authorization", token) // missing Bearer prefix
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
