package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
)

// adminKey is the Gin context key under which the authenticated admin is
// stored for downstream handlers.
const adminKey = "admin"

// AdminLookup resolves a token's admin id to a live identity, so a token
// minted for a since-deleted admin stops working.
type AdminLookup interface {
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
}

// Guard builds the authentication middleware for the admin surface.
type Guard struct {
	secret string
	admins AdminLookup
}

// NewGuard returns a Guard validating tokens against secret and admins.
func NewGuard(secret string, admins AdminLookup) *Guard {
	return &Guard{secret: secret, admins: admins}
}

// RequireAdmin authenticates via the Authorization bearer header only.
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return g.require(false)
}

// RequireAdminWithQueryToken additionally accepts the token as a ?token=
// query parameter. Embedded viewers cannot attach custom headers, so the
// inline resume view route is the one place this is mounted.
func (g *Guard) RequireAdminWithQueryToken() gin.HandlerFunc {
	return g.require(true)
}

func (g *Guard) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c, allowQuery)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token provided, access denied"})
			return
		}

		claims, err := ValidateToken(tokenString, g.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token is not valid"})
			return
		}

		id, err := AdminID(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token is not valid"})
			return
		}

		admin, err := g.admins.GetAdmin(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token is not valid"})
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin set by the guard for this request.
func CurrentAdmin(c *gin.Context) (*models.Admin, error) {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil, fmt.Errorf("no authenticated admin in context")
	}
	admin, ok := v.(*models.Admin)
	if !ok {
		return nil, fmt.Errorf("unexpected admin context value")
	}
	return admin, nil
}

func extractToken(c *gin.Context, allowQuery bool) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			return "", fmt.Errorf("invalid authorization format")
		}
		return tokenString, nil
	}
	if allowQuery {
		if tokenString := c.Query("token"); tokenString != "" {
			return tokenString, nil
		}
	}
	return "", fmt.Errorf("authorization required")
}
