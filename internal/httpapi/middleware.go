package httpapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/pawhaven/adoption-api/internal/shared/errors"
)

// contextAdopterID is the gin context key under which the authenticated
// adopter's ID is stored.
const contextAdopterID = "adopterID"

// RequireAuth validates the Bearer token and stores the authenticated
// adopter ID on the context. Tokens are HS256-signed with the service key.
func RequireAuth(signingKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		claims := jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return signingKey, nil
		})
		if err != nil || !parsed.Valid {
			responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			c.Abort()
			return
		}
		adopterID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("malformed token subject"))
			c.Abort()
			return
		}
		c.Set(contextAdopterID, adopterID)
		c.Next()
	}
}

// AuthenticatedAdopterID returns the adopter ID stored by RequireAuth.
func AuthenticatedAdopterID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(contextAdopterID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
