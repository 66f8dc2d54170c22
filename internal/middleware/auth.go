package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/fatukunda/partytime/internal/auth"
	"github.com/fatukunda/partytime/pkg/errors"
	"github.com/fatukunda/partytime/pkg/response"
)

const (
	CtxUserKey   = "authUser"
	CtxUserIDKey = "userID"
	// CtxTokenKey holds the raw presented token; logout-one-device must
	// revoke exactly this token, not the whole set.
	CtxTokenKey = "authToken"
)

// Auth enforces bearer-token authentication using the supplied token service.
// The token must verify and still be present in its user's token set.
func Auth(tokens *iauth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthenticated)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		user, err := tokens.Resolve(c.Request.Context(), token)
		if err != nil {
			// Normalise all resolution failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthenticated)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxUserKey, user)
		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxTokenKey, token)

		c.Next()
	}
}
