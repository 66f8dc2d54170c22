package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fatukunda/partytime/internal/middleware"
	"github.com/fatukunda/partytime/internal/models"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated user id stored by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// presentedToken returns the raw bearer token the caller authenticated with.
func presentedToken(c *gin.Context) string {
	return c.GetString(middleware.CtxTokenKey)
}

// currentUser returns the authenticated user loaded by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(middleware.CtxUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
