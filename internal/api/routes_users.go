package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/fatukunda/partytime/internal/auth"
	"github.com/fatukunda/partytime/internal/handlers"
)

func registerUserRoutes(r *gin.Engine, db *gorm.DB, tokens *iauth.TokenService, requireAuth gin.HandlerFunc) error {
	handler, err := handlers.NewUserHandler(db, tokens)
	if err != nil {
		return err
	}

	users := r.Group("/users")
	{
		users.POST("", handler.Register)
		users.POST("/login", handler.Login)
		users.GET("/:id/avatar", handler.GetAvatar)
	}

	me := r.Group("/users/me")
	me.Use(requireAuth)
	{
		me.GET("", handler.Me)
		me.PATCH("", handler.UpdateMe)
		me.DELETE("", handler.DeleteMe)
		me.POST("/logout", handler.Logout)
		me.POST("/logoutall", handler.LogoutAll)
		me.POST("/avatar", handler.SetAvatar)
		me.DELETE("/avatar", handler.DeleteAvatar)
	}

	return nil
}
