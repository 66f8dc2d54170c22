package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/handlers"
)

func registerPartyRoutes(r *gin.Engine, db *gorm.DB, requireAuth gin.HandlerFunc) error {
	handler, err := handlers.NewPartyHandler(db)
	if err != nil {
		return err
	}

	// Photo bytes are fetched without authentication, like avatars.
	r.GET("/parties/:id/images/:imageId", handler.GetPhoto)

	parties := r.Group("/me/hosted_parties")
	parties.Use(requireAuth)
	{
		parties.POST("", handler.Create)
		parties.GET("", handler.List)
		parties.GET("/:id", handler.Get)
		parties.PATCH("/:id", handler.Update)
		parties.DELETE("/:id", handler.Delete)
		parties.POST("/:id/images", handler.UploadPhotos)
		parties.DELETE("/:id/images/:imageId", handler.DeletePhoto)
	}

	return nil
}
