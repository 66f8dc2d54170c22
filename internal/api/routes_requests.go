package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fatukunda/partytime/internal/handlers"
)

func registerRequestRoutes(r *gin.Engine, db *gorm.DB, requireAuth gin.HandlerFunc) error {
	handler, err := handlers.NewRequestHandler(db)
	if err != nil {
		return err
	}

	r.POST("/parties/:id/requests", requireAuth, handler.Create)

	mine := r.Group("/me/requests")
	mine.Use(requireAuth)
	{
		mine.GET("", handler.ListMine)
		mine.GET("/:id", handler.GetMine)
	}

	received := r.Group("/me/parties/:id/requests_received")
	received.Use(requireAuth)
	{
		received.GET("", handler.ListReceived)
		received.GET("/:request_id", handler.GetReceived)
		received.PATCH("/:request_id", handler.Resolve)
	}

	return nil
}
