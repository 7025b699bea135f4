package routes

import (
	"github.com/gin-gonic/gin"

	"restdb/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, metaHandler *handlers.MetaHandler, recordHandler *handlers.RecordHandler) {
	api := router.Group("/api")

	metaRoutes := NewMetaRoutes(metaHandler)
	metaRoutes.RegisterRoutes(api)

	recordRoutes := NewRecordRoutes(recordHandler)
	recordRoutes.RegisterRoutes(api)

	router.GET("/", metaHandler.Root)
}
