package routes

import (
	"github.com/gin-gonic/gin"

	"restdb/internal/handlers"
)

type MetaRoutes struct {
	handler *handlers.MetaHandler
}

func NewMetaRoutes(handler *handlers.MetaHandler) *MetaRoutes {
	return &MetaRoutes{handler: handler}
}

func (r *MetaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tables", r.handler.ListTables)
	router.POST("/tables/refresh", r.handler.RefreshTables)
	router.GET("/tables/:table_name/schema", r.handler.GetTableSchema)
	router.GET("/schema/diagram", r.handler.GetDiagram)
}
