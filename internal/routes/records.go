package routes

import (
	"github.com/gin-gonic/gin"

	"restdb/internal/handlers"
)

// RecordRoutes registers the dynamic CRUD surface. The :table_name
// segment matches any discovered table; static siblings (/tables,
// /schema) take priority in gin's tree.
type RecordRoutes struct {
	handler *handlers.RecordHandler
}

func NewRecordRoutes(handler *handlers.RecordHandler) *RecordRoutes {
	return &RecordRoutes{handler: handler}
}

func (r *RecordRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/:table_name", r.handler.ListRecords)
	router.POST("/:table_name", r.handler.CreateRecord)
	router.GET("/:table_name/:record_id", r.handler.GetRecord)
	router.PUT("/:table_name/:record_id", r.handler.UpdateRecord)
	router.DELETE("/:table_name/:record_id", r.handler.DeleteRecord)
}
