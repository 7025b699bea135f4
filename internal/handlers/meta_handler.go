package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"restdb/internal/responses"
	"restdb/internal/services"
)

type MetaHandler struct {
	catalog    *services.CatalogService
	diagram    *services.DiagramService
	apiTitle   string
	apiVersion string
}

func NewMetaHandler(catalog *services.CatalogService, diagram *services.DiagramService, apiTitle, apiVersion string) *MetaHandler {
	return &MetaHandler{
		catalog:    catalog,
		diagram:    diagram,
		apiTitle:   apiTitle,
		apiVersion: apiVersion,
	}
}

// Root handles GET / (health and status).
func (h *MetaHandler) Root(c *gin.Context) {
	responses.Success(c, http.StatusOK, gin.H{
		"version": h.apiVersion,
		"tables":  h.catalog.Tables(),
	}, fmt.Sprintf("%s is running", h.apiTitle))
}

// ListTables handles GET /api/tables.
func (h *MetaHandler) ListTables(c *gin.Context) {
	tables := h.catalog.Tables()
	responses.Success(c, http.StatusOK, gin.H{
		"tables": tables,
	}, fmt.Sprintf("Found %d tables", len(tables)))
}

// RefreshTables handles POST /api/tables/refresh and re-discovers the
// table list.
func (h *MetaHandler) RefreshTables(c *gin.Context) {
	tables, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to refresh table list")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"tables": tables,
	}, fmt.Sprintf("Found %d tables", len(tables)))
}

// GetTableSchema handles GET /api/tables/:table_name/schema.
func (h *MetaHandler) GetTableSchema(c *gin.Context) {
	tableName := c.Param("table_name")

	model, err := h.catalog.Resolve(c.Request.Context(), tableName)
	if err != nil {
		respondError(c, err, "Failed to introspect table")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"table_name":   model.Name,
		"columns":      model.Columns,
		"primary_keys": model.PrimaryKeys,
		"foreign_keys": model.ForeignKeys,
	}, fmt.Sprintf("Schema for table '%s'", tableName))
}

// GetDiagram handles GET /api/schema/diagram.
func (h *MetaHandler) GetDiagram(c *gin.Context) {
	mermaid, err := h.diagram.Render(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to render schema diagram")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"mermaid": mermaid,
		"schema":  h.catalog.Schema(),
	}, "Schema diagram generated successfully")
}
