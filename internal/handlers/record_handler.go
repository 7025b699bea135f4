package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restdb/internal/apperrors"
	"restdb/internal/responses"
	"restdb/internal/services"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
	maxLimit     = 100
)

type RecordHandler struct {
	recordService *services.RecordService
}

func NewRecordHandler(recordService *services.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// ListRecords handles GET /api/:table_name with skip/limit pagination.
// Out-of-range values are rejected, not clamped, before any query runs.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	tableName := c.Param("table_name")

	skip, limit, err := parsePagination(c)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid pagination parameters")
		return
	}

	items, err := h.recordService.List(c.Request.Context(), tableName, skip, limit)
	if err != nil {
		respondError(c, err, "Failed to read records")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"table": tableName,
		"items": items,
		"skip":  skip,
		"limit": limit,
	}, fmt.Sprintf("Retrieved %d records from '%s'", len(items), tableName))
}

// GetRecord handles GET /api/:table_name/:record_id.
func (h *RecordHandler) GetRecord(c *gin.Context) {
	tableName := c.Param("table_name")
	recordID := c.Param("record_id")

	record, err := h.recordService.Get(c.Request.Context(), tableName, recordID)
	if err != nil {
		respondError(c, err, "Failed to read record")
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("Retrieved record from '%s'", tableName))
}

// CreateRecord handles POST /api/:table_name with a flat field map body.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	tableName := c.Param("table_name")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	record, err := h.recordService.Create(c.Request.Context(), tableName, fields)
	if err != nil {
		respondError(c, err, "Failed to create record")
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("Record created in '%s'", tableName))
}

// UpdateRecord handles PUT /api/:table_name/:record_id with a partial
// field map body.
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	tableName := c.Param("table_name")
	recordID := c.Param("record_id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	record, err := h.recordService.Update(c.Request.Context(), tableName, recordID, fields)
	if err != nil {
		respondError(c, err, "Failed to update record")
		return
	}

	responses.Success(c, http.StatusOK, record, fmt.Sprintf("Record updated in '%s'", tableName))
}

// DeleteRecord handles DELETE /api/:table_name/:record_id.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	tableName := c.Param("table_name")
	recordID := c.Param("record_id")

	if err := h.recordService.Delete(c.Request.Context(), tableName, recordID); err != nil {
		respondError(c, err, "Failed to delete record")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"deleted_id": recordID,
	}, fmt.Sprintf("Record deleted from '%s'", tableName))
}

func parsePagination(c *gin.Context) (skip, limit int, err error) {
	skip, err = strconv.Atoi(c.DefaultQuery("skip", strconv.Itoa(defaultSkip)))
	if err != nil {
		return 0, 0, fmt.Errorf("skip must be an integer")
	}
	if skip < 0 {
		return 0, 0, fmt.Errorf("skip must be >= 0")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		return 0, 0, fmt.Errorf("limit must be an integer")
	}
	if limit < 1 || limit > maxLimit {
		return 0, 0, fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}

	return skip, limit, nil
}

// respondError maps a classified error to its HTTP status; anything not
// classified is a 500 with the raw error text.
func respondError(c *gin.Context, err error, fallbackMessage string) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		responses.Fail(c, appErr.Status(), appErr.Unwrap(), appErr.Message)
		return
	}
	responses.Fail(c, http.StatusInternalServerError, err, fallbackMessage)
}
