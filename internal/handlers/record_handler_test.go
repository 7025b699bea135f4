package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restdb/internal/handlers"
	"restdb/internal/repositories"
	"restdb/internal/responses"
	"restdb/internal/routes"
	"restdb/internal/services"
)

// newEmptyCatalogRouter builds the full route tree over a catalog that
// discovered no tables. Table-existence checks and pagination validation
// both short-circuit before any database access, so no pool is needed.
func newEmptyCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	schemaRepo := repositories.NewSchemaRepository(nil)
	recordRepo := repositories.NewRecordRepository(nil)
	catalog := services.NewCatalogService(schemaRepo, "public")
	recordService := services.NewRecordService(catalog, recordRepo)
	diagramService := services.NewDiagramService(schemaRepo, "public")

	metaHandler := handlers.NewMetaHandler(catalog, diagramService, "RestDB Microserver API", "1.0.0")
	recordHandler := handlers.NewRecordHandler(recordService)

	router := gin.New()
	routes.RegisterRoutes(router, metaHandler, recordHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, responses.APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope responses.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestUnknownTableReturns404OnEveryEndpoint(t *testing.T) {
	router := newEmptyCatalogRouter()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/tables/ghost/schema", ""},
		{http.MethodGet, "/api/ghost", ""},
		{http.MethodGet, "/api/ghost/1", ""},
		{http.MethodPost, "/api/ghost", `{"name":"x"}`},
		{http.MethodPut, "/api/ghost/1", `{"name":"x"}`},
		{http.MethodDelete, "/api/ghost/1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w, envelope := doRequest(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.False(t, envelope.Success)
			assert.Contains(t, envelope.Message, "'ghost' not found")
		})
	}
}

func TestPaginationBoundsRejectedBeforeQuerying(t *testing.T) {
	router := newEmptyCatalogRouter()

	tests := []struct {
		name  string
		query string
	}{
		{"limit zero", "limit=0"},
		{"limit above cap", "limit=101"},
		{"negative skip", "skip=-1"},
		{"non-numeric limit", "limit=ten"},
		{"non-numeric skip", "skip=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := doRequest(t, router, http.MethodGet, "/api/ghost?"+tt.query, "")

			// Rejected before the table lookup, so 400 wins over 404.
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, envelope.Success)
			assert.Equal(t, "Invalid pagination parameters", envelope.Message)
		})
	}
}

func TestRootReportsEmptyTableList(t *testing.T) {
	router := newEmptyCatalogRouter()

	w, envelope := doRequest(t, router, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1.0.0", data["version"])
	assert.Empty(t, data["tables"])
}

func TestListTablesEnvelopeShape(t *testing.T) {
	router := newEmptyCatalogRouter()

	w, envelope := doRequest(t, router, http.MethodGet, "/api/tables", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Found 0 tables", envelope.Message)
	assert.Empty(t, envelope.Error)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	router := newEmptyCatalogRouter()

	w, envelope := doRequest(t, router, http.MethodPost, "/api/ghost", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", envelope.Message)
}
