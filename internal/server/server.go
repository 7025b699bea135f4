package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restdb/internal/config"
	"restdb/internal/database"
	"restdb/internal/handlers"
	"restdb/internal/middlewares"
	"restdb/internal/repositories"
	"restdb/internal/routes"
	"restdb/internal/services"
)

// NewServer wires the whole stack: pool, catalog, services, handlers,
// router. An unreachable database does not abort startup; the catalog
// stays empty and every table route answers 404 until a refresh
// succeeds.
func NewServer() *http.Server {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	pool, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("invalid database configuration: %v", err)
	}

	schemaRepo := repositories.NewSchemaRepository(pool)
	recordRepo := repositories.NewRecordRepository(pool)

	catalog := services.NewCatalogService(schemaRepo, cfg.DB.Schema)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		catalog.Load(ctx)
	}

	recordService := services.NewRecordService(catalog, recordRepo)
	diagramService := services.NewDiagramService(schemaRepo, cfg.DB.Schema)

	metaHandler := handlers.NewMetaHandler(catalog, diagramService, cfg.APITitle, cfg.APIVersion)
	recordHandler := handlers.NewRecordHandler(recordService)

	router := gin.Default()
	router.Use(middlewares.RequestID())
	router.Use(middlewares.CORS())
	routes.RegisterRoutes(router, metaHandler, recordHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
