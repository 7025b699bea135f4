package services

import (
	"context"
	"log"
	"sync"

	"restdb/internal/apperrors"
	"restdb/internal/models"
	"restdb/internal/repositories"
)

// CatalogService owns the process-scoped list of table names. The list is
// discovered once at startup and replaced only by an explicit Refresh; a
// table added to the database afterwards stays invisible until then.
//
// Full table descriptors are a different story: Resolve re-reads columns,
// primary keys and foreign keys from the live catalog on every call, so
// record operations always see the current shape of a known table.
type CatalogService struct {
	schemaRepo *repositories.SchemaRepository
	schema     string

	mu     sync.RWMutex
	tables []string
}

func NewCatalogService(schemaRepo *repositories.SchemaRepository, schema string) *CatalogService {
	return &CatalogService{
		schemaRepo: schemaRepo,
		schema:     schema,
	}
}

// Load discovers the table list at startup. A failure is not fatal: the
// list stays empty, every table route degrades to 404, and a later
// Refresh can recover once the database is reachable.
func (s *CatalogService) Load(ctx context.Context) {
	tables, err := s.schemaRepo.GetTables(ctx, s.schema)
	if err != nil {
		log.Printf("Failed to discover tables: %v", err)
		return
	}

	s.mu.Lock()
	s.tables = tables
	s.mu.Unlock()

	log.Printf("Database connected. Available tables: %v", tables)
}

// Refresh re-discovers the table list and returns the new set.
func (s *CatalogService) Refresh(ctx context.Context) ([]string, error) {
	tables, err := s.schemaRepo.GetTables(ctx, s.schema)
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to refresh table list")
	}

	s.mu.Lock()
	s.tables = tables
	s.mu.Unlock()

	return tables, nil
}

// Tables returns a copy of the discovered table names.
func (s *CatalogService) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]string, len(s.tables))
	copy(tables, s.tables)
	return tables
}

// Has reports whether the table was present at discovery time.
func (s *CatalogService) Has(table string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tables {
		if t == table {
			return true
		}
	}
	return false
}

// Resolve returns the full descriptor for a discovered table, freshly
// introspected. Unknown tables yield a 404.
func (s *CatalogService) Resolve(ctx context.Context, table string) (*models.Table, error) {
	if !s.Has(table) {
		return nil, apperrors.NotFound("Table '%s' not found", table)
	}

	columns, err := s.schemaRepo.GetColumns(ctx, s.schema, table)
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to introspect table '%s'", table)
	}

	pks, err := s.schemaRepo.GetPrimaryKeys(ctx, s.schema, table)
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to introspect table '%s'", table)
	}

	fks, err := s.schemaRepo.GetForeignKeys(ctx, s.schema, table)
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to introspect table '%s'", table)
	}

	return &models.Table{
		Name:        table,
		Columns:     columns,
		PrimaryKeys: pks,
		ForeignKeys: fks,
	}, nil
}

// Schema exposes the configured database schema name.
func (s *CatalogService) Schema() string {
	return s.schema
}
