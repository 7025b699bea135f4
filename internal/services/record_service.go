package services

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"restdb/internal/apperrors"
	"restdb/internal/repositories"
	"restdb/internal/serialize"
)

// RecordService implements the generic CRUD semantics on top of the
// catalog and the dynamic record repository. Every operation resolves the
// table descriptor fresh, executes, and serializes the result; the first
// classified error short-circuits the rest.
type RecordService struct {
	catalog    *CatalogService
	recordRepo *repositories.RecordRepository
}

func NewRecordService(catalog *CatalogService, recordRepo *repositories.RecordRepository) *RecordService {
	return &RecordService{
		catalog:    catalog,
		recordRepo: recordRepo,
	}
}

// List returns up to limit serialized records, offset by skip. Bounds are
// validated by the handler before this runs.
func (s *RecordService) List(ctx context.Context, table string, skip, limit int) ([]map[string]any, error) {
	model, err := s.catalog.Resolve(ctx, table)
	if err != nil {
		return nil, err
	}

	rows, err := s.recordRepo.List(ctx, s.catalog.Schema(), table, skip, limit)
	if err != nil {
		log.Printf("Error reading from table '%s': %v", table, err)
		return nil, apperrors.ClassifyRead(err, "Failed to read from table '"+table+"'")
	}

	return serialize.Rows(rows, model.Columns), nil
}

// Get fetches one record by the table's first primary key column.
func (s *RecordService) Get(ctx context.Context, table, recordID string) (map[string]any, error) {
	model, err := s.catalog.Resolve(ctx, table)
	if err != nil {
		return nil, err
	}

	pk, ok := model.PrimaryKey()
	if !ok {
		return nil, apperrors.BadRequest("Table '%s' has no primary key", table)
	}

	row, err := s.recordRepo.GetByKey(ctx, s.catalog.Schema(), table, pk, recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Record not found in '%s' with %s=%s", table, pk, recordID)
		}
		log.Printf("Error reading record from table '%s': %v", table, err)
		return nil, apperrors.ClassifyRead(err, "Failed to read record from table '"+table+"'")
	}

	return serialize.Row(row, model.Columns), nil
}

// Create inserts one record from a flat field map. Fields that are not
// reflected columns are rejected before any SQL runs. The returned record
// includes server-generated values.
func (s *RecordService) Create(ctx context.Context, table string, fields map[string]any) (map[string]any, error) {
	model, err := s.catalog.Resolve(ctx, table)
	if err != nil {
		return nil, err
	}

	for name := range fields {
		if !model.HasColumn(name) {
			return nil, apperrors.BadRequest("Invalid field '%s' for table '%s'", name, table)
		}
	}

	row, err := s.recordRepo.Insert(ctx, s.catalog.Schema(), table, fields)
	if err != nil {
		log.Printf("Error creating record in table '%s': %v", table, err)
		return nil, apperrors.ClassifyWrite(err, "Failed to create record in '"+table+"'")
	}

	return serialize.Row(row, model.Columns), nil
}

// Update applies a partial field map to the record matching the first
// primary key column. Fields that are not reflected columns are skipped
// rather than rejected; a body with no usable field degenerates to a
// plain fetch.
func (s *RecordService) Update(ctx context.Context, table, recordID string, fields map[string]any) (map[string]any, error) {
	model, err := s.catalog.Resolve(ctx, table)
	if err != nil {
		return nil, err
	}

	pk, ok := model.PrimaryKey()
	if !ok {
		return nil, apperrors.BadRequest("Table '%s' has no primary key", table)
	}

	updates := make(map[string]any, len(fields))
	for name, value := range fields {
		if model.HasColumn(name) {
			updates[name] = value
		}
	}

	schema := s.catalog.Schema()

	if len(updates) == 0 {
		row, err := s.recordRepo.GetByKey(ctx, schema, table, pk, recordID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NotFound("Record not found in '%s'", table)
			}
			return nil, apperrors.ClassifyRead(err, "Failed to read record from table '"+table+"'")
		}
		return serialize.Row(row, model.Columns), nil
	}

	row, err := s.recordRepo.UpdateByKey(ctx, schema, table, pk, recordID, updates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Record not found in '%s'", table)
		}
		log.Printf("Error updating record in table '%s': %v", table, err)
		return nil, apperrors.ClassifyWrite(err, "Failed to update record in '"+table+"'")
	}

	return serialize.Row(row, model.Columns), nil
}

// Delete removes the record matching the first primary key column and
// returns the deleted id.
func (s *RecordService) Delete(ctx context.Context, table, recordID string) error {
	model, err := s.catalog.Resolve(ctx, table)
	if err != nil {
		return err
	}

	pk, ok := model.PrimaryKey()
	if !ok {
		return apperrors.BadRequest("Table '%s' has no primary key", table)
	}

	deleted, err := s.recordRepo.DeleteByKey(ctx, s.catalog.Schema(), table, pk, recordID)
	if err != nil {
		log.Printf("Error deleting record from table '%s': %v", table, err)
		return apperrors.ClassifyWrite(err, "Failed to delete record from '"+table+"'")
	}
	if !deleted {
		return apperrors.NotFound("Record not found in '%s'", table)
	}

	return nil
}
