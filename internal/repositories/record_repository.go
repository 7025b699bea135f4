package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordRepository executes CRUD statements against tables that are only
// known at runtime. Identifiers are always quoted via pgx.Identifier and
// values always travel as bind parameters, so a table or column name can
// never smuggle SQL in.
//
// Identity lookups compare the key column as text. The record id arrives
// as an opaque path segment, so the cast keeps the comparison valid for
// integer, uuid and text keys alike.
type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

func (r *RecordRepository) tableIdent(schema, table string) string {
	return pgx.Identifier{schema, table}.Sanitize()
}

// List returns up to limit rows from the table, offset by skip.
func (r *RecordRepository) List(ctx context.Context, schema, table string, skip, limit int) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s OFFSET $1 LIMIT $2", r.tableIdent(schema, table))

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToMap)
}

// GetByKey fetches the first row whose key column matches id. Returns
// pgx.ErrNoRows when nothing matches.
func (r *RecordRepository) GetByKey(ctx context.Context, schema, table, keyColumn, id string) (map[string]any, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s::text = $1 LIMIT 1",
		r.tableIdent(schema, table),
		pgx.Identifier{keyColumn}.Sanitize(),
	)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToMap)
}

// Insert adds one row and returns it with all generated columns
// populated. Runs in its own transaction: committed on success, rolled
// back on any failure.
func (r *RecordRepository) Insert(ctx context.Context, schema, table string, fields map[string]any) (map[string]any, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var query string
	var args []any
	if len(fields) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", r.tableIdent(schema, table))
	} else {
		names := sortedKeys(fields)
		columns := make([]string, 0, len(names))
		placeholders := make([]string, 0, len(names))
		for i, name := range names {
			columns = append(columns, pgx.Identifier{name}.Sanitize())
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
			args = append(args, fields[name])
		}
		query = fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			r.tableIdent(schema, table),
			strings.Join(columns, ", "),
			strings.Join(placeholders, ", "),
		)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateByKey changes the given fields on the row matching id and returns
// the updated row. Returns pgx.ErrNoRows when nothing matches. Runs in
// its own transaction.
func (r *RecordRepository) UpdateByKey(ctx context.Context, schema, table, keyColumn, id string, fields map[string]any) (map[string]any, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	names := sortedKeys(fields)
	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", pgx.Identifier{name}.Sanitize(), i+1))
		args = append(args, fields[name])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s::text = $%d RETURNING *",
		r.tableIdent(schema, table),
		strings.Join(assignments, ", "),
		pgx.Identifier{keyColumn}.Sanitize(),
		len(args),
	)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteByKey removes the row matching id. Reports whether a row was
// actually deleted. Runs in its own transaction.
func (r *RecordRepository) DeleteByKey(ctx context.Context, schema, table, keyColumn, id string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s::text = $1",
		r.tableIdent(schema, table),
		pgx.Identifier{keyColumn}.Sanitize(),
	)

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func sortedKeys(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

