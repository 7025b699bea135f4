package serialize

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"restdb/internal/models"
)

// Row converts one raw database row into a plain column-name keyed record.
// Columns absent from the row map serialize as explicit nulls. Binary
// values are decoded to UTF-8 text, invalid byte sequences dropped; all
// other scalars pass through to JSON encoding unchanged.
func Row(values map[string]any, columns []models.Column) map[string]any {
	record := make(map[string]any, len(columns))
	for _, col := range columns {
		value, ok := values[col.Name]
		if !ok || value == nil {
			record[col.Name] = nil
			continue
		}
		record[col.Name] = Scalar(value)
	}
	return record
}

// Rows converts a result set, preserving row order.
func Rows(values []map[string]any, columns []models.Column) []map[string]any {
	records := make([]map[string]any, 0, len(values))
	for _, row := range values {
		records = append(records, Row(row, columns))
	}
	return records
}

// Scalar normalizes a single column value for JSON encoding. pgx hands
// back a few driver-level types that have no useful native JSON shape.
func Scalar(value any) any {
	switch v := value.(type) {
	case []byte:
		return strings.ToValidUTF8(string(v), "")
	case [16]byte:
		return uuid.UUID(v).String()
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	default:
		return v
	}
}
