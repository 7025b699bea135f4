package serialize

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restdb/internal/models"
)

func TestRow(t *testing.T) {
	columns := []models.Column{
		{Name: "id", DataType: "integer"},
		{Name: "name", DataType: "text"},
		{Name: "blob", DataType: "bytea"},
		{Name: "missing", DataType: "text"},
	}

	values := map[string]any{
		"id":   int32(7),
		"name": "widget",
		"blob": []byte("payload"),
		// "missing" deliberately absent
		"extra": "not a column",
	}

	record := Row(values, columns)

	assert.Equal(t, int32(7), record["id"])
	assert.Equal(t, "widget", record["name"])
	assert.Equal(t, "payload", record["blob"])

	// Absent column serializes as explicit null.
	v, ok := record["missing"]
	require.True(t, ok)
	assert.Nil(t, v)

	// Values outside the reflected column list are dropped.
	_, ok = record["extra"]
	assert.False(t, ok)
}

func TestScalarBinaryInvalidUTF8(t *testing.T) {
	got := Scalar([]byte{'a', 0xff, 0xfe, 'b'})
	assert.Equal(t, "ab", got)
}

func TestScalarUUID(t *testing.T) {
	raw := [16]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	assert.Equal(t, "01020304-0506-0708-090a-0b0c0d0e0f10", Scalar(raw))
}

func TestScalarNumeric(t *testing.T) {
	var n pgtype.Numeric
	require.NoError(t, n.Scan("9.99"))

	got := Scalar(n)
	require.IsType(t, float64(0), got)
	assert.InDelta(t, 9.99, got.(float64), 0.0001)
}

func TestScalarPassthrough(t *testing.T) {
	now := time.Now()

	assert.Equal(t, now, Scalar(now))
	assert.Equal(t, true, Scalar(true))
	assert.Equal(t, int64(42), Scalar(int64(42)))
	assert.Equal(t, "plain", Scalar("plain"))
}

func TestRows(t *testing.T) {
	columns := []models.Column{{Name: "n", DataType: "integer"}}

	records := Rows([]map[string]any{{"n": int32(1)}, {"n": int32(2)}}, columns)

	assert.Len(t, records, 2)
	assert.Equal(t, int32(1), records[0]["n"])
	assert.Equal(t, int32(2), records[1]["n"])
}
