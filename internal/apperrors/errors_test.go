package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusByKind(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Status())
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").Status())
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom"), "oops").Status())
}

func TestClassifyReadPassesThroughClassified(t *testing.T) {
	original := NotFound("Table 'orders' not found")

	got := ClassifyRead(original, "Failed to read")

	assert.Same(t, original, got)
}

func TestClassifyReadWrapsUnknownAsInternal(t *testing.T) {
	got := ClassifyRead(errors.New("connection reset"), "Failed to read")

	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, http.StatusInternalServerError, got.Status())
}

func TestClassifyWriteConstraintViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23503",
		Message: "violates foreign key constraint",
	}

	got := ClassifyWrite(pgErr, "Failed to delete")

	require.Equal(t, KindBadRequest, got.Kind)
	assert.Contains(t, got.Error(), "violates foreign key constraint")
}

func TestClassifyWriteUnknownIsBadRequest(t *testing.T) {
	// The transaction was rolled back, so any write failure surfaces as
	// a 400 rather than a 500.
	got := ClassifyWrite(errors.New("invalid input syntax"), "Failed to create")

	assert.Equal(t, KindBadRequest, got.Kind)
}

func TestClassifyWritePassesThroughClassified(t *testing.T) {
	original := BadRequest("Table 'logs' has no primary key")

	got := ClassifyWrite(original, "Failed to update")

	assert.Same(t, original, got)
}
