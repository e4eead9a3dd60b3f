package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cse-sg/absence-service/internal/store"
)

func TestToDomainError_PassThrough(t *testing.T) {
	orig := NewDomainError("INVALID_ORG_CODE", "Invalid organization code", http.StatusUnauthorized, nil)
	got := ToDomainError(orig)
	assert.Same(t, orig, got)
}

func TestToDomainError_Wrapped(t *testing.T) {
	inner := NewConflict("already chosen", nil)
	wrapped := fmt.Errorf("choose team: %w", inner)

	got := ToDomainError(wrapped)
	assert.Equal(t, "CONFLICT", got.Code)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
}

func TestToDomainError_StoreNotFound(t *testing.T) {
	got := ToDomainError(fmt.Errorf("load: %w", store.ErrNotFound))
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
}

func TestToDomainError_UnknownBecomesStoreError(t *testing.T) {
	got := ToDomainError(errors.New("socket closed"))
	assert.Equal(t, "STORE_ERROR", got.Code)
	assert.Equal(t, http.StatusBadGateway, got.HTTPStatus)
}

func TestDomainError_Unwrap(t *testing.T) {
	inner := errors.New("timeout")
	err := NewStoreError(inner)
	assert.ErrorIs(t, err, inner)
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "Incorrect PIN", ToDomainError(NewWrongAccessPin()).Message)
	require.Equal(t, "New PIN must be 4 digits", ToDomainError(NewInvalidNewPin()).Message)
	require.Equal(t, "PINs do not match", ToDomainError(NewPinMismatch()).Message)
	require.Equal(t, "Invalid organization code", ToDomainError(NewInvalidOrgCode()).Message)
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, MapError(nil))
}
