package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	assert.Equal(t, KindValidation, KindOf(NewValidationError("Invalid request", nil)))
	assert.Equal(t, KindSignatureInvalid, KindOf(NewSignatureInvalid()))
	assert.Equal(t, KindUpstream, KindOf(fmt.Errorf("create order: %w", NewUpstreamError("Failed to create order", cause))))
	assert.Equal(t, Kind(""), KindOf(cause))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestErrorUnwrap(t *testing.T) {
	err := NewPersistenceError("Failed to save payment", ErrNotFound)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to save payment: record not found", err.Error())
	assert.Equal(t, "Invalid payment signature", NewSignatureInvalid().Error())
}
