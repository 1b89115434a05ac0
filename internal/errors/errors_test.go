package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindForeignKeyNotFound, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindDuplicate, http.StatusConflict},
		{KindDependencyExists, http.StatusConflict},
		{KindAlreadySold, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(E(tt.kind, "x")))
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("plain")))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := E(KindNotFound, "vehicle not found")
	wrapped := fmt.Errorf("loading: %w", inner)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestToResponse(t *testing.T) {
	t.Run("domain errors keep message and field", func(t *testing.T) {
		err := E(KindDuplicate, "email in use").WithField("email")
		resp := ToResponse(err)
		assert.Equal(t, "email in use", resp.Message)
		assert.Equal(t, "email", resp.Field)
	})

	t.Run("internal details never leak", func(t *testing.T) {
		err := Wrap("query vehicles", stderrors.New("dial tcp: connection refused"))
		resp := ToResponse(err)
		assert.Equal(t, "internal server error", resp.Message)
		assert.Empty(t, resp.Field)
	})

	t.Run("plain errors are masked too", func(t *testing.T) {
		resp := ToResponse(stderrors.New("boom"))
		assert.Equal(t, "internal server error", resp.Message)
	})
}

func TestWrap_Unwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := Wrap("context", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, err.Kind)
}
