package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"unauthorized", Unauthorized("no token"), KindUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("admin only"), KindForbidden, http.StatusForbidden},
		{"not found", NotFound("dealer not found"), KindNotFound, http.StatusNotFound},
		{"validation", Validation("name is required"), KindValidation, http.StatusBadRequest},
		{"conflict", Conflict("email already in use"), KindConflict, http.StatusConflict},
		{"internal", Internal(errors.New("db down")), KindInternal, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), KindInternal, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("create: %w", Conflict("dup")), KindConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(KindOf(tt.err)))
		})
	}
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, KindInternal))
	assert.False(t, Is(nil, KindInternal))
}

func TestMessageID(t *testing.T) {
	assert.Equal(t, "ErrorNotFound", MessageID(KindNotFound))
	assert.Equal(t, "ErrorInternal", MessageID(Kind(99)))
}

func TestFrom(t *testing.T) {
	assert.NoError(t, From(nil))

	v := Validation("bad sort")
	assert.Same(t, v, From(v))

	wrapped := From(errors.New("boom"))
	assert.Equal(t, KindInternal, KindOf(wrapped))
}
