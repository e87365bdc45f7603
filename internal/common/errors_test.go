package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("student not found: %w", ErrNotFound), http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"validation", fmt.Errorf("date must be YYYY-MM-DD: %w", ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("email taken: %w", ErrConflict), http.StatusConflict},
		{"service unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatusFromError(tc.err))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Role  string `validate:"required,oneof=student teacher"`
	}

	assert.NoError(t, ValidateStruct(payload{Email: "a@b.com", Role: "student"}))

	err := ValidateStruct(payload{Email: "nope", Role: "admin"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Email must be a valid email address")
	assert.Contains(t, err.Error(), "Role must be one of [student teacher]")

	err = ValidateStruct(payload{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Email is required")
}
