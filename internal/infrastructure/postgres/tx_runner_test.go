package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// Deadlocks y fallos de serialización son reintentables tal cual; cualquier
// otro error de postgres no lo es.
func TestIsRetryablePgError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"deadlock detectado", &pgconn.PgError{Code: "40P01"}, true},
		{"fallo de serialización", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock envuelto", fmt.Errorf("decrement: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"violación de unicidad", &pgconn.PgError{Code: "23505"}, false},
		{"error cualquiera", errors.New("conexión rechazada"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, isRetryablePgError(tc.err))
		})
	}
}
