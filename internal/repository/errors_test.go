package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil pasa", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicate entry 1062", &mysql.MySQLError{Number: 1062}, ErrConflict},
		{"row referenced 1451", &mysql.MySQLError{Number: 1451}, ErrConflict},
		{"no referenced row 1452", &mysql.MySQLError{Number: 1452}, ErrConflict},
		{"lock wait timeout 1205", &mysql.MySQLError{Number: 1205}, ErrTransient},
		{"deadlock 1213", &mysql.MySQLError{Number: 1213}, ErrTransient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
			// the original driver error stays in the chain for diagnostics
			assert.ErrorIs(t, got, tc.in)
		})
	}
}

func TestClassify_ErrorDesconocidoPasaIntacto(t *testing.T) {
	raw := fmt.Errorf("connection refused")

	got := classify(raw)

	assert.Equal(t, raw, got)
	assert.False(t, errors.Is(got, ErrNotFound))
	assert.False(t, errors.Is(got, ErrConflict))
	assert.False(t, errors.Is(got, ErrTransient))
}

func TestClassify_MySQLErrorEnvuelto(t *testing.T) {
	wrapped := fmt.Errorf("crear boleta: %w", &mysql.MySQLError{Number: 1062})

	got := classify(wrapped)

	assert.ErrorIs(t, got, ErrConflict)
}

func TestClassify_OtroCodigoMySQLPasaIntacto(t *testing.T) {
	raw := &mysql.MySQLError{Number: 1064} // syntax error

	got := classify(raw)

	assert.False(t, errors.Is(got, ErrConflict))
	assert.False(t, errors.Is(got, ErrTransient))
}
