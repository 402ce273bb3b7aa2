package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_MaskParams(t *testing.T) {
	s := NewSanitizer(nil)

	tests := []struct {
		name   string
		sql    string
		params []interface{}
		want   []interface{}
	}{
		{
			name:   "no sensitive columns",
			sql:    `SELECT * FROM "users" WHERE "status"=? AND "age">?`,
			params: []interface{}{"active", 18},
			want:   []interface{}{"active", 18},
		},
		{
			name:   "password column masks params",
			sql:    `SELECT * FROM "users" WHERE "password"=?`,
			params: []interface{}{"hunter2"},
			want:   []interface{}{"***REDACTED***"},
		},
		{
			name:   "api_key column masks params",
			sql:    `SELECT * FROM "clients" WHERE "api_key"=? AND "name"=?`,
			params: []interface{}{"sk-123", "acme"},
			want:   []interface{}{"***REDACTED***", "***REDACTED***"},
		},
		{
			name:   "empty params unchanged",
			sql:    `SELECT * FROM "users" WHERE "password" IS NULL`,
			params: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.MaskParams(tt.sql, tt.params)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizer_MaskParams_DoesNotMutate(t *testing.T) {
	s := NewSanitizer(nil)
	params := []interface{}{"hunter2"}

	s.MaskParams(`SELECT * FROM "users" WHERE "password"=?`, params)
	assert.Equal(t, "hunter2", params[0])
}

func TestSanitizer_CustomFields(t *testing.T) {
	s := NewSanitizer([]string{"pin_code"})

	masked := s.MaskParams(`SELECT * FROM "cards" WHERE "pin_code"=?`, []interface{}{1234})
	assert.Equal(t, []interface{}{"***REDACTED***"}, masked)

	// Defaults are replaced, not extended
	unmasked := s.MaskParams(`SELECT * FROM "users" WHERE "password"=?`, []interface{}{"x"})
	assert.Equal(t, []interface{}{"x"}, unmasked)
}

func TestSanitizer_FormatParams(t *testing.T) {
	s := NewSanitizer(nil)

	assert.Equal(t, "[]", s.FormatParams(nil))
	assert.Equal(t, "[1, active, NULL]", s.FormatParams([]interface{}{1, "active", nil}))

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	got := s.FormatParams([]interface{}{string(long)})
	assert.Len(t, got, 100+len("[...]"))
	assert.Contains(t, got, "...")
}
