package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@db:5432/visioncart", "pgx5://u:p@db:5432/visioncart"},
		{"postgresql://db/visioncart", "pgx5://db/visioncart"},
		{"pgx5://db/visioncart", "pgx5://db/visioncart"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toPgx5URL(tt.dsn))
	}
}
