package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Bare", "u:p@localhost:5432/dashboard", "pgx5://u:p@localhost:5432/dashboard"},
		{"Postgres", "postgres://u:p@db/dashboard", "pgx5://u:p@db/dashboard"},
		{"Postgresql", "postgresql://u:p@db/dashboard", "pgx5://u:p@db/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storageURL(tt.in))
		})
	}
}
