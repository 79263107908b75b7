package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests the source factory.
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr bool
	}{
		{
			name: "csv",
			cfg:  Config{Type: KindCSV, CSV: &CSVConfig{Path: "x.csv"}},
			want: &CSVSource{},
		},
		{
			name: "sql",
			cfg:  Config{Type: KindSQL, SQL: &SQLConfig{Engine: "sqlite3", Database: "x.db", Query: "SELECT 1"}},
			want: &SQLSource{},
		},
		{
			name: "mock",
			cfg:  Config{Type: KindMock, Mock: &MockConfig{Side: MockSideLeft}},
			want: &MockSource{},
		},
		{name: "csv without block", cfg: Config{Type: KindCSV}, wantErr: true},
		{name: "sql without block", cfg: Config{Type: KindSQL}, wantErr: true},
		{name: "mock without block", cfg: Config{Type: KindMock}, wantErr: true},
		{name: "unknown kind", cfg: Config{Type: "excel"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
		})
	}
}

// TestFilterEmpty tests the zero-filter contract.
func TestFilterEmpty(t *testing.T) {
	assert.True(t, Filter{}.Empty())
	assert.True(t, Filter{Value: "TX"}.Empty())
	assert.False(t, Filter{Column: "State", Value: "TX"}.Empty())
}
