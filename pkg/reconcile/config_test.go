package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconlab/tabdiff/pkg/errors"
)

func validConfig() *Config {
	return &Config{
		Left:  SideConfig{Name: "QES"},
		Right: SideConfig{Name: "NIQ"},
		Keys: KeySpec{
			Left:  []string{"County_Name", "Specialty"},
			Right: []string{"county_name", "specialty_type"},
		},
		CompareColumns: []CompareColumn{
			{Left: "Provider_Count", Right: "provider_cnt", Label: "Provider_Count", DType: DTypeNumeric},
			{Left: "Meets_Standard", Right: "meets_standard_flag", Label: "Meets_Standard", DType: DTypeText},
		},
	}
}

// TestConfigNormalize tests default filling.
func TestConfigNormalize(t *testing.T) {
	t.Run("side names default", func(t *testing.T) {
		cfg := &Config{}
		cfg.normalize()
		assert.Equal(t, "Left", cfg.Left.Name)
		assert.Equal(t, "Right", cfg.Right.Name)
	})

	t.Run("label defaults to left field", func(t *testing.T) {
		cfg := &Config{CompareColumns: []CompareColumn{{Left: "Provider_Count", Right: "provider_cnt"}}}
		cfg.normalize()
		assert.Equal(t, "Provider_Count", cfg.CompareColumns[0].Label)
	})

	t.Run("dtype defaults to text", func(t *testing.T) {
		cfg := &Config{CompareColumns: []CompareColumn{{Left: "a", Right: "b"}}}
		cfg.normalize()
		assert.Equal(t, DTypeText, cfg.CompareColumns[0].DType)
	})

	t.Run("additional label falls back to right field", func(t *testing.T) {
		cfg := &Config{AdditionalColumns: []AdditionalColumn{{Right: "member_count"}}}
		cfg.normalize()
		assert.Equal(t, "member_count", cfg.AdditionalColumns[0].Label)
	})
}

// TestConfigValidate tests the validation rules.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *Config) {}},
		{
			name:    "missing keys",
			mutate:  func(c *Config) { c.Keys.Left = nil },
			wantErr: "at least one key field",
		},
		{
			name:    "unequal key lengths",
			mutate:  func(c *Config) { c.Keys.Right = c.Keys.Right[:1] },
			wantErr: "equal length",
		},
		{
			name:    "empty key field",
			mutate:  func(c *Config) { c.Keys.Left[0] = "" },
			wantErr: "key field 0 is empty",
		},
		{
			name:    "no compare columns",
			mutate:  func(c *Config) { c.CompareColumns = nil },
			wantErr: "at least one compare column",
		},
		{
			name:    "missing field name",
			mutate:  func(c *Config) { c.CompareColumns[0].Right = "" },
			wantErr: "both a left and a right field",
		},
		{
			name:    "duplicate labels",
			mutate:  func(c *Config) { c.CompareColumns[1].Label = c.CompareColumns[0].Label },
			wantErr: "duplicate label",
		},
		{
			name:    "unknown dtype",
			mutate:  func(c *Config) { c.CompareColumns[0].DType = "decimal" },
			wantErr: "unknown dtype",
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *Config) { c.CompareColumns[0].Tolerance = -1 },
			wantErr: "negative tolerance",
		},
		{
			name: "additional column label collides",
			mutate: func(c *Config) {
				c.AdditionalColumns = []AdditionalColumn{{Left: "x", Label: "Provider_Count"}}
			},
			wantErr: "duplicate label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

// TestResolveLabels tests default resolution and override handling.
func TestResolveLabels(t *testing.T) {
	left := SideConfig{Name: "QES"}
	right := SideConfig{Name: "NIQ"}

	t.Run("defaults use side names", func(t *testing.T) {
		set, err := ResolveLabels(nil, left, right)
		require.NoError(t, err)
		assert.Equal(t, "MATCH", set.Match)
		assert.Equal(t, "QES ONLY", set.OverallLeftOnly)
		assert.Equal(t, "NIQ ONLY", set.OverallRightOnly)
		assert.Equal(t, "N/A - QES Only", set.NALeftOnly)
		assert.Equal(t, "N/A - NIQ Only", set.NARightOnly)
		assert.Equal(t, "Don't Match", set.NoMatchIndicator)
	})

	t.Run("overrides replace defaults", func(t *testing.T) {
		set, err := ResolveLabels(map[string]string{
			"match":    "OK",
			"mismatch": "DIFF",
		}, left, right)
		require.NoError(t, err)
		assert.Equal(t, "OK", set.Match)
		assert.Equal(t, "DIFF", set.Mismatch)
		assert.Equal(t, "WARNING", set.Warning)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		_, err := ResolveLabels(map[string]string{"matches": "OK"}, left, right)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown label key")
	})

	t.Run("non-ascii value rejected", func(t *testing.T) {
		_, err := ResolveLabels(map[string]string{"match": "✓"}, left, right)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-ASCII")
	})
}
