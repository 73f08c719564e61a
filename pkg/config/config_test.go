package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Defaults.Parts)
	assert.Equal(t, 2, cfg.Defaults.Threshold)
	assert.True(t, cfg.UI.UseColor)
}

func TestSaveAndLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Defaults.Parts = 7
	cfg.Defaults.Threshold = 4
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Defaults.Parts)
	assert.Equal(t, 4, loaded.Defaults.Threshold)
}

func TestLoadFromMissingFile(t *testing.T) {
	loaded, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Defaults, loaded.Defaults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		parts     int
		threshold int
		wantError bool
	}{
		{"Valid", 5, 3, false},
		{"Parts too small", 1, 1, true},
		{"Threshold too small", 5, 1, true},
		{"Threshold above parts", 3, 5, true},
		{"Parts above maximum", 256, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Defaults.Parts = tt.parts
			cfg.Defaults.Threshold = tt.threshold

			err := cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
