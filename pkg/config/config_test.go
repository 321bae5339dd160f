package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PipelineConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("PIPELINE_REFERENCE_CITY", "denpasar")
	os.Setenv("PIPELINE_SHOWCASE_SIZE", "7")
	os.Setenv("PIPELINE_CITY_MATCH_RADIUS_KM", "30")
	defer func() {
		os.Unsetenv("PIPELINE_REFERENCE_CITY")
		os.Unsetenv("PIPELINE_SHOWCASE_SIZE")
		os.Unsetenv("PIPELINE_CITY_MATCH_RADIUS_KM")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "denpasar", cfg.Pipeline.ReferenceCity)
	assert.Equal(t, 7, cfg.Pipeline.ShowcaseSize)
	assert.Equal(t, 30.0, cfg.Pipeline.CityMatchRadiusKm)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("PIPELINE_REFERENCE_CITY")
	os.Unsetenv("PIPELINE_SHOWCASE_SIZE")
	os.Unsetenv("PIPELINE_MAX_PER_CITY")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "yogyakarta", cfg.Pipeline.ReferenceCity)
	assert.Equal(t, 5, cfg.Pipeline.ShowcaseSize)
	assert.Equal(t, 0, cfg.Pipeline.MaxPerCity)
	assert.Equal(t, 25.0, cfg.Pipeline.CityMatchRadiusKm)
	assert.Equal(t, "provider_discovery", cfg.Database.Database)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	os.Setenv("PIPELINE_SHOWCASE_SIZE", "not-a-number")
	defer os.Unsetenv("PIPELINE_SHOWCASE_SIZE")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 5, cfg.Pipeline.ShowcaseSize)
}
