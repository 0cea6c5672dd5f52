package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Port    int           `env:"SAMPLE_CFG_PORT" envDefault:"8010"`
	Backend string        `env:"SAMPLE_CFG_BACKEND" envDefault:"redis"`
	Brokers []string      `env:"SAMPLE_CFG_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	TTL     time.Duration `env:"SAMPLE_CFG_TTL" envDefault:"0s"`
	Secure  bool          `env:"SAMPLE_CFG_SECURE" envDefault:"false"`
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want sampleConfig
	}{
		{
			name: "defaults",
			want: sampleConfig{Port: 8010, Backend: "redis", Brokers: []string{"localhost:9092"}},
		},
		{
			name: "overrides",
			env: map[string]string{
				"SAMPLE_CFG_PORT":    "9090",
				"SAMPLE_CFG_BACKEND": "postgres",
				"SAMPLE_CFG_BROKERS": "k1:9092,k2:9092",
				"SAMPLE_CFG_TTL":     "72h",
				"SAMPLE_CFG_SECURE":  "true",
			},
			want: sampleConfig{
				Port:    9090,
				Backend: "postgres",
				Brokers: []string{"k1:9092", "k2:9092"},
				TTL:     72 * time.Hour,
				Secure:  true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var cfg sampleConfig
			require.NoError(t, Load(&cfg))
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SAMPLE_CFG_PORT", "not-a-number")

	var cfg sampleConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_Required(t *testing.T) {
	type withRequired struct {
		URL string `env:"SAMPLE_CFG_CATALOG_URL,required"`
	}

	var missing withRequired
	require.Error(t, Load(&missing))

	t.Setenv("SAMPLE_CFG_CATALOG_URL", "http://catalog:8080")
	var present withRequired
	require.NoError(t, Load(&present))
	assert.Equal(t, "http://catalog:8080", present.URL)
}

func TestLoad_NonPointer(t *testing.T) {
	assert.Error(t, Load(sampleConfig{}))
}
