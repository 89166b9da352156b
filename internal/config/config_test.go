package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, 8012, cfg.Server.Port)
	assert.Equal(t, 50*time.Second, cfg.API.Timeout)
	assert.Equal(t, "02/01/2006", cfg.Export.DateLayout)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
server:
  port: 9000
api:
  baseURL: http://backend.local/api/v2
  timeout: 5s
export:
  format: xlsx
  dateLayout: "2006-01-02"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	t.Setenv("DIET_REGISTRY_API_TOKEN", "secret")
	t.Setenv("DIET_REGISTRY_SERVER_PORT", "9100")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "http://backend.local/api/v2", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "xlsx", cfg.Export.Format)
	assert.Equal(t, "2006-01-02", cfg.Export.DateLayout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8012},
			API:    APIConfig{BaseURL: "http://x"},
			Export: ExportConfig{Format: "csv", Timezone: "UTC"},
		}
	}

	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = " " }, "api.baseURL"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
		{"bad timezone", func(c *Config) { c.Export.Timezone = "Mars/Olympus" }, "export.timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.edit(&cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())
}

func TestMessageURL(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "127.0.0.1", Port: 8012}}
	assert.Equal(t, "http://127.0.0.1:8012/message", cfg.MessageURL())

	cfg.Server.PublicURL = "https://registry.example.org/"
	assert.Equal(t, "https://registry.example.org/message", cfg.MessageURL())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	oldPWD, hadPWD := os.LookupEnv("PWD")
	os.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
		if hadPWD {
			os.Setenv("PWD", oldPWD)
		} else {
			os.Unsetenv("PWD")
		}
	})
}
