package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Profile: "default",
		Storage: StorageConfig{
			Driver:    "file",
			Directory: filepath.Join("data", "store"),
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "keepsake",
			Username: "user",
		},
		Profiles: ProfilesConfig{
			File: filepath.Join("data", "profiles.yml"),
		},
		Seeds: SeedsConfig{
			Directory: "seeds",
		},
		Outputs: OutputsConfig{
			ExportDirectory: filepath.Join("outputs", "exports"),
			ReportDirectory: filepath.Join("outputs", "reports"),
		},
		OpenAI: OpenAIConfig{
			Model:            "gpt-4o-mini",
			MaxRetryAttempts: 3,
		},
		Enrichment: EnrichmentConfig{
			CacheTTLMinutes: 60,
		},
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "no config file uses defaults",
			want: defaultConfig,
		},
		{
			name: "custom values",
			configContent: `profile: alice
storage:
  driver: mysql
database:
  host: db.example.com
  port: 3307
seeds:
  base_url: https://example.com/seeds
outputs:
  export_directory: custom/exports
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Profile = "alice"
				cfg.Storage.Driver = "mysql"
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Seeds.BaseURL = "https://example.com/seeds"
				cfg.Outputs.ExportDirectory = "custom/exports"
				return cfg
			},
		},
		{
			name:            "explicit config file path",
			configContent:   "storage:\n  driver: memory\n",
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.Driver = "memory"
				return cfg
			},
		},
		{
			name: "environment variables override",
			env: map[string]string{
				"OPENAI_API_KEY":   "sk-test",
				"DB_PASSWORD":      "secret",
				"KEEPSAKE_PROFILE": "bob",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.OpenAI.APIKey = "sk-test"
				cfg.Database.Password = "secret"
				cfg.Profile = "bob"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  driver: file
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name:              "unknown storage driver",
			configContent:     "storage:\n  driver: redis\n",
			wantErrorContains: []string{"invalid configuration", "driver must be one of"},
		},
		{
			name:              "invalid seed url",
			configContent:     "seeds:\n  base_url: not a url\n",
			wantErrorContains: []string{"invalid configuration", "base_url must be a valid URL"},
		},
		{
			name:              "missing report template",
			configContent:     "templates:\n  report_template: /nonexistent/report.md.tmpl\n",
			wantErrorContains: []string{"templates.report_template must be an existing and readable file"},
		},
		{
			name:              "profile with a path separator",
			configContent:     "profile: ../etc\n",
			wantErrorContains: []string{"invalid configuration", "profile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "DB_PASSWORD", "KEEPSAKE_PROFILE"} {
				t.Setenv(key, tt.env[key])
			}

			tempDir := t.TempDir()
			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "keepsake.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				wd, err := os.Getwd()
				require.NoError(t, err)
				require.NoError(t, os.Chdir(tempDir))
				t.Cleanup(func() { _ = os.Chdir(wd) })
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}
