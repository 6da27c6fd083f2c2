// Package testutil provides shared test helpers for config files and CSV fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file whose directories all live under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"store", "seeds", "exports", "reports"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0o755))
	}

	configContent := fmt.Sprintf(`storage:
  driver: file
  directory: %s
profiles:
  file: %s
seeds:
  directory: %s
outputs:
  export_directory: %s
  report_directory: %s
`,
		filepath.Join(tmpDir, "store"),
		filepath.Join(tmpDir, "profiles.yml"),
		filepath.Join(tmpDir, "seeds"),
		filepath.Join(tmpDir, "exports"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0o644))
	return cfgPath
}

// SetupTestConfigWithAPIKey adds a fake OpenAI section pointing at nothing real.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n  max_retry_attempts: 0\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0o644))
	return cfgPath
}

// WriteCSV writes content to dir/name and returns the path.
func WriteCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
