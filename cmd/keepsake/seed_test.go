package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/keepsake/internal/testutil"
)

func TestSeedCommand_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	testutil.WriteCSV(t, filepath.Join(tmpDir, "seeds"), "music_db.csv", musicHeader+"s1,Band,Seeded,https://example.com,1\n")

	out, err := runCommand(t, cfgPath, "seed")
	require.NoError(t, err)
	assert.Regexp(t, `music\s+1 records`, out)
	assert.Contains(t, out, "japanese_db.csv not found")

	out, err = runCommand(t, cfgPath, "seed")
	require.NoError(t, err)
	assert.Regexp(t, `music\s+already has data, skipped`, out)

	out, err = runCommand(t, cfgPath, "list", "music")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded")
}

func TestSeedCommand_HTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seeds/travel_db.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ID,Name,Address,Status\nt1,Kinkaku-ji,Kyoto,WANT_TO_GO\n"))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	out, err := runCommand(t, cfgPath, "seed", "--source", server.URL+"/seeds")
	require.NoError(t, err)
	assert.Regexp(t, `travel\s+1 records`, out)

	out, err = runCommand(t, cfgPath, "list", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "Kinkaku-ji")
}
