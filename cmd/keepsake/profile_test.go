package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/keepsake/internal/profile"
	"github.com/at-ishikawa/keepsake/internal/testutil"
)

func TestProfileCommands(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	out, err := runCommand(t, cfgPath, "profile", "list")
	require.NoError(t, err)
	assert.Equal(t, "* default\n", out)

	_, err = runCommand(t, cfgPath, "profile", "add", "alice")
	require.NoError(t, err)
	_, err = runCommand(t, cfgPath, "profile", "add", "alice")
	assert.ErrorIs(t, err, profile.ErrExists)
	_, err = runCommand(t, cfgPath, "profile", "add", "../bob")
	assert.ErrorIs(t, err, profile.ErrInvalidName)
	_, err = runCommand(t, cfgPath, "profile", "use", "carol")
	assert.ErrorIs(t, err, profile.ErrUnknown)

	out, err = runCommand(t, cfgPath, "profile", "use", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Switched to profile alice")

	out, err = runCommand(t, cfgPath, "profile", "list")
	require.NoError(t, err)
	assert.Equal(t, "  default\n* alice\n", out)
}

func TestProfiles_PartitionRecords(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	csvPath := testutil.WriteCSV(t, tmpDir, "music.csv", musicHeader+"s1,Band,Only Alice,https://example.com,1\n")

	_, err := runCommand(t, cfgPath, "profile", "add", "alice")
	require.NoError(t, err)
	_, err = runCommand(t, cfgPath, "--profile", "alice", "import", "music", csvPath)
	require.NoError(t, err)

	out, err := runCommand(t, cfgPath, "--profile", "alice", "list", "music")
	require.NoError(t, err)
	assert.Contains(t, out, "Only Alice")

	out, err = runCommand(t, cfgPath, "list", "music")
	require.NoError(t, err)
	assert.NotContains(t, out, "Only Alice")

	assert.FileExists(t, filepath.Join(tmpDir, "store", "alice_music_db.json"))
}

func TestProfileFlag_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	_, err := runCommand(t, cfgPath, "--profile", "a/b", "list", "music")
	assert.ErrorIs(t, err, profile.ErrInvalidName)
}
