package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/keepsake/internal/csvio"
	"github.com/at-ishikawa/keepsake/internal/library"
	"github.com/at-ishikawa/keepsake/internal/testutil"
	"github.com/at-ishikawa/keepsake/internal/transfer"
)

const musicHeader = "ID,Artist,Song,URL,Added At\n"

func TestImportListExport(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	csvPath := testutil.WriteCSV(t, tmpDir, "music.csv",
		musicHeader+"s1,Band,First,https://example.com/1,1700000000000\ns2,Band,Second,https://example.com/2,1700000000001\n")

	out, err := runCommand(t, cfgPath, "import", "music", csvPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[NEW]  s1 Band")
	assert.Contains(t, out, "dry-run mode")
	assert.Contains(t, out, "2 parsed, 2 new, 0 skipped")

	out, err = runCommand(t, cfgPath, "list", "music")
	require.NoError(t, err)
	assert.NotContains(t, out, "First")

	_, err = runCommand(t, cfgPath, "import", "music", csvPath)
	require.NoError(t, err)

	out, err = runCommand(t, cfgPath, "list", "music")
	require.NoError(t, err)
	assert.Contains(t, out, "Artist")
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Second")

	out, err = runCommand(t, cfgPath, "list", "music", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ID,Artist,Song,URL,Added At\n"), out)
	assert.NotContains(t, out, csvio.BOM)
	assert.Contains(t, out, "s1,Band,First,https://example.com/1,1700000000000")

	exportDir := filepath.Join(tmpDir, "custom")
	out, err = runCommand(t, cfgPath, "export", "music", "--out", exportDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 music records")

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^music_db_\d{4}-\d{2}-\d{2}\.csv$`, entries[0].Name())
}

func TestImport_SkipsDuplicates(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	csvPath := testutil.WriteCSV(t, tmpDir, "words.csv",
		"ID,Word,Reading,Meaning\n1,猫,ねこ,cat\n")

	_, err := runCommand(t, cfgPath, "import", "vocabulary", csvPath)
	require.NoError(t, err)

	out, err := runCommand(t, cfgPath, "import", "japanese", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[SKIP] 1 猫")
	assert.Contains(t, out, "1 parsed, 0 new, 1 skipped")
}

func TestImport_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	textPath := testutil.WriteCSV(t, tmpDir, "notes.txt", "ID,Artist\n")
	csvPath := testutil.WriteCSV(t, tmpDir, "music.csv", musicHeader)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown kind",
			args:    []string{"import", "books", csvPath},
			wantErr: library.ErrUnknownKind,
		},
		{
			name:    "not a csv file",
			args:    []string{"import", "music", textPath},
			wantErr: transfer.ErrNotCSV,
		},
		{
			name:    "missing file",
			args:    []string{"import", "music", filepath.Join(tmpDir, "missing.csv")},
			wantMsg: "missing.csv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, cfgPath, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestAddAndDelete(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	out, err := runCommand(t, cfgPath, "add", "travel",
		"--set", "ID=spot-1", "--set", "Name=Fushimi Inari", "--set", "Status=VISITED")
	require.NoError(t, err)
	assert.Contains(t, out, "Added travel spot-1")

	out, err = runCommand(t, cfgPath, "list", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "Fushimi Inari")

	out, err = runCommand(t, cfgPath, "delete", "travel", "spot-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted travel spot-1")

	_, err = runCommand(t, cfgPath, "delete", "travel", "spot-1")
	assert.ErrorIs(t, err, library.ErrNotFound)
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name        string
		assignments []string
		want        map[string]string
		wantErr     bool
	}{
		{
			name:        "label and value",
			assignments: []string{"Artist=Band", " Song = Hello=World"},
			want:        map[string]string{"Artist": "Band", "Song": " Hello=World"},
		},
		{
			name:        "empty value",
			assignments: []string{"URL="},
			want:        map[string]string{"URL": ""},
		},
		{
			name:    "no assignments",
			wantErr: true,
		},
		{
			name:        "missing separator",
			assignments: []string{"Artist"},
			wantErr:     true,
		},
		{
			name:        "empty label",
			assignments: []string{"=value"},
			wantErr:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.assignments)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputFormat_Set(t *testing.T) {
	var format OutputFormat
	require.NoError(t, format.Set("csv"))
	assert.Equal(t, OutputFormatCSV, format)
	assert.Equal(t, "csv", format.String())
	assert.Equal(t, "format", format.Type())

	assert.Error(t, format.Set("json"))
	assert.Equal(t, OutputFormatCSV, format)
}
