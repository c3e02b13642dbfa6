package exports

import (
	"os"
	"path/filepath"
	"testing"

	"csv-to-json/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"data.csv", "data.json"},
		{"some/dir/people.csv", "people.json"},
		{"noext", "noext.json"},
		{"archive.tar.csv", "archive.tar.json"},
		{".csv", ".csv.json"},
		{"/abs/path/report.CSV", "report.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultOutput(tt.input), "input %q", tt.input)
	}
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo", "bar", "out.json")

	require.NoError(t, WriteFile(path, []byte(`{}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"old":"value"},{"old":"value"}]`), 0644))

	require.NoError(t, WriteFile(path, []byte(`{}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestWriteFile_DirectoryCreateError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteFile(filepath.Join(blocker, "sub", "out.json"), []byte(`{}`))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindDirectoryCreate))
}

func TestWriteFile_WriteError(t *testing.T) {
	dir := t.TempDir()

	// the destination exists and is a directory
	err := WriteFile(dir, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindWrite))
}
