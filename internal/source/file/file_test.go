package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadParsesKeyValueLines(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nmonitor.my-site.type: http\nmonitor.my-site.url = \"https://example.com\"\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.kuma"), []byte(content), 0o644))

	sources, err := Read(dir, "")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	require.Equal(t, "monitor.my-site.type", sources[0].Key)
	require.Equal(t, "http", sources[0].Value)
	require.Equal(t, "https://example.com", sources[1].Value)
}

func TestReadIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("monitor.x.type: http\n"), 0o644))

	sources, err := Read(dir, "")
	require.NoError(t, err)
	require.Empty(t, sources)
}
