package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ProfileDirs creates throwaway primary and secondary profile roots for a
// test. Both are cleaned up with the test's temp directory.
func ProfileDirs(t *testing.T) (primary, secondary string) {
	t.Helper()
	base := t.TempDir()
	primary = filepath.Join(base, "primary")
	secondary = filepath.Join(base, "secondary")
	require.NoError(t, os.MkdirAll(primary, 0o755))
	require.NoError(t, os.MkdirAll(secondary, 0o755))
	return primary, secondary
}

// WriteDocument writes a raw document at <root>/<typ>/<name>.xml, creating
// the type directory as needed.
func WriteDocument(t *testing.T, root, typ, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, typ)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name+".xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteFile writes raw content at an arbitrary path under a test root.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ReadFile reads a file and fails the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// FileExists reports whether a regular file exists at path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
