package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.txt"))
	touch(t, filepath.Join(root, "sub", "a.TXT"))
	touch(t, filepath.Join(root, "notes.md"))
	touch(t, filepath.Join(root, ".trash", "old.txt"))

	files, err := ScanRoot(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "b.txt"), files[0].Path)
	assert.Equal(t, filepath.Join(root, "sub", "a.TXT"), files[1].Path)
	assert.Equal(t, int64(1), files[0].Size)
	assert.NotZero(t, files[0].Mtime)
}

func TestScanRoot_Missing(t *testing.T) {
	files, err := ScanRoot(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = ScanRoot("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
