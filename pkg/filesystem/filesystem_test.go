package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brander/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	err = fs.MkdirAll(subDir, 0755)
	require.NoError(t, err)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	err = fs.Remove(testFile)
	require.NoError(t, err)
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
	_, err = fs.Stat(subDir)
	assert.True(t, os.IsNotExist(err))
}

func TestAferoReadFileRejectsDirectory(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/tree/dir", 0755))

	_, err := fs.ReadFile("/tree/dir")
	assert.Error(t, err)
}

func seedTree(t *testing.T, fs types.FS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
}

func TestWalkFiles(t *testing.T) {
	for name, fs := range map[string]types.FS{
		"memory": NewMemory(),
		"os":     NewOS(),
	} {
		t.Run(name, func(t *testing.T) {
			root := "/ref"
			if name == "os" {
				root = t.TempDir()
			}
			seedTree(t, fs, map[string]string{
				filepath.Join(root, "content", "aboutDialog.css"): "a",
				filepath.Join(root, "locales", "en-US", "brand.ftl"): "b",
				filepath.Join(root, "configure.sh"):                  "c",
			})
			require.NoError(t, fs.MkdirAll(filepath.Join(root, "empty"), 0755))

			files, err := WalkFiles(fs, root)
			require.NoError(t, err)
			assert.Equal(t, []string{
				"configure.sh",
				filepath.Join("content", "aboutDialog.css"),
				filepath.Join("locales", "en-US", "brand.ftl"),
			}, files)
		})
	}
}

func TestWalkFilesMissingRoot(t *testing.T) {
	_, err := WalkFiles(NewMemory(), "/nope")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	fs := NewMemory()
	seedTree(t, fs, map[string]string{"/out/a.css": "x"})

	ok, err := Exists(fs, "/out/a.css")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(fs, "/out")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(fs, "/out/missing.css")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsOS(t *testing.T) {
	assert.True(t, IsOS(NewOS()))
	assert.False(t, IsOS(NewMemory()))
}
