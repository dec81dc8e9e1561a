package icons

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image/png"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/testutil"
	"github.com/arthur-debert/brander/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	logoPath   = "/fork/configs/branding/stable/logo.png"
	profileDir = "/fork/configs/branding/stable"
	storeDir   = "/fork/engine/browser/branding/stable"
)

func setupLogo(t *testing.T, size int) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(profileDir, 0755))
	require.NoError(t, fsys.WriteFile(logoPath, testutil.LogoPNG(t, size), 0644))
	return fsys
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestPlan(t *testing.T) {
	plan := Plan(profileDir, storeDir)
	require.Len(t, plan, 20)

	var paths []string
	for _, a := range plan {
		paths = append(paths, a.Path)
	}
	for _, size := range Sizes {
		assert.Contains(t, paths, filepath.Join(profileDir, fmt.Sprintf("logo%d.png", size)))
		assert.Contains(t, paths, filepath.Join(storeDir, fmt.Sprintf("default%d.png", size)))
	}
	assert.Contains(t, paths, filepath.Join(storeDir, "firefox.ico"))
	assert.Contains(t, paths, filepath.Join(storeDir, "firefox64.ico"))
	assert.Contains(t, paths, filepath.Join(storeDir, "content", "about-logo.png"))
	assert.Contains(t, paths, filepath.Join(storeDir, "content", "about-logo@2x.png"))
}

func TestGenerate_WritesEverySquareArtifact(t *testing.T) {
	tests := []struct {
		name     string
		logoSize int
	}{
		{"full size logo", 1024},
		{"small logo scaled up", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := setupLogo(t, tt.logoSize)

			result, err := Generate(context.Background(), fsys, logoPath, profileDir, storeDir)
			require.NoError(t, err)
			require.Len(t, result.Artifacts, 20)
			assert.Equal(t, result.Artifacts[0].Path, result.Paths()[0])

			for _, artifact := range result.Artifacts {
				t.Run(filepath.Base(artifact.Path), func(t *testing.T) {
					data, err := fsys.ReadFile(artifact.Path)
					require.NoError(t, err)

					if artifact.Format == FormatICO {
						data = icoPayload(t, data, artifact.Size)
					}
					w, h := decodeSize(t, data)
					assert.Equal(t, artifact.Size, w)
					assert.Equal(t, artifact.Size, h)
				})
			}
		})
	}
}

// icoPayload checks the container header and returns the embedded PNG
func icoPayload(t *testing.T, data []byte, size int) []byte {
	t.Helper()
	require.Greater(t, len(data), icoHeaderLen+icoEntryLen)

	le := binary.LittleEndian
	assert.Equal(t, uint16(0), le.Uint16(data[0:2]))
	assert.Equal(t, uint16(1), le.Uint16(data[2:4]))
	assert.Equal(t, uint16(1), le.Uint16(data[4:6]))

	expectedDim := byte(size)
	if size >= 256 {
		expectedDim = 0
	}
	assert.Equal(t, expectedDim, data[6])
	assert.Equal(t, expectedDim, data[7])
	assert.Equal(t, uint16(32), le.Uint16(data[12:14]))

	length := le.Uint32(data[14:18])
	offset := le.Uint32(data[18:22])
	assert.Equal(t, uint32(icoHeaderLen+icoEntryLen), offset)
	require.Equal(t, int(offset+length), len(data))

	return data[offset:]
}

func TestGenerate_Overwrites(t *testing.T) {
	fsys := setupLogo(t, 32)
	stale := filepath.Join(storeDir, "default16.png")
	require.NoError(t, fsys.MkdirAll(storeDir, 0755))
	require.NoError(t, fsys.WriteFile(stale, []byte("stale"), 0644))

	_, err := Generate(context.Background(), fsys, logoPath, profileDir, storeDir)
	require.NoError(t, err)

	data, err := fsys.ReadFile(stale)
	require.NoError(t, err)
	w, h := decodeSize(t, data)
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
}

func TestGenerate_Deterministic(t *testing.T) {
	fsys := setupLogo(t, 48)

	_, err := Generate(context.Background(), fsys, logoPath, profileDir, storeDir)
	require.NoError(t, err)
	first, err := fsys.ReadFile(filepath.Join(storeDir, "firefox.ico"))
	require.NoError(t, err)

	_, err = Generate(context.Background(), fsys, logoPath, profileDir, storeDir)
	require.NoError(t, err)
	second, err := fsys.ReadFile(filepath.Join(storeDir, "firefox.ico"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_DecodeFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fsys types.FS)
	}{
		{
			name:  "missing logo",
			setup: func(fsys types.FS) {},
		},
		{
			name: "not a png",
			setup: func(fsys types.FS) {
				_ = fsys.WriteFile(logoPath, []byte("GIF89a not really"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemory()
			require.NoError(t, fsys.MkdirAll(profileDir, 0755))
			tt.setup(fsys)

			_, err := Generate(context.Background(), fsys, logoPath, profileDir, storeDir)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrImageDecode))

			exists, err := filesystem.Exists(fsys, storeDir)
			require.NoError(t, err)
			assert.False(t, exists, "nothing is written when the logo cannot be decoded")
		})
	}
}

// failingFS rejects writes below prefix
type failingFS struct {
	types.FS
	prefix string
}

func (f *failingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if filepath.Dir(name) == f.prefix {
		return fs.ErrPermission
	}
	return f.FS.WriteFile(name, data, perm)
}

func TestGenerate_WriteFailure(t *testing.T) {
	fsys := &failingFS{FS: setupLogo(t, 32), prefix: filepath.Join(storeDir, "content")}

	_, err := Generate(context.Background(), fsys, logoPath, profileDir, storeDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrImageWrite))
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestGenerate_CancelledContext(t *testing.T) {
	fsys := setupLogo(t, 32)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, fsys, logoPath, profileDir, storeDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeICO(t *testing.T) {
	payload := []byte{1, 2, 3}
	data := encodeICO(payload, 64)
	assert.Len(t, data, icoHeaderLen+icoEntryLen+3)
	assert.Equal(t, byte(64), data[6])
	assert.Equal(t, payload, data[22:])

	assert.Equal(t, byte(0), encodeICO(payload, 512)[6])
}
