package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// LogoPNG renders a deterministic size x size gradient logo.
func LogoPNG(t *testing.T, size int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / size),
				G: uint8(y * 255 / size),
				B: 0x80,
				A: 0xff,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode logo: %v", err)
	}
	return buf.Bytes()
}

// WriteLogo writes a square PNG logo to path, creating parent directories.
func WriteLogo(t *testing.T, path string, size int) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, LogoPNG(t, size), 0644); err != nil {
		t.Fatalf("Failed to write logo %s: %v", path, err)
	}
	return path
}

// DecodePNG decodes a PNG file and fails the test on error.
func DecodePNG(t *testing.T, path string) image.Image {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return img
}
