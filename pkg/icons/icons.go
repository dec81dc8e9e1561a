package icons

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/types"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Sizes are the raster sizes written to both the profile and the store
var Sizes = []int{16, 22, 24, 32, 48, 64, 128, 256}

const (
	FormatPNG = "png"
	FormatICO = "ico"

	ContentDir = "content"
)

// Artifact is one file produced from the master logo
type Artifact struct {
	Path   string
	Size   int
	Format string
}

// Result lists the artifacts written by Generate, in plan order
type Result struct {
	Artifacts []Artifact
}

// Paths returns the artifact paths in plan order
func (r *Result) Paths() []string {
	out := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		out[i] = a.Path
	}
	return out
}

// Plan returns the fixed artifact list for a profile and store directory
func Plan(profileDir, storeDir string) []Artifact {
	plan := make([]Artifact, 0, 2*len(Sizes)+4)
	for _, size := range Sizes {
		plan = append(plan,
			Artifact{Path: filepath.Join(profileDir, fmt.Sprintf("logo%d.png", size)), Size: size, Format: FormatPNG},
			Artifact{Path: filepath.Join(storeDir, fmt.Sprintf("default%d.png", size)), Size: size, Format: FormatPNG},
		)
	}
	return append(plan,
		Artifact{Path: filepath.Join(storeDir, "firefox.ico"), Size: 512, Format: FormatICO},
		Artifact{Path: filepath.Join(storeDir, "firefox64.ico"), Size: 64, Format: FormatICO},
		Artifact{Path: filepath.Join(storeDir, ContentDir, "about-logo.png"), Size: 512, Format: FormatPNG},
		Artifact{Path: filepath.Join(storeDir, ContentDir, "about-logo@2x.png"), Size: 1024, Format: FormatPNG},
	)
}

// Generate renders every planned artifact from the logo at logoPath.
// The first failure cancels the remaining work and is returned once all
// workers have exited.
func Generate(ctx context.Context, fsys types.FS, logoPath, profileDir, storeDir string) (*Result, error) {
	logger := logging.GetLogger("icons")
	done := logging.LogOperationStart(logger, "generate icons")
	defer done()

	src, err := decodeLogo(fsys, logoPath)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	if b.Dx() != b.Dy() {
		logger.Warn().
			Str("logo", logoPath).
			Int("width", b.Dx()).
			Int("height", b.Dy()).
			Msg("Logo is not square; icons will be stretched")
	}

	plan := Plan(profileDir, storeDir)

	encoded, err := renderSizes(ctx, src, uniqueSizes(plan))
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, artifact := range plan {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data := encoded[artifact.Size]
			if artifact.Format == FormatICO {
				data = encodeICO(data, artifact.Size)
			}
			return writeArtifact(fsys, artifact, data)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("logo", logoPath).
		Int("artifacts", len(plan)).
		Msg("Generated icon set")

	return &Result{Artifacts: plan}, nil
}

func decodeLogo(fsys types.FS, logoPath string) (image.Image, error) {
	data, err := fsys.ReadFile(logoPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrImageDecode, "failed to read logo %s", logoPath).
			WithDetail("path", logoPath)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrImageDecode, "failed to decode logo %s", logoPath).
			WithDetail("path", logoPath)
	}
	return img, nil
}

// renderSizes scales src once per distinct size and PNG-encodes the result
func renderSizes(ctx context.Context, src image.Image, sizes []int) (map[int][]byte, error) {
	var mu sync.Mutex
	encoded := make(map[int][]byte, len(sizes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, size := range sizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := encodePNG(resize(src, size))
			if err != nil {
				return errors.Wrapf(err, errors.ErrImageWrite, "failed to encode %dpx icon", size)
			}
			mu.Lock()
			encoded[size] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return encoded, nil
}

func resize(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeArtifact(fsys types.FS, artifact Artifact, data []byte) error {
	dir := filepath.Dir(artifact.Path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrImageWrite, "failed to create %s", dir).
			WithDetail("path", artifact.Path)
	}
	if err := fsys.WriteFile(artifact.Path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrImageWrite, "failed to write %s", artifact.Path).
			WithDetail("path", artifact.Path)
	}
	return nil
}

func uniqueSizes(plan []Artifact) []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, a := range plan {
		if !seen[a.Size] {
			seen[a.Size] = true
			sizes = append(sizes, a.Size)
		}
	}
	sort.Ints(sizes)
	return sizes
}
