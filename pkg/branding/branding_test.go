package branding

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/paths"
	"github.com/arthur-debert/brander/pkg/testutil"
	"github.com/arthur-debert/brander/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) (*testutil.Project, ApplyOptions) {
	t.Helper()
	t.Setenv(paths.EnvTemplatesDir, "")

	project := testutil.NewProject(t)
	layout, err := paths.New(project.Root)
	require.NoError(t, err)

	product, err := config.LoadProduct(layout.ProjectConfigPath())
	require.NoError(t, err)

	return project, ApplyOptions{Profile: "stable", Layout: layout, Product: product}
}

func TestApply(t *testing.T) {
	project, opts := setupProject(t)

	result, err := Apply(context.Background(), opts)
	require.NoError(t, err)

	out := project.OutputDir("stable")
	assert.Equal(t, out, result.OutputDir)
	assert.Equal(t, "stable", result.Profile.Name)
	assert.Len(t, result.Icons, 20)
	assert.Len(t, result.Locale, 2)
	assert.ElementsMatch(t, []string{
		"configure.sh",
		"content/about-wordmark.svg",
		"content/aboutDialog.css",
		"pref/firefox-branding.js",
	}, result.Synced)
	assert.Empty(t, result.Skipped)

	assert.True(t, testutil.FileExists(t, filepath.Join(out, "default256.png")))
	assert.True(t, testutil.FileExists(t, filepath.Join(out, "firefox.ico")))
	assert.True(t, testutil.FileExists(t, filepath.Join(out, "content", "about-logo@2x.png")))
	assert.True(t, testutil.FileExists(t, filepath.Join(project.ProfileDir(), "stable", "logo16.png")))

	css := testutil.ReadFile(t, filepath.Join(out, "content", "aboutDialog.css"))
	assert.Contains(t, css, ":root { --theme-bg: #fff }")

	ftl := testutil.ReadFile(t, filepath.Join(out, "locales", "en-US", "brand.ftl"))
	assert.Contains(t, ftl, "-brand-short-name = Acme\n")
	assert.Contains(t, ftl, "-brand-shorter-name = Nightly\n")
	assert.Contains(t, ftl, "-vendor-short-name = Acme\n")
	assert.Contains(t, ftl, "trademarkInfo = Acme Browser is a trademark of Acme.\n")
}

func TestApply_Idempotent(t *testing.T) {
	project, opts := setupProject(t)

	_, err := Apply(context.Background(), opts)
	require.NoError(t, err)
	firstOut := testutil.SnapshotTree(t, project.OutputDir("stable"))
	firstProfile := testutil.SnapshotTree(t, filepath.Join(project.ProfileDir(), "stable"))

	_, err = Apply(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, firstOut, testutil.SnapshotTree(t, project.OutputDir("stable")))
	assert.Equal(t, firstProfile, testutil.SnapshotTree(t, filepath.Join(project.ProfileDir(), "stable")))
}

func TestApply_ClearsOutputTree(t *testing.T) {
	project, opts := setupProject(t)
	stale := testutil.CreateFile(t, project.OutputDir("stable"), "content/aboutDialog.css", "/* stale */")
	leftover := testutil.CreateFile(t, project.OutputDir("stable"), "leftover.txt", "x")

	result, err := Apply(context.Background(), opts)
	require.NoError(t, err)

	testutil.AssertNoFile(t, leftover)
	assert.Empty(t, result.Skipped)
	assert.Contains(t, testutil.ReadFile(t, stale), "var(--theme-bg)")
}

func TestApply_MissingLogoWritesNothing(t *testing.T) {
	project, opts := setupProject(t)
	project.AddProfile(t, "nologo", 0)
	opts.Profile = "nologo"

	before := testutil.SnapshotTree(t, project.Root)

	_, err := Apply(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingAsset))
	assert.Equal(t, StepValidate, errors.GetErrorDetails(err)["step"])

	assert.Equal(t, before, testutil.SnapshotTree(t, project.Root))
	assert.False(t, testutil.DirExists(t, project.OutputDir("nologo")))
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, p *testutil.Project, o *ApplyOptions)
		errCode errors.ErrorCode
	}{
		{
			name: "unknown profile",
			mutate: func(t *testing.T, p *testutil.Project, o *ApplyOptions) {
				o.Profile = "nightly"
			},
			errCode: errors.ErrProfileNotFound,
		},
		{
			name: "reference tree as profile",
			mutate: func(t *testing.T, p *testutil.Project, o *ApplyOptions) {
				o.Profile = paths.ReferenceBrandName
			},
			errCode: errors.ErrInvalidInput,
		},
		{
			name: "undecodable logo",
			mutate: func(t *testing.T, p *testutil.Project, o *ApplyOptions) {
				dir := p.AddProfile(t, "broken", 0)
				testutil.CreateFile(t, dir, "logo.png", "not a png")
				o.Profile = "broken"
			},
			errCode: errors.ErrImageDecode,
		},
		{
			name: "missing reference tree",
			mutate: func(t *testing.T, p *testutil.Project, o *ApplyOptions) {
				require.NoError(t, os.RemoveAll(p.ReferenceDir()))
			},
			errCode: errors.ErrFilesystem,
		},
		{
			name: "missing product",
			mutate: func(t *testing.T, p *testutil.Project, o *ApplyOptions) {
				o.Product = nil
			},
			errCode: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, opts := setupProject(t)
			tt.mutate(t, project, &opts)

			_, err := Apply(context.Background(), opts)
			require.Error(t, err)
			assert.Equal(t, tt.errCode, errors.GetErrorCode(err))
		})
	}
}

func TestApply_DecodeFailureStopsBeforeSync(t *testing.T) {
	project, opts := setupProject(t)
	dir := project.AddProfile(t, "broken", 0)
	testutil.CreateFile(t, dir, "logo.png", "not a png")
	opts.Profile = "broken"

	_, err := Apply(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, StepIcons, errors.GetErrorDetails(err)["step"])
	assert.Empty(t, testutil.SnapshotTree(t, project.OutputDir("broken")))
}

func TestApply_WithoutLocaleTemplates(t *testing.T) {
	project, opts := setupProject(t)
	require.NoError(t, os.RemoveAll(filepath.Join(project.Root, "templates")))

	result, err := Apply(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, result.Locale)
	assert.Len(t, result.Synced, 4)
}

func TestApply_DryRun(t *testing.T) {
	project, opts := setupProject(t)
	opts.DryRun = true

	before := testutil.SnapshotTree(t, project.Root)

	result, err := Apply(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Len(t, result.Icons, 20)
	assert.Len(t, result.Synced, 4)

	assert.Equal(t, before, testutil.SnapshotTree(t, project.Root))
}

func TestApply_CancelledContext(t *testing.T) {
	_, opts := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Apply(ctx, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, []string{"validate", "resolve", "clear", "icons", "locale", "sync"}, StepNames())
}

func TestList(t *testing.T) {
	project, opts := setupProject(t)
	project.AddProfile(t, "beta", 16)

	list, err := List(nil, opts.Layout)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "beta", list[0].Name)
	assert.Equal(t, "stable", list[1].Name)
}

// mirrorToMemory copies the on-disk tree under root into a memory
// filesystem at the same absolute paths.
func mirrorToMemory(t *testing.T, root string) types.FS {
	t.Helper()

	mem := filesystem.NewMemory()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return mem.MkdirAll(path, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return mem.WriteFile(path, data, 0644)
	})
	require.NoError(t, err)
	return mem
}

func TestApply_InMemoryFilesystem(t *testing.T) {
	project, opts := setupProject(t)
	mem := mirrorToMemory(t, project.Root)
	opts.FS = mem

	result, err := Apply(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, result.Synced, 4)

	out := project.OutputDir("stable")
	assert.False(t, testutil.DirExists(t, out), "nothing may be written to disk")
	assert.False(t, testutil.FileExists(t, filepath.Join(project.ProfileDir(), "stable", "logo16.png")))

	for _, rel := range []string{
		"default16.png",
		"firefox.ico",
		"configure.sh",
		"content/about-wordmark.svg",
		"content/aboutDialog.css",
		"pref/firefox-branding.js",
		"locales/en-US/brand.ftl",
		"locales/en-US/brand.properties",
	} {
		exists, err := filesystem.Exists(mem, filepath.Join(out, rel))
		require.NoError(t, err)
		assert.True(t, exists, rel)
	}

	css, err := mem.ReadFile(filepath.Join(out, "content", "aboutDialog.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), ":root { --theme-bg: #fff }")

	ftl, err := mem.ReadFile(filepath.Join(out, "locales", "en-US", "brand.ftl"))
	require.NoError(t, err)
	assert.Contains(t, string(ftl), "-brand-short-name = Acme\n")

	svg, err := mem.ReadFile(filepath.Join(out, "content", "about-wordmark.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg id=\"wordmark\"/>", string(svg))
}
