package locale

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/synthfs"
	"github.com/arthur-debert/brander/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brandContext = map[string]string{
	"brandShorterName":    "Acme",
	"brandShortName":      "Acme",
	"brandFullName":       "Acme Browser",
	"brandingVendor":      "Acme Inc",
	"brandingGenericName": "Acme Browser",
}

func TestRender(t *testing.T) {
	root := testutil.TempDir(t, "locale")
	templateDir := testutil.CreateDir(t, root, "branding.optional")
	outputDir := testutil.CreateDir(t, root, "output")
	testutil.CreateFile(t, templateDir, "brand.ftl", testutil.LocaleTemplate)
	testutil.CreateFile(t, templateDir, "brand.properties", "brandShortName={{brandShortName}}\n")

	fsys := filesystem.NewOS()
	written, err := Render(fsys, synthfs.NewSynthfsExecutor(fsys, false, outputDir), templateDir, outputDir, brandContext)
	require.NoError(t, err)

	target := filepath.Join(outputDir, "locales", "en-US")
	assert.Equal(t, []string{
		filepath.Join(target, "brand.ftl"),
		filepath.Join(target, "brand.properties"),
	}, written)

	testutil.AssertFileContent(t, filepath.Join(target, "brand.properties"), "brandShortName=Acme\n")
	ftl := testutil.ReadFile(t, filepath.Join(target, "brand.ftl"))
	assert.Contains(t, ftl, "-brand-full-name = Acme Browser\n")
	assert.Contains(t, ftl, "trademarkInfo = Acme Browser is a trademark of Acme Inc.\n")
	assert.NotContains(t, ftl, "{{")
}

func TestRender_AlwaysOverwrites(t *testing.T) {
	root := testutil.TempDir(t, "locale-overwrite")
	templateDir := testutil.CreateDir(t, root, "branding.optional")
	outputDir := testutil.CreateDir(t, root, "output")
	testutil.CreateFile(t, templateDir, "brand.properties", "vendor={{brandingVendor}}")
	existing := testutil.CreateFile(t, outputDir, "locales/en-US/brand.properties", "vendor=Someone Else")

	fsys := filesystem.NewOS()
	_, err := Render(fsys, synthfs.NewSynthfsExecutor(fsys, false, outputDir), templateDir, outputDir, brandContext)
	require.NoError(t, err)

	testutil.AssertFileContent(t, existing, "vendor=Acme Inc")
}

func TestRender_KeepsUnknownPlaceholders(t *testing.T) {
	root := testutil.TempDir(t, "locale-partial")
	templateDir := testutil.CreateDir(t, root, "branding.optional")
	outputDir := testutil.CreateDir(t, root, "output")
	testutil.CreateFile(t, templateDir, "brand.dtd", "<!ENTITY vendorShortName \"{{brandingVendor}}\"> {{channel}}")

	fsys := filesystem.NewOS()
	_, err := Render(fsys, synthfs.NewSynthfsExecutor(fsys, false, outputDir), templateDir, outputDir, brandContext)
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(outputDir, "locales", "en-US", "brand.dtd"),
		"<!ENTITY vendorShortName \"Acme Inc\"> {{channel}}")
}

func TestRender_MissingTemplateDir(t *testing.T) {
	root := testutil.TempDir(t, "locale-missing")
	outputDir := testutil.CreateDir(t, root, "output")

	fsys := filesystem.NewOS()
	_, err := Render(fsys, synthfs.NewSynthfsExecutor(fsys, false, outputDir),
		filepath.Join(root, "nope"), outputDir, brandContext)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFilesystem))
}
