package testutil

import (
	"path/filepath"
	"testing"
)

// DefaultProjectConfig is a brander.toml with one brand override table
const DefaultProjectConfig = `name = "Acme Browser"
vendor = "Acme"
appId = "org.acme.browser"
binaryName = "acme"

[version]
product = "102.0"
displayVersion = "1.0.0"

[brands.stable]
backgroundColor = "#fff"
brandShortName = "Acme"
brandFullName = "Acme Browser"
`

// ReferenceCSS contains both legacy color literals
const ReferenceCSS = `#aboutDialogContainer {
  background-color: #130829;
  color: #fff;
}

.overlay {
  background: hsla(235, 43%, 10%, .5);
}
`

// LocaleTemplate uses identity and brand placeholders
const LocaleTemplate = `-brand-shorter-name = {{brandShorterName}}
-brand-short-name = {{brandShortName}}
-brand-full-name = {{brandFullName}}
-vendor-short-name = {{brandingVendor}}
trademarkInfo = {{brandingGenericName}} is a trademark of {{brandingVendor}}.
`

// Project is an on-disk fork layout rooted in a temp directory
type Project struct {
	Root string
}

// NewProject creates a project with brander.toml, a "stable" profile holding
// a 64px logo, a reference tree, and one locale template.
func NewProject(t *testing.T) *Project {
	t.Helper()

	p := &Project{Root: TempDir(t, "brander-project")}
	CreateFile(t, p.Root, "brander.toml", DefaultProjectConfig)
	p.AddProfile(t, "stable", 64)

	ref := p.ReferenceDir()
	CreateFile(t, ref, filepath.Join("content", "aboutDialog.css"), ReferenceCSS)
	CreateFile(t, ref, filepath.Join("content", "about-wordmark.svg"), "<svg id=\"wordmark\"/>")
	CreateFile(t, ref, "configure.sh", "MOZ_APP_DISPLAYNAME=Nightly\n")
	CreateFile(t, ref, "pref/firefox-branding.js", "pref(\"startup.homepage_welcome_url\", \"\");\n")

	CreateFile(t, filepath.Join(p.Root, "templates", "branding.optional"), "brand.ftl", LocaleTemplate)
	CreateFile(t, filepath.Join(p.Root, "templates", "branding.optional"), "brand.properties",
		"brandShortName={{brandShortName}}\nvendorShortName={{brandingVendor}}\n")

	return p
}

// AddProfile creates a profile directory; a logoSize of 0 omits logo.png.
func (p *Project) AddProfile(t *testing.T, name string, logoSize int) string {
	t.Helper()

	dir := CreateDir(t, p.ProfileDir(), name)
	if logoSize > 0 {
		WriteLogo(t, filepath.Join(dir, "logo.png"), logoSize)
	}
	return dir
}

func (p *Project) ProfileDir() string {
	return filepath.Join(p.Root, "configs", "branding")
}

func (p *Project) ReferenceDir() string {
	return filepath.Join(p.Root, "engine", "browser", "branding", "unofficial")
}

func (p *Project) OutputDir(name string) string {
	return filepath.Join(p.Root, "engine", "browser", "branding", name)
}
