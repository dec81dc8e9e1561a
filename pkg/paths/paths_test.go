package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		projectRoot string
		envSetup    map[string]string
		validate    func(t *testing.T, p Paths)
	}{
		{
			name:        "explicit project root",
			projectRoot: "/tmp/fork",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/fork", p.ProjectRoot())
				assert.False(t, p.UsedFallback())
			},
		},
		{
			name: "from BRANDER_ROOT env",
			envSetup: map[string]string{
				EnvProjectRoot: "/env/fork",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/fork", p.ProjectRoot())
			},
		},
		{
			name: "git repository or fallback",
			validate: func(t *testing.T, p Paths) {
				assert.NotEmpty(t, p.ProjectRoot())
				assert.True(t, filepath.IsAbs(p.ProjectRoot()), "Path should be absolute")
			},
		},
		{
			name:        "expand tilde in explicit path",
			projectRoot: "~/my-fork",
			validate: func(t *testing.T, p Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "my-fork"), p.ProjectRoot())
			},
		},
		{
			name:        "templates and state overrides",
			projectRoot: "/tmp/fork",
			envSetup: map[string]string{
				EnvTemplatesDir: "/opt/brander/templates",
				EnvStateDir:     "/var/state/brander",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/opt/brander/templates", p.TemplatesDir())
				assert.Equal(t, "/opt/brander/templates/branding.optional", p.LocaleTemplatesDir())
				assert.Equal(t, "/var/state/brander/brander.log", p.LogFilePath())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvProjectRoot, "")
			t.Setenv(EnvTemplatesDir, "")
			t.Setenv(EnvStateDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.projectRoot)
			require.NoError(t, err)
			tt.validate(t, p)
		})
	}
}

func TestLayout(t *testing.T) {
	t.Setenv(EnvTemplatesDir, "")
	p, err := New("/work/fork")
	require.NoError(t, err)

	assert.Equal(t, "/work/fork/brander.toml", p.ProjectConfigPath())
	assert.Equal(t, "/work/fork/configs/branding", p.BrandingDir())
	assert.Equal(t, "/work/fork/configs/branding/acme", p.ProfileDir("acme"))
	assert.Equal(t, "/work/fork/engine/browser/branding", p.StoreDir())
	assert.Equal(t, "/work/fork/engine/browser/branding/acme", p.OutputDir("acme"))
	assert.Equal(t, "/work/fork/engine/browser/branding/unofficial", p.ReferenceDir())
	assert.Equal(t, "/work/fork/templates/branding.optional", p.LocaleTemplatesDir())
	assert.Equal(t, "/work/fork/engine/browser/config/version.txt", p.EngineVersionPath())
	assert.Equal(t, "/work/fork/engine/mozconfig", p.EngineMozconfigPath())
	assert.Equal(t, "/work/fork/mozconfig", p.CustomMozconfigPath())
}

func TestOSMozconfigPath(t *testing.T) {
	p, err := New("/work/fork")
	require.NoError(t, err)

	assert.Equal(t, "/work/fork/configs/linux/mozconfig", p.OSMozconfigPath("linux", "x86_64"))
	assert.Equal(t, "/work/fork/configs/windows/mozconfig-i686", p.OSMozconfigPath("windows", "i686"))
	assert.Equal(t, "/work/fork/configs/common/mozconfig", p.CommonMozconfigPath())
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", expandHome(""))
	assert.Equal(t, homeDir, expandHome("~"))
	assert.Equal(t, filepath.Join(homeDir, "x"), expandHome("~/x"))
	assert.Equal(t, "~other/x", expandHome("~other/x"))
	assert.Equal(t, "/abs", expandHome("/abs"))
}
