// Package paths provides centralized path handling for brander.
// It resolves the project root and derives every directory the branding
// pipeline reads from or writes to.
package paths

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/brander/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot is the primary environment variable for the project location
	EnvProjectRoot = "BRANDER_ROOT"

	// EnvTemplatesDir overrides the directory holding brander's text templates
	EnvTemplatesDir = "BRANDER_TEMPLATES_DIR"

	// EnvStateDir overrides the XDG state directory for brander
	EnvStateDir = "BRANDER_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed project layout. These mirror the upstream engine tree and are not
// user-configurable.
const (
	AppDirName        = "brander"
	ProjectConfigFile = "brander.toml"
	ConfigsDirName    = "configs"
	BrandingDirName   = "branding"
	EngineDirName     = "engine"
	TemplatesDirName  = "templates"

	// ReferenceBrandName is the unbranded default tree shipped with the engine
	ReferenceBrandName = "unofficial"

	// LocaleTemplatesDirName holds the optional branding locale templates
	LocaleTemplatesDirName = "branding.optional"

	MozconfigFile = "mozconfig"
	LogFileName   = "brander.log"
)

// Paths provides centralized path management for brander
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ProjectConfigPath() string
	ConfigsDir() string
	BrandingDir() string
	ProfileDir(name string) string
	EngineDir() string
	StoreDir() string
	OutputDir(name string) string
	ReferenceDir() string
	TemplatesDir() string
	LocaleTemplatesDir() string
	CommonMozconfigPath() string
	OSMozconfigPath(osName, arch string) string
	CustomMozconfigPath() string
	EngineMozconfigPath() string
	EngineVersionPath() string
	StateDir() string
	LogFilePath() string
}

// paths is immutable once built
type paths struct {
	projectRoot  string
	templatesDir string
	stateDir     string
	usedFallback bool
}

// New creates a new Paths instance with the given project root.
// If projectRoot is empty, it will be determined from environment variables,
// the enclosing git repository, or the current directory.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	if dir := os.Getenv(EnvTemplatesDir); dir != "" {
		p.templatesDir = expandHome(dir)
	} else {
		p.templatesDir = filepath.Join(absRoot, TemplatesDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = expandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p, nil
}

// findProjectRoot determines the project root using the following priority:
// 1. BRANDER_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findProjectRoot() (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFilesystem, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func (p *paths) ProjectRoot() string { return p.projectRoot }

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool { return p.usedFallback }

func (p *paths) ProjectConfigPath() string {
	return filepath.Join(p.projectRoot, ProjectConfigFile)
}

func (p *paths) ConfigsDir() string {
	return filepath.Join(p.projectRoot, ConfigsDirName)
}

// BrandingDir is the profiles root: every subdirectory is a profile
func (p *paths) BrandingDir() string {
	return filepath.Join(p.ConfigsDir(), BrandingDirName)
}

func (p *paths) ProfileDir(name string) string {
	return filepath.Join(p.BrandingDir(), name)
}

func (p *paths) EngineDir() string {
	return filepath.Join(p.projectRoot, EngineDirName)
}

// StoreDir is the engine's branding directory receiving synthesized trees
func (p *paths) StoreDir() string {
	return filepath.Join(p.EngineDir(), "browser", BrandingDirName)
}

func (p *paths) OutputDir(name string) string {
	return filepath.Join(p.StoreDir(), name)
}

func (p *paths) ReferenceDir() string {
	return filepath.Join(p.StoreDir(), ReferenceBrandName)
}

func (p *paths) TemplatesDir() string { return p.templatesDir }

func (p *paths) LocaleTemplatesDir() string {
	return filepath.Join(p.templatesDir, LocaleTemplatesDirName)
}

func (p *paths) CommonMozconfigPath() string {
	return filepath.Join(p.ConfigsDir(), "common", MozconfigFile)
}

// OSMozconfigPath returns the per-platform fragment; i686 builds use their own file
func (p *paths) OSMozconfigPath(osName, arch string) string {
	name := MozconfigFile
	if arch == "i686" {
		name = MozconfigFile + "-i686"
	}
	return filepath.Join(p.ConfigsDir(), osName, name)
}

// CustomMozconfigPath is the uncommitted user fragment at the project root
func (p *paths) CustomMozconfigPath() string {
	return filepath.Join(p.projectRoot, MozconfigFile)
}

func (p *paths) EngineMozconfigPath() string {
	return filepath.Join(p.EngineDir(), MozconfigFile)
}

func (p *paths) EngineVersionPath() string {
	return filepath.Join(p.EngineDir(), "browser", "config", "version.txt")
}

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// String is used in debug output
func (p *paths) String() string {
	return fmt.Sprintf("paths{root=%s templates=%s}", p.projectRoot, p.templatesDir)
}
