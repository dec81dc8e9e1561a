// Package profiles discovers and validates branding profiles.
//
// A profile is a directory under <project>/configs/branding whose name is
// the profile key. It must contain every file in types.RequiredProfileFiles
// before anything is written on its behalf.
package profiles

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/paths"
	"github.com/arthur-debert/brander/pkg/types"
)

// List returns every profile directory, sorted by name. A project without a
// branding directory has no profiles.
func List(fsys types.FS, layout paths.Paths) ([]types.BrandProfile, error) {
	dir := layout.BrandingDir()

	exists, err := filesystem.Exists(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to access %s", dir)
	}
	if !exists {
		return []types.BrandProfile{}, nil
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to list profiles in %s", dir)
	}

	profiles := make([]types.BrandProfile, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		profiles = append(profiles, types.BrandProfile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// Validate checks that the named profile exists and holds every required
// file. All missing files are reported together.
func Validate(fsys types.FS, layout paths.Paths, name string) (*types.BrandProfile, error) {
	logger := logging.GetLogger("profiles")

	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid profile name %q", name)
	}

	dir := layout.ProfileDir(name)
	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		e := errors.Newf(errors.ErrProfileNotFound,
			"no branding profile named %q (looked in %s)", name, layout.BrandingDir()).
			WithDetail("profile", name).
			WithDetail("path", dir)
		if err != nil {
			e.Wrapped = err
		}
		return nil, e
	}

	var missing []string
	for _, required := range types.RequiredProfileFiles {
		path := filepath.Join(dir, required)
		exists, err := filesystem.Exists(fsys, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to access %s", path)
		}
		if !exists {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrMissingAsset,
			"profile %q is missing required files: %s", name, strings.Join(missing, ", ")).
			WithDetail("profile", name).
			WithDetail("missing", missing)
	}

	logger.Debug().Str("profile", name).Str("path", dir).Msg("Profile validated")

	return &types.BrandProfile{Name: name, Path: dir}, nil
}

// Resolve validates the profile and merges its branding configuration
func Resolve(fsys types.FS, layout paths.Paths, product *config.Product, name string) (*types.BrandProfile, *config.BrandingConfig, error) {
	profile, err := Validate(fsys, layout, name)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.ResolveBranding(product, name)
	if err != nil {
		return nil, nil, err
	}

	return profile, cfg, nil
}

// LogoPath returns the master logo of a profile
func LogoPath(profile *types.BrandProfile) string {
	return filepath.Join(profile.Path, types.RequiredProfileFiles[0])
}
