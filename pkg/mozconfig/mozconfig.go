// Package mozconfig assembles the engine's build configuration from the
// fork's common, per-platform and user-local fragments.
package mozconfig

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/paths"
	"github.com/arthur-debert/brander/pkg/synthfs"
	"github.com/arthur-debert/brander/pkg/template"
	"github.com/arthur-debert/brander/pkg/types"
)

// Header starts every generated mozconfig
const Header = "# This file is automatically generated. You should only modify this if you know what you are doing!\n\n"

const changesetPrefix = "export MOZ_SOURCE_CHANGESET="

// Supported build targets
var (
	SupportedOS   = []string{"linux", "macos", "windows"}
	SupportedArch = []string{"x86_64", "i686"}
)

var goosNames = map[string]string{
	"linux":   "linux",
	"darwin":  "macos",
	"windows": "windows",
}

// HostOS returns the build target name of the running platform
func HostOS() (string, error) {
	if name, ok := goosNames[runtime.GOOS]; ok {
		return name, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput,
		"unsupported host platform %q (supported: %s)", runtime.GOOS, strings.Join(SupportedOS, ", "))
}

// MergeOptions selects the fragments to merge
type MergeOptions struct {
	Layout  paths.Paths
	Product *config.Product
	OS      string
	Arch    string

	// Changeset replaces the MOZ_SOURCE_CHANGESET value when set
	Changeset string

	// FS defaults to the OS filesystem
	FS types.FS
}

// Merged holds the rendered common fragment and the full mozconfig
type Merged struct {
	Common  string
	Content string
}

func (o MergeOptions) fs() types.FS {
	if o.FS == nil {
		return filesystem.NewOS()
	}
	return o.FS
}

func (o MergeOptions) validate() error {
	if o.Layout == nil || o.Product == nil {
		return errors.New(errors.ErrInvalidInput, "layout and product are required")
	}
	if !contains(SupportedOS, o.OS) {
		return errors.Newf(errors.ErrInvalidInput,
			"unsupported OS %q (supported: %s)", o.OS, strings.Join(SupportedOS, ", "))
	}
	if o.Arch != "" && !contains(SupportedArch, o.Arch) {
		return errors.Newf(errors.ErrInvalidInput,
			"unsupported architecture %q (supported: %s)", o.Arch, strings.Join(SupportedArch, ", "))
	}
	return nil
}

// Merge renders the common, OS-specific and custom fragments and joins
// them under Header. The custom fragment is optional.
func Merge(opts MergeOptions) (*Merged, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	fsys := opts.fs()
	layout := opts.Layout

	ctx, err := templateContext(fsys, layout, opts.Product)
	if err != nil {
		return nil, err
	}

	common, err := readFragment(fsys, layout.CommonMozconfigPath(), true)
	if err != nil {
		return nil, err
	}
	common = template.Render(common, ctx)
	if opts.Changeset != "" {
		common = replaceChangeset(common, opts.Changeset)
	}

	osFragment, err := readFragment(fsys, layout.OSMozconfigPath(opts.OS, opts.Arch), true)
	if err != nil {
		return nil, err
	}

	custom, err := readFragment(fsys, layout.CustomMozconfigPath(), false)
	if err != nil {
		return nil, err
	}

	content := Header +
		common + "\n\n" +
		template.Render(osFragment, ctx) + "\n\n" +
		template.Render(custom, ctx)

	return &Merged{Common: common, Content: content}, nil
}

// Write merges the fragments, stores the result as the engine mozconfig
// and persists the rendered common fragment.
func Write(opts MergeOptions, dryRun bool) (*Merged, error) {
	logger := logging.GetLogger("mozconfig")

	merged, err := Merge(opts)
	if err != nil {
		return nil, err
	}

	fsys := opts.fs()
	layout := opts.Layout
	exec := synthfs.NewSynthfsExecutor(fsys, dryRun,
		filepath.Dir(layout.CommonMozconfigPath()), layout.EngineDir())

	err = exec.ExecuteOperations([]types.Operation{
		{
			Type:        types.OperationWriteFile,
			Target:      layout.CommonMozconfigPath(),
			Content:     []byte(merged.Common),
			Description: "Persist rendered common mozconfig",
			Status:      types.StatusReady,
		},
		{
			Type:        types.OperationWriteFile,
			Target:      layout.EngineMozconfigPath(),
			Content:     []byte(merged.Content),
			Description: "Write engine mozconfig",
			Status:      types.StatusReady,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("os", opts.OS).
		Str("arch", opts.Arch).
		Str("path", layout.EngineMozconfigPath()).
		Msg("Applied mozconfig")
	for _, line := range Summary(merged.Content) {
		logger.Debug().Str("option", line).Msg("mozconfig")
	}

	return merged, nil
}

// Summary returns the option lines of a mozconfig with their
// mk_add_options, ac_add_options or export prefix removed.
func Summary(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "mk_add_options "):
			lines = append(lines, strings.TrimPrefix(line, "mk_add_options "))
		case strings.HasPrefix(line, "ac_add_options "):
			lines = append(lines, strings.TrimPrefix(line, "ac_add_options "))
		case strings.HasPrefix(line, "export "):
			lines = append(lines, strings.TrimPrefix(line, "export "))
		}
	}
	return lines
}

// BrandingDir is the engine-relative branding directory the build uses
func BrandingDir(fsys types.FS, layout paths.Paths) (string, error) {
	exists, err := filesystem.Exists(fsys, filepath.Join(layout.EngineDir(), "branding", "melon"))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFilesystem, "failed to inspect engine branding")
	}
	if exists {
		return "branding/melon", nil
	}
	return "branding/" + paths.ReferenceBrandName, nil
}

func templateContext(fsys types.FS, layout paths.Paths, product *config.Product) (map[string]string, error) {
	brandingDir, err := BrandingDir(fsys, layout)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"name":        product.Name,
		"vendor":      product.Name, // not product.Vendor
		"appId":       product.AppID,
		"binaryName":  product.BinaryName,
		"brandingDir": brandingDir,
	}, nil
}

func replaceChangeset(common, changeset string) string {
	lines := strings.Split(common, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, changesetPrefix) && line != changesetPrefix {
			lines[i] = changesetPrefix + changeset
			break
		}
	}
	return strings.Join(lines, "\n")
}

func readFragment(fsys types.FS, path string, required bool) (string, error) {
	data, err := fsys.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	missing := errors.Is(err, fs.ErrNotExist)
	if missing && !required {
		return "", nil
	}
	if missing {
		return "", errors.Wrapf(err, errors.ErrNotFound, "mozconfig fragment not found: %s", path).
			WithDetail("path", path)
	}
	return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to read %s", path)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// String renders a one-line description of the target
func (o MergeOptions) String() string {
	if o.Arch == "" {
		return o.OS
	}
	return fmt.Sprintf("%s/%s", o.OS, o.Arch)
}
