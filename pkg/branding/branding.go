package branding

import (
	"context"

	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/icons"
	"github.com/arthur-debert/brander/pkg/locale"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/paths"
	"github.com/arthur-debert/brander/pkg/profiles"
	"github.com/arthur-debert/brander/pkg/synthfs"
	"github.com/arthur-debert/brander/pkg/treesync"
	"github.com/arthur-debert/brander/pkg/types"
	"github.com/rs/zerolog"
)

// Step names, in execution order
const (
	StepValidate = "validate"
	StepResolve  = "resolve"
	StepClear    = "clear"
	StepIcons    = "icons"
	StepLocale   = "locale"
	StepSync     = "sync"
)

// ApplyOptions holds everything one apply needs
type ApplyOptions struct {
	Profile string
	Layout  paths.Paths
	Product *config.Product

	// FS defaults to the OS filesystem
	FS types.FS

	// DryRun validates and resolves, then logs what would be written
	DryRun bool
}

// ApplyResult reports what an apply produced
type ApplyResult struct {
	Profile   types.BrandProfile
	Config    *config.BrandingConfig
	OutputDir string
	DryRun    bool

	Icons   []string
	Locale  []string
	Synced  []string
	Skipped []string
}

// applyRun is the state threaded through the steps of one apply
type applyRun struct {
	opts   ApplyOptions
	fs     types.FS
	exec   types.Executor
	logger zerolog.Logger

	profile *types.BrandProfile
	result  *ApplyResult
}

type step struct {
	name string
	run  func(ctx context.Context, r *applyRun) error
}

var steps = []step{
	{StepValidate, validateStep},
	{StepResolve, resolveStep},
	{StepClear, clearStep},
	{StepIcons, iconsStep},
	{StepLocale, localeStep},
	{StepSync, syncStep},
}

// StepNames lists the apply steps in order
func StepNames() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

// Apply synthesizes the output tree of opts.Profile
func Apply(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	if opts.Layout == nil {
		return nil, errors.New(errors.ErrInvalidInput, "project layout is required")
	}
	if opts.Product == nil {
		return nil, errors.New(errors.ErrInvalidInput, "product configuration is required")
	}
	if opts.Profile == paths.ReferenceBrandName {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"%q is the reference tree and cannot be used as a profile", opts.Profile)
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	outputDir := opts.Layout.OutputDir(opts.Profile)
	r := &applyRun{
		opts:   opts,
		fs:     fsys,
		exec:   synthfs.NewSynthfsExecutor(fsys, opts.DryRun, outputDir),
		logger: logging.GetLogger("branding").With().Str("profile", opts.Profile).Logger(),
		result: &ApplyResult{OutputDir: outputDir, DryRun: opts.DryRun},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		done := logging.LogOperationStart(r.logger, s.name)
		err := s.run(ctx, r)
		done()
		if err != nil {
			r.logger.Error().Err(err).Str("step", s.name).Msg("Apply failed")
			return nil, wrapStep(err, s.name)
		}
	}

	r.logger.Info().
		Str("output", outputDir).
		Int("icons", len(r.result.Icons)).
		Int("locale", len(r.result.Locale)).
		Int("synced", len(r.result.Synced)).
		Int("skipped", len(r.result.Skipped)).
		Bool("dryRun", opts.DryRun).
		Msg("Branding applied")

	return r.result, nil
}

// wrapStep records the failing step while keeping the original code
func wrapStep(err error, name string) error {
	var brandErr *errors.BrandError
	if errors.As(err, &brandErr) {
		return brandErr.WithDetail("step", name)
	}
	return errors.Wrapf(err, errors.ErrInternal, "%s step failed", name).WithDetail("step", name)
}

func validateStep(_ context.Context, r *applyRun) error {
	profile, err := profiles.Validate(r.fs, r.opts.Layout, r.opts.Profile)
	if err != nil {
		return err
	}
	r.profile = profile
	r.result.Profile = *profile
	return nil
}

func resolveStep(_ context.Context, r *applyRun) error {
	cfg, err := config.ResolveBranding(r.opts.Product, r.opts.Profile)
	if err != nil {
		return err
	}
	r.result.Config = cfg
	return nil
}

func clearStep(_ context.Context, r *applyRun) error {
	out := r.result.OutputDir
	if r.opts.DryRun {
		r.logger.Info().Str("output", out).Msg("Would clear output tree")
		return nil
	}
	if err := r.fs.RemoveAll(out); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to clear %s", out)
	}
	if err := r.fs.MkdirAll(out, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create %s", out)
	}
	r.logger.Debug().Str("output", out).Msg("Output tree cleared")
	return nil
}

func iconsStep(ctx context.Context, r *applyRun) error {
	logo := profiles.LogoPath(r.profile)
	if r.opts.DryRun {
		for _, a := range icons.Plan(r.profile.Path, r.result.OutputDir) {
			r.logger.Info().Str("target", a.Path).Int("size", a.Size).Msg("Would render icon")
			r.result.Icons = append(r.result.Icons, a.Path)
		}
		return nil
	}
	res, err := icons.Generate(ctx, r.fs, logo, r.profile.Path, r.result.OutputDir)
	if err != nil {
		return err
	}
	r.result.Icons = res.Paths()
	return nil
}

func localeStep(_ context.Context, r *applyRun) error {
	templateDir := r.opts.Layout.LocaleTemplatesDir()
	exists, err := filesystem.Exists(r.fs, templateDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to access %s", templateDir)
	}
	if !exists {
		r.logger.Warn().Str("templates", templateDir).Msg("No locale templates found, skipping")
		return nil
	}

	written, err := locale.Render(r.fs, r.exec, templateDir, r.result.OutputDir, r.result.Config.Context())
	if err != nil {
		return err
	}
	r.result.Locale = written
	return nil
}

func syncStep(_ context.Context, r *applyRun) error {
	res, err := treesync.Sync(r.fs, r.exec, r.opts.Layout.ReferenceDir(), r.result.OutputDir, r.result.Config.BackgroundColor)
	if err != nil {
		return err
	}
	r.result.Synced = res.Written()
	r.result.Skipped = res.Skipped
	return nil
}

// List returns the available branding profiles
func List(fsys types.FS, layout paths.Paths) ([]types.BrandProfile, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return profiles.List(fsys, layout)
}
