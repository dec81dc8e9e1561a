// Package locale renders the brand-owned locale files of an output tree.
package locale

import (
	"path/filepath"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/template"
	"github.com/arthur-debert/brander/pkg/types"
)

// DefaultLocale is the only locale brander generates
const DefaultLocale = "en-US"

// TargetDir returns the directory locale files are written to
func TargetDir(outputDir string) string {
	return filepath.Join(outputDir, "locales", DefaultLocale)
}

// Render renders every file of templateDir with ctx and writes the result
// to <outputDir>/locales/en-US/<file>, replacing existing files. It returns
// the written paths.
func Render(fsys types.FS, exec types.Executor, templateDir, outputDir string, ctx map[string]string) ([]string, error) {
	logger := logging.GetLogger("locale")

	files, err := filesystem.WalkFiles(fsys, templateDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem,
			"failed to read locale templates from %s", templateDir).
			WithDetail("path", templateDir)
	}

	targetDir := TargetDir(outputDir)
	ops := make([]types.Operation, 0, len(files))
	written := make([]string, 0, len(files))

	for _, rel := range files {
		source := filepath.Join(templateDir, rel)
		content, err := fsys.ReadFile(source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to read template %s", source)
		}

		rendered := template.Render(string(content), ctx)
		if missing := template.Unresolved(rendered, ctx); len(missing) > 0 {
			logger.Warn().
				Str("template", rel).
				Strs("placeholders", missing).
				Msg("Locale template has unresolved placeholders")
		}

		target := filepath.Join(targetDir, rel)
		ops = append(ops, types.Operation{
			Type:        types.OperationWriteFile,
			Target:      target,
			Content:     []byte(rendered),
			Description: "Render locale " + rel,
			Status:      types.StatusReady,
		})
		written = append(written, target)
	}

	if err := exec.ExecuteOperations(ops); err != nil {
		return nil, err
	}

	logger.Info().
		Str("templates", templateDir).
		Str("target", targetDir).
		Int("files", len(written)).
		Msg("Rendered locale files")

	return written, nil
}
