// Package treesync copies a reference branding tree into an output tree
// without touching files that are already there.
//
// Any file present at the destination is an intentional override and is
// skipped. Stylesheets have their legacy background colors replaced with a
// --theme-bg custom property defined from the brand's background color;
// every other file is copied byte for byte.
package treesync

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/brander/pkg/errors"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/types"
)

// ThemeVariable is the custom property injected into stylesheets
const ThemeVariable = "--theme-bg"

// legacyColors are the reference tree's hardcoded background colors.
// The character before the alpha 5 is left unconstrained.
var legacyColors = regexp.MustCompile(`#130829|hsla\(235, 43%, 10%, .5\)`)

// Result reports what a sync did, as paths relative to the output tree
type Result struct {
	Copied    []string
	Rewritten []string
	Skipped   []string
}

// Written returns every path the sync created
func (r *Result) Written() []string {
	out := make([]string, 0, len(r.Copied)+len(r.Rewritten))
	out = append(out, r.Copied...)
	return append(out, r.Rewritten...)
}

// IsStylesheet reports whether rel gets the color rewrite
func IsStylesheet(rel string) bool {
	return strings.Contains(strings.ToLower(filepath.Ext(rel)), "css")
}

// RewriteStylesheet swaps legacy colors for the theme variable and appends
// a :root rule defining it.
func RewriteStylesheet(content, backgroundColor string) string {
	rewritten := legacyColors.ReplaceAllLiteralString(content, fmt.Sprintf("var(%s)", ThemeVariable))
	return rewritten + fmt.Sprintf(":root { %s: %s }", ThemeVariable, backgroundColor)
}

// Plan computes the operations needed to sync referenceTree into
// outputTree. Existence checks all happen here, before anything is written.
func Plan(fsys types.FS, referenceTree, outputTree, backgroundColor string) ([]types.Operation, *Result, error) {
	files, err := filesystem.WalkFiles(fsys, referenceTree)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrFilesystem,
			"failed to walk reference tree %s", referenceTree).
			WithDetail("path", referenceTree)
	}

	result := &Result{}
	ops := make([]types.Operation, 0, len(files))

	for _, rel := range files {
		source := filepath.Join(referenceTree, rel)
		target := filepath.Join(outputTree, rel)

		exists, err := filesystem.Exists(fsys, target)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to check %s", target)
		}
		if exists {
			result.Skipped = append(result.Skipped, rel)
			ops = append(ops, types.Operation{
				Type:        types.OperationCopyFile,
				Source:      source,
				Target:      target,
				Description: "Keep existing " + rel,
				Status:      types.StatusSkipped,
			})
			continue
		}

		if !IsStylesheet(rel) {
			result.Copied = append(result.Copied, rel)
			ops = append(ops, types.Operation{
				Type:        types.OperationCopyFile,
				Source:      source,
				Target:      target,
				Description: "Copy " + rel,
				Status:      types.StatusReady,
			})
			continue
		}

		content, err := fsys.ReadFile(source)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to read %s", source)
		}
		result.Rewritten = append(result.Rewritten, rel)
		ops = append(ops, types.Operation{
			Type:        types.OperationWriteFile,
			Target:      target,
			Content:     []byte(RewriteStylesheet(string(content), backgroundColor)),
			Description: "Rewrite stylesheet " + rel,
			Status:      types.StatusReady,
		})
	}

	return ops, result, nil
}

// Sync plans and executes the sync of referenceTree into outputTree
func Sync(fsys types.FS, exec types.Executor, referenceTree, outputTree, backgroundColor string) (*Result, error) {
	logger := logging.GetLogger("treesync")

	ops, result, err := Plan(fsys, referenceTree, outputTree, backgroundColor)
	if err != nil {
		return nil, err
	}

	for _, rel := range result.Skipped {
		logger.Debug().Str("path", rel).Msg("Destination exists, skipping")
	}

	if err := exec.ExecuteOperations(ops); err != nil {
		return nil, err
	}

	logger.Info().
		Str("reference", referenceTree).
		Str("output", outputTree).
		Int("copied", len(result.Copied)).
		Int("rewritten", len(result.Rewritten)).
		Int("skipped", len(result.Skipped)).
		Msg("Synchronized reference tree")

	return result, nil
}
