package brander

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/brander/internal/version"
	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/paths"
	"github.com/arthur-debert/brander/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// engineVersion reads the version the engine checkout reports. An engine
// without version.txt reports "".
func engineVersion(fsys types.FS, p paths.Paths) (string, error) {
	exists, err := filesystem.Exists(fsys, p.EngineVersionPath())
	if err != nil || !exists {
		return "", err
	}
	data, err := fsys.ReadFile(p.EngineVersionPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// versionMismatch reports whether the engine disagrees with the product
func versionMismatch(reported string, product *config.Product) bool {
	return reported != "" && product.Version.Product != "" && reported != product.Version.Product
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionLine, version.Version)
			fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			fmt.Fprintf(out, MsgVersionDate, version.Date)

			// Outside a project there is nothing to compare against
			p, err := paths.New(opts.root)
			if err != nil {
				return nil
			}
			product, err := config.LoadProduct(p.ProjectConfigPath())
			if err != nil {
				log.Debug().Err(err).Msg("No product configuration, skipping engine version check")
				return nil
			}

			reported, err := engineVersion(filesystem.NewOS(), p)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to read engine version")
				return nil
			}
			if reported != "" {
				fmt.Fprintf(out, MsgEngineVersion, reported)
			}
			if versionMismatch(reported, product) {
				return newRenderer(cmd, opts).RenderWarning(fmt.Sprintf(MsgVersionMismatch, reported, product.Version.Product))
			}
			return nil
		},
	}
}
