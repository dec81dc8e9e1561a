package brander

import (
	"fmt"

	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/output"
	"github.com/arthur-debert/brander/pkg/profiles"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// showDocument is the TOML shape of `brander show --format toml`
type showDocument struct {
	Profile  string            `toml:"profile"`
	Product  *config.Product   `toml:"product"`
	Branding map[string]string `toml:"branding"`
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "show <profile>",
		Short:             MsgShowShort,
		Long:              MsgShowLong,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "markdown" && format != "toml" {
				return fmt.Errorf(MsgErrFormat, format)
			}

			p, product, err := loadProject(cmd, opts)
			if err != nil {
				return err
			}

			_, cfg, err := profiles.Resolve(filesystem.NewOS(), p, product, args[0])
			if err != nil {
				return fmt.Errorf(MsgErrShow, err)
			}

			if format == "toml" {
				data, err := toml.Marshal(showDocument{
					Profile:  args[0],
					Product:  product,
					Branding: cfg.Context(),
				})
				if err != nil {
					return fmt.Errorf(MsgErrShow, err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			return newRenderer(cmd, opts).RenderMarkdown(output.ConfigReport(product, cfg))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", MsgFlagFormat)
	return cmd
}
