package brander

import (
	"fmt"

	"github.com/arthur-debert/brander/pkg/mozconfig"
	"github.com/spf13/cobra"
)

func newMozconfigCmd(opts *globalOptions) *cobra.Command {
	var (
		targetOS  string
		arch      string
		changeset string
	)

	cmd := &cobra.Command{
		Use:     "mozconfig",
		Short:   MsgMozconfigShort,
		Long:    MsgMozconfigLong,
		Example: MsgMozconfigExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, product, err := loadProject(cmd, opts)
			if err != nil {
				return err
			}

			if targetOS == "" {
				if targetOS, err = mozconfig.HostOS(); err != nil {
					return fmt.Errorf(MsgErrMozconfig, err)
				}
			}

			mergeOpts := mozconfig.MergeOptions{
				Layout:    p,
				Product:   product,
				OS:        targetOS,
				Arch:      arch,
				Changeset: changeset,
			}
			merged, err := mozconfig.Write(mergeOpts, opts.dryRun)
			if err != nil {
				return fmt.Errorf(MsgErrMozconfig, err)
			}

			err = newRenderer(cmd, opts).RenderMozconfig(mergeOpts.String(), p.EngineMozconfigPath(),
				mozconfig.Summary(merged.Content))
			if err != nil {
				return err
			}
			if opts.dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetOS, "os", "", MsgFlagOS)
	cmd.Flags().StringVar(&arch, "arch", "x86_64", MsgFlagArch)
	cmd.Flags().StringVar(&changeset, "changeset", "", MsgFlagChangeset)
	return cmd
}
