package brander

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/brander/internal/version"
	"github.com/arthur-debert/brander/pkg/branding"
	"github.com/arthur-debert/brander/pkg/cobrax/topics"
	"github.com/arthur-debert/brander/pkg/config"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/output"
	"github.com/arthur-debert/brander/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	dryRun    bool
	root      string
	noColor   bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "brander",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newMozconfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	initTopics(rootCmd)

	return rootCmd
}

// initTopics installs `brander help <topic>` backed by the embedded topics
func initTopics(rootCmd *cobra.Command) {
	var renderer topics.Renderer = &topics.PlainRenderer{}
	if isTerminal() {
		renderer = topics.NewGlamourRenderer()
	}

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, source, topics.Options{Renderer: renderer})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}

// initPaths resolves the project layout and warns when it had to fall back
// to the working directory.
func initPaths(cmd *cobra.Command, opts *globalOptions) (paths.Paths, error) {
	p, err := paths.New(opts.root)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.ProjectRoot())
	}
	log.Debug().Str("root", p.ProjectRoot()).Msg("Project root resolved")

	return p, nil
}

func loadProject(cmd *cobra.Command, opts *globalOptions) (paths.Paths, *config.Product, error) {
	p, err := initPaths(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	product, err := config.LoadProduct(p.ProjectConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadProduct, err)
	}
	return p, product, nil
}

func newRenderer(cmd *cobra.Command, opts *globalOptions) *output.Renderer {
	noColor := opts.noColor
	if !noColor {
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			noColor = output.DetectFormat(f) == output.FormatText
		} else {
			noColor = true
		}
	}
	return output.NewRenderer(cmd.OutOrStdout(), noColor)
}

// profileNamesCompletion provides shell completion for profile names
func profileNamesCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		p, err := paths.New(opts.root)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		profiles, err := branding.List(nil, p)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names := make([]string, 0, len(profiles))
		for _, profile := range profiles {
			names = append(names, profile.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths(cmd, opts)
			if err != nil {
				return err
			}

			log.Info().Str("branding_dir", p.BrandingDir()).Msg("Listing branding profiles")

			profiles, err := branding.List(nil, p)
			if err != nil {
				return fmt.Errorf(MsgErrListProfiles, err)
			}
			return newRenderer(cmd, opts).RenderProfiles(profiles)
		},
	}
}

func newApplyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "apply <profile>",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, product, err := loadProject(cmd, opts)
			if err != nil {
				return err
			}

			result, err := branding.Apply(cmd.Context(), branding.ApplyOptions{
				Profile: args[0],
				Layout:  p,
				Product: product,
				DryRun:  opts.dryRun,
			})
			if err != nil {
				return fmt.Errorf(MsgErrApply, err)
			}

			if err := newRenderer(cmd, opts).RenderApply(result); err != nil {
				return err
			}
			if opts.dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
