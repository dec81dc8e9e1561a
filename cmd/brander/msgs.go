package brander

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rebrand a browser engine checkout"
	MsgListShort       = "List branding profiles"
	MsgListLong        = "List displays every profile directory under configs/branding."
	MsgApplyShort      = "Apply a branding profile to the engine tree"
	MsgShowShort       = "Show the resolved branding configuration of a profile"
	MsgMozconfigShort  = "Generate the engine mozconfig"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgVersionLine     = "brander version %s\n"
	MsgVersionCommit   = "  commit: %s\n"
	MsgVersionDate     = "  built:  %s\n"
	MsgEngineVersion   = "  engine: %s\n"
	MsgVersionMismatch = "engine reports version %s but brander.toml expects %s; update version.product or check out the matching engine"

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrLoadProduct  = "failed to load product configuration: %w"
	MsgErrListProfiles = "failed to list profiles: %w"
	MsgErrApply        = "failed to apply branding: %w"
	MsgErrShow         = "failed to resolve branding: %w"
	MsgErrMozconfig    = "failed to generate mozconfig: %w"
	MsgErrFormat       = "unknown format %q (expected markdown or toml)"
	MsgErrNoCommand    = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagRoot      = "Project root (default: $BRANDER_ROOT, the git toplevel, or the current directory)"
	MsgFlagNoColor   = "Disable colored output"
	MsgFlagFormat    = "Output format: markdown or toml"
	MsgFlagOS        = "Target OS: linux, macos or windows (default: host)"
	MsgFlagArch      = "Target architecture: x86_64 or i686"
	MsgFlagChangeset = "Source changeset recorded as MOZ_SOURCE_CHANGESET"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/mozconfig-long.txt
	msgMozconfigLongRaw string
	MsgMozconfigLong    = strings.TrimSpace(msgMozconfigLongRaw)

	//go:embed msgs/mozconfig-example.txt
	msgMozconfigExampleRaw string
	MsgMozconfigExample    = strings.TrimRight(msgMozconfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
