// Package paths provides centralized path handling for brander.
//
// A Paths value is built once per invocation and passed explicitly to every
// component; nothing in the pipeline reads the project layout from globals.
//
// # Environment Variables
//
//   - BRANDER_ROOT: project root (default: git toplevel, then the working directory)
//   - BRANDER_TEMPLATES_DIR: template directory (default: <root>/templates)
//   - BRANDER_STATE_DIR: state/log directory (default: $XDG_STATE_HOME/brander)
//
// # Project Layout
//
//	<root>/brander.toml                          product identity and brand overrides
//	<root>/configs/branding/<profile>/logo.png   profile assets
//	<root>/configs/common/mozconfig              shared build fragment
//	<root>/configs/<os>/mozconfig[-i686]         per-platform build fragment
//	<root>/engine/browser/branding/unofficial    reference tree
//	<root>/engine/browser/branding/<profile>     output tree
//	<root>/templates/branding.optional           locale templates
package paths
