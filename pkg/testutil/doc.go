// Package testutil provides utilities for testing brander components.
//
// Key components:
//   - File helpers: CreateFile, CreateDir, ReadFile, FileExists, DirExists
//   - Logo fixtures: WriteLogo renders a deterministic square PNG
//   - Project: a complete on-disk fork layout (brander.toml, profiles,
//     reference tree, locale templates) rooted in a temp directory
//   - SnapshotTree: content digests of a directory, for idempotence checks
//
// All test data should be defined inline, not in external files.
package testutil
