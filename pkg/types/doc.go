// Package types defines the core types and interfaces shared by brander's
// packages: the filesystem abstraction, branding profiles, and the low-level
// file operations handed to the write executor.
package types
