// Package filesystem provides filesystem implementations for brander.
//
// This package contains implementations of the types.FS interface,
// backed by the OS filesystem or by any afero filesystem.
package filesystem
