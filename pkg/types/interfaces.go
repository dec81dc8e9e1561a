package types

import (
	"io/fs"
)

// FS is the filesystem interface required for brander operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// Executor applies planned operations to disk
type Executor interface {
	ExecuteOperations(ops []Operation) error
}
