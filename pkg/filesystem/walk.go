package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/brander/pkg/types"
)

// WalkFiles returns the path, relative to root, of every regular file
// below root, in lexical order. Directories are descended, not returned.
func WalkFiles(fsys types.FS, root string) ([]string, error) {
	var files []string
	if err := walk(fsys, root, "", &files); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func walk(fsys types.FS, root, rel string, files *[]string) error {
	entries, err := fsys.ReadDir(filepath.Join(root, rel))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childRel := filepath.Join(rel, entry.Name())
		if entry.IsDir() {
			if err := walk(fsys, root, childRel, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, childRel)
	}
	return nil
}

// Exists reports whether anything is present at path
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
