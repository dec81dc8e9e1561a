package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/brander/pkg/errors"
	bfs "github.com/arthur-debert/brander/pkg/filesystem"
	"github.com/arthur-debert/brander/pkg/logging"
	"github.com/arthur-debert/brander/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// SynthfsExecutor executes brander operations using synthfs.
// Every target must live under one of the executor's writable roots.
// When fs is not the OS filesystem, synthfs cannot reach it and operations
// are applied through fs itself.
type SynthfsExecutor struct {
	logger     zerolog.Logger
	dryRun     bool
	fs         types.FS
	filesystem synthfs.FileSystem
	roots      []string
}

// NewSynthfsExecutor creates an executor allowed to write below roots.
// fsys is used to create parent directories ahead of the pipeline.
func NewSynthfsExecutor(fsys types.FS, dryRun bool, roots ...string) *SynthfsExecutor {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if abs, err := filepath.Abs(r); err == nil {
			cleaned = append(cleaned, abs)
		}
	}
	return &SynthfsExecutor{
		logger:     logging.GetLogger("synthfs"),
		dryRun:     dryRun,
		fs:         fsys,
		filesystem: filesystem.NewOSFileSystem("/"), // Use root filesystem
		roots:      cleaned,
	}
}

// ExecuteOperations executes a list of operations using synthfs
func (e *SynthfsExecutor) ExecuteOperations(ops []types.Operation) error {
	ready := types.ReadyOperations(ops)

	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - operations would be executed:")
		for _, op := range ready {
			e.logOperation(op)
		}
		return nil
	}

	direct := !bfs.IsOS(e.fs)
	synthOps := make([]synthfs.Operation, 0, len(ready))
	for _, op := range ready {
		if err := e.validateSafePath(op.Target); err != nil {
			return err
		}

		if op.Type == types.OperationCreateDir {
			if err := e.fs.MkdirAll(op.Target, e.dirMode(op)); err != nil {
				return errors.Wrapf(err, errors.ErrFilesystem, "failed to create directory %s", op.Target)
			}
			continue
		}

		if err := e.fs.MkdirAll(filepath.Dir(op.Target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem,
				"failed to create parent directory for %s", op.Target)
		}

		// Writes always replace what is there
		if op.Type == types.OperationWriteFile {
			if err := e.removeExisting(op.Target); err != nil {
				return err
			}
		}

		if direct {
			if err := e.applyDirect(op); err != nil {
				return err
			}
			continue
		}

		synthOp, err := e.convertToSynthfsOperation(op)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem,
				"failed to convert operation: %s", op.Description)
		}
		synthOps = append(synthOps, synthOp)
	}

	if len(synthOps) == 0 {
		e.logger.Debug().Msg("No operations to execute")
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range synthOps {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem,
				"failed to add operation to pipeline")
		}
	}

	ctx := context.Background()
	executor := synthfs.NewExecutor()

	e.logger.Debug().Int("operationCount", len(synthOps)).Msg("Executing operations")

	result := executor.Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return errors.Wrapf(result.GetError(), errors.ErrFilesystem,
			"failed to execute operations")
	}

	return nil
}

// convertToSynthfsOperation converts a brander operation to a synthfs operation
func (e *SynthfsExecutor) convertToSynthfsOperation(op types.Operation) (synthfs.Operation, error) {
	switch op.Type {
	case types.OperationWriteFile:
		return e.convertWriteFile(op)
	case types.OperationCopyFile:
		return e.convertCopyFile(op)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported operation type: %s", op.Type)
	}
}

// convertWriteFile converts a write file operation
func (e *SynthfsExecutor) convertWriteFile(op types.Operation) (synthfs.Operation, error) {
	mode := os.FileMode(0644)
	if op.Mode != nil {
		mode = os.FileMode(*op.Mode)
	}

	e.logger.Trace().
		Str("target", op.Target).
		Str("mode", mode.String()).
		Int("contentLen", len(op.Content)).
		Msg("Creating write file operation")

	relPath, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("write-file-%s", op.Target))
	createOp := operations.NewCreateFileOperation(opID, relPath)

	createOp.SetItem(&fileItem{
		path:    relPath,
		content: op.Content,
		mode:    mode,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

// convertCopyFile converts a copy file operation
func (e *SynthfsExecutor) convertCopyFile(op types.Operation) (synthfs.Operation, error) {
	if op.Source == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"copy file operation requires source and target")
	}

	e.logger.Trace().
		Str("source", op.Source).
		Str("target", op.Target).
		Msg("Creating copy file operation")

	relSource, err := filepath.Rel("/", op.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert source path: %s", op.Source)
	}
	relTarget, err := filepath.Rel("/", op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert target path: %s", op.Target)
	}

	opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", filepath.Base(op.Source), op.Target))
	copyOp := operations.NewCopyOperation(opID, relTarget)
	copyOp.SetPaths(relSource, relTarget)

	return synthfs.NewOperationsPackageAdapter(copyOp), nil
}

// applyDirect performs a write or copy on e.fs
func (e *SynthfsExecutor) applyDirect(op types.Operation) error {
	switch op.Type {
	case types.OperationWriteFile:
		mode := fs.FileMode(0644)
		if op.Mode != nil {
			mode = fs.FileMode(*op.Mode)
		}
		if err := e.fs.WriteFile(op.Target, op.Content, mode); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to write %s", op.Target)
		}
	case types.OperationCopyFile:
		if op.Source == "" {
			return errors.New(errors.ErrInvalidInput, "copy file operation requires source and target")
		}
		info, err := e.fs.Stat(op.Source)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to stat %s", op.Source)
		}
		data, err := e.fs.ReadFile(op.Source)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to read %s", op.Source)
		}
		if err := e.fs.WriteFile(op.Target, data, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to copy %s to %s", op.Source, op.Target)
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported operation type: %s", op.Type)
	}

	e.logger.Trace().Str("type", string(op.Type)).Str("target", op.Target).Msg("Applied operation")
	return nil
}

func (e *SynthfsExecutor) removeExisting(path string) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFilesystem, "cannot write %s: a directory is in the way", path)
	}
	if err := e.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to replace %s", path)
	}
	return nil
}

func (e *SynthfsExecutor) dirMode(op types.Operation) fs.FileMode {
	if op.Mode != nil {
		return fs.FileMode(*op.Mode)
	}
	return 0755
}

// validateSafePath ensures the path is absolute and inside a writable root
func (e *SynthfsExecutor) validateSafePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "operation requires a target")
	}
	if !filepath.IsAbs(path) {
		return errors.Newf(errors.ErrInvalidInput, "operation target must be absolute: %s", path)
	}

	for _, root := range e.roots {
		if isPathWithin(path, root) {
			return nil
		}
	}

	return errors.Newf(errors.ErrInvalidInput,
		"operation target is outside the writable roots: %s", path)
}

// isPathWithin checks if a path is within a parent directory
func isPathWithin(path, parent string) bool {
	path = filepath.Clean(path)
	parent = filepath.Clean(parent)

	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}

	// If relative path starts with "..", it's outside parent
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// logOperation logs details about an operation
func (e *SynthfsExecutor) logOperation(op types.Operation) {
	logger := e.logger.With().
		Str("type", string(op.Type)).
		Str("description", op.Description).
		Logger()

	switch op.Type {
	case types.OperationCreateDir:
		logger.Info().
			Str("target", op.Target).
			Msg("Would create directory")
	case types.OperationWriteFile:
		logger.Info().
			Str("target", op.Target).
			Int("contentLen", len(op.Content)).
			Msg("Would write file")
	case types.OperationCopyFile:
		logger.Info().
			Str("source", op.Source).
			Str("target", op.Target).
			Msg("Would copy file")
	default:
		logger.Info().Msg("Would execute operation")
	}
}

// Item types for synthfs operations

// fileItem implements the interface needed for file operations
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }
