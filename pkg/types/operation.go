package types

// OperationType defines the type of file system operation
type OperationType string

const (
	// OperationCreateDir creates a directory
	OperationCreateDir OperationType = "create_dir"

	// OperationCopyFile copies a file byte-for-byte
	OperationCopyFile OperationType = "copy_file"

	// OperationWriteFile writes content to a file
	OperationWriteFile OperationType = "write_file"
)

// OperationStatus defines the state of an operation
type OperationStatus string

const (
	// StatusReady means the operation is ready to be executed
	StatusReady OperationStatus = "ready"
	// StatusSkipped means the destination already exists and is left untouched
	StatusSkipped OperationStatus = "skipped"
)

// Operation represents a low-level file system operation
// These are the actual operations that will be performed by synthfs
type Operation struct {
	// Type is the type of operation
	Type OperationType

	// Source is the source path (for copies)
	Source string

	// Target is the target path
	Target string

	// Content is the content to write (for write operations)
	Content []byte

	// Mode is the file permissions (optional)
	Mode *uint32

	// Description is a human-readable description
	Description string

	// Status is the current state of the operation
	Status OperationStatus
}

// ReadyOperations filters ops down to the ones that should be executed
func ReadyOperations(ops []Operation) []Operation {
	ready := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op.Status == StatusReady {
			ready = append(ready, op)
		}
	}
	return ready
}
