package storagekit

// CollisionPolicy selects what happens when the target name of a create,
// rename, move or copy operation is already occupied. Exactly one policy
// governs one operation; policies are not combinable.
type CollisionPolicy int

const (
	// FailIfExists aborts the operation with ErrAlreadyExists when the
	// target name is occupied.
	FailIfExists CollisionPolicy = iota

	// ReplaceExisting deletes the occupant (recursively for folders) and
	// then proceeds with the original name.
	ReplaceExisting

	// GenerateUniqueName probes numbered candidates ("name (2)", "name (3)",
	// ...) until a free name turns up. This is the only policy that iterates;
	// the loop is bounded by cancellation alone.
	GenerateUniqueName

	// OpenIfExists returns the existing item untouched instead of creating a
	// new one. Valid for creation only.
	OpenIfExists
)

// String returns a string representation of the policy.
func (p CollisionPolicy) String() string {
	switch p {
	case FailIfExists:
		return "fail-if-exists"
	case ReplaceExisting:
		return "replace-existing"
	case GenerateUniqueName:
		return "generate-unique-name"
	case OpenIfExists:
		return "open-if-exists"
	default:
		return "unknown"
	}
}

// ExistenceState reports what occupies a probed path at a point in time.
// The states are mutually exclusive: no path is simultaneously a file and
// a folder.
type ExistenceState int

const (
	// NotFound means the path is unoccupied.
	NotFound ExistenceState = iota
	// FileExists means a file occupies the path.
	FileExists
	// FolderExists means a folder occupies the path.
	FolderExists
)

// String returns a string representation of the state.
func (s ExistenceState) String() string {
	switch s {
	case FileExists:
		return "file"
	case FolderExists:
		return "folder"
	default:
		return "not-found"
	}
}

// AccessMode selects how a file stream is opened. File.Open accepts Read and
// ReadWrite only; Append and Truncate exist for the convenience operations
// (AppendText, WriteAllBytes) and for drivers.
type AccessMode int

const (
	// Read opens an existing file for reading.
	Read AccessMode = iota
	// ReadWrite opens an existing file for reading and writing without
	// truncating it.
	ReadWrite
	// Append opens a file for writing at its end, creating it if absent.
	Append
	// Truncate opens a file for writing from scratch, creating it if absent
	// and discarding prior contents otherwise.
	Truncate
)

// String returns a string representation of the mode.
func (m AccessMode) String() string {
	switch m {
	case Read:
		return "read"
	case ReadWrite:
		return "read-write"
	case Append:
		return "append"
	case Truncate:
		return "truncate"
	default:
		return "unknown"
	}
}
