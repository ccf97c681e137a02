// Package storagekit provides a uniform file/folder abstraction for Go with
// deterministic collision handling across multiple storage backends.
//
// Calling code creates, opens, enumerates, renames, moves, copies and
// deletes files and folders through one API regardless of whether the
// backing store is a conventional filesystem, an in-memory store, or a
// handle-based cloud API. The collision-resolution and path-identity logic
// is shared by every backend: what happens when a create/rename/move/copy
// target already exists is decided by a [CollisionPolicy], and items are
// addressed purely by path strings even when the store keys entities by
// opaque handle.
//
// # Storage Backends
//
// StorageKit ships backends through a multi-module architecture:
//
//   - Local filesystem (github.com/gobeaver/storagekit/driver/local)
//   - In-memory (github.com/gobeaver/storagekit/driver/memory)
//   - Google Drive (github.com/gobeaver/storagekit/driver/drive)
//
// Each driver is a separate Go module, so you only pull dependencies for
// the backends you actually use. A driver implements the narrow [Backend]
// primitive; the item API on top of it is the same for all of them.
//
// # Basic Usage
//
//	import "github.com/gobeaver/storagekit/driver/memory"
//
//	store := storagekit.NewStorage(memory.New())
//	root := store.Root()
//
//	ctx := context.Background()
//
//	// Create a file; the policy decides what a name collision means
//	file, err := root.CreateFile(ctx, "report.txt", storagekit.GenerateUniqueName)
//
//	// Write and read through byte streams
//	err = file.AppendText(ctx, "hello")
//	data, err := file.ReadAllBytes(ctx)
//
//	// Probe without mutating
//	state, err := root.CheckExists(ctx, "report.txt")
//
// # Collision Policies
//
// Every create, rename, move and copy takes a [CollisionPolicy]:
// [FailIfExists], [ReplaceExisting], [GenerateUniqueName], and (creation
// only) [OpenIfExists]. Under GenerateUniqueName the resolver probes
// "name (2)", "name (3)", ... until a free candidate turns up; the loop is
// deliberately unbounded and is cut short only by context cancellation.
//
// # Consistency
//
// Existence probes and the actions that follow them are not atomic: a
// concurrent actor may change the store between the check and the act.
// StorageKit does not hide this — such races surface as errors
// ([ErrAlreadyExists], [ErrNotFound], [ErrBackend]) rather than being
// retried or locked away. A cancelled or failed multi-step operation (e.g.
// a replace that deleted the occupant before creating its successor) leaves
// the store in the intermediate state.
package storagekit
