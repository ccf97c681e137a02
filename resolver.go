package storagekit

import (
	"context"
	"fmt"
)

// probeFunc reports what occupies a candidate child name in the destination
// parent. It is called fresh on every resolver iteration; results are never
// cached, because another actor may change the store between checks.
type probeFunc func(ctx context.Context, name string) (ExistenceState, error)

// removeFunc clears the occupant of a candidate child name, recursively for
// folders. Invoked only under ReplaceExisting.
type removeFunc func(ctx context.Context, name string) error

// resolution is the outcome of one collision-resolution pass.
type resolution struct {
	name   string         // final child name to use
	state  ExistenceState // what occupied the name when opened is true
	opened bool           // OpenIfExists accepted an existing entity
}

// uniqueName builds the numbered candidate for counter >= 2. The suffix is
// appended to the whole desired name ("a.txt" -> "a.txt (2)"); files and
// folders share the one scheme.
func uniqueName(desired string, counter int) string {
	return fmt.Sprintf("%s (%d)", desired, counter)
}

// resolveName runs the candidate-naming loop for one create/rename/move/copy
// target. The caller performs the actual backend operation with the returned
// name afterwards; the probe-then-act gap is not atomic.
//
// Under GenerateUniqueName the counter has no upper bound: a store in which
// every candidate is occupied keeps the loop running until ctx is cancelled.
// The cancellation check runs on every iteration for that reason.
func resolveName(ctx context.Context, desired string, policy CollisionPolicy, probe probeFunc, remove removeFunc) (resolution, error) {
	if desired == "" {
		return resolution{}, ErrInvalidName
	}

	counter := 1
	for {
		select {
		case <-ctx.Done():
			return resolution{}, ctx.Err()
		default:
		}

		candidate := desired
		if counter > 1 {
			candidate = uniqueName(desired, counter)
		}

		state, err := probe(ctx, candidate)
		if err != nil {
			return resolution{}, err
		}

		if state == NotFound {
			return resolution{name: candidate}, nil
		}

		switch policy {
		case FailIfExists:
			return resolution{}, ErrAlreadyExists
		case ReplaceExisting:
			if err := remove(ctx, candidate); err != nil {
				return resolution{}, err
			}
			return resolution{name: candidate}, nil
		case GenerateUniqueName:
			counter++
		case OpenIfExists:
			return resolution{name: candidate, state: state, opened: true}, nil
		default:
			return resolution{}, fmt.Errorf("%w: unknown collision policy %d", ErrInvalidArgument, policy)
		}
	}
}
