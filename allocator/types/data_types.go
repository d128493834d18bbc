package types

// Common error constants (not exhaustive; implementations may return other errors)
var (
	// ErrAllocationFailed indicates allocation could not be completed.
	ErrAllocationFailed = &allocatorError{"allocation failed"}

	// ErrNilNode indicates Release was called with nil.
	ErrNilNode = &allocatorError{"release of nil node"}

	// ErrDoubleRelease indicates storage was released twice.
	ErrDoubleRelease = &allocatorError{"node released twice"}

	// ErrUnknownNode indicates storage that this allocator never handed out.
	ErrUnknownNode = &allocatorError{"node not owned by allocator"}
)

// allocatorError is a simple error type for allocator operations.
type allocatorError struct {
	msg string
}

func (e *allocatorError) Error() string {
	return e.msg
}
