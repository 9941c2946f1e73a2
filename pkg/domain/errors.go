package domain

import "errors"

// ErrNoStates is returned when a machine declares no states.
var ErrNoStates = errors.New("machine must declare at least one state")

// ErrInternal marks a broken invariant inside the compiler itself.
// It is never caused by user input; seeing it means the emitted document would be wrong.
var ErrInternal = errors.New("internal compiler error")

// ErrMachineNotFound is returned when a machine ID cannot be found in a library.
var ErrMachineNotFound = errors.New("machine not found")

// ErrDocumentNotFound is returned when a shared document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrLimitExceeded is returned when a machine is larger than a surface accepts.
var ErrLimitExceeded = errors.New("machine exceeds limits")
