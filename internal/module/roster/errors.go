package roster

import "errors"

var (
	// ErrFetchFailed indicates the roster could not be loaded from storage.
	ErrFetchFailed = errors.New("failed to fetch registrations")

	// ErrNothingToExport indicates an export was requested while the
	// filtered roster is empty.
	ErrNothingToExport = errors.New("no registrations to export")
)
