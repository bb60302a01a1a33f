package library

import "github.com/pkg/errors"

var (
	// ErrStorageUnavailable wraps every persistence failure. These are logged
	// and recovered: reads fall back to defaults and writes become no-ops.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedImport is matched by every MalformedImportError.
	ErrMalformedImport = errors.New("malformed import")
)

// MalformedImportError is returned when imported JSON cannot be parsed or does
// not describe a curriculum. The library's content is left unchanged.
type MalformedImportError struct {
	Err error
}

func (e *MalformedImportError) Error() string {
	return "malformed import: " + e.Err.Error()
}

func (e *MalformedImportError) Unwrap() error {
	return e.Err
}

func (e *MalformedImportError) Is(target error) bool {
	return target == ErrMalformedImport
}
