package configurator

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists is returned when a clone target already holds content.
	ErrDestinationExists = errors.New("destination already exists and is not an empty directory")

	// ErrInvalidTemplate is returned when a staged JSON config does not parse.
	ErrInvalidTemplate = errors.New("staged config is not valid JSON")
)

// RoutineError reports the routine that aborted the configuration pass.
type RoutineError struct {
	Package string
	Err     error
}

func (e *RoutineError) Error() string {
	return fmt.Sprintf("configure %s: %v", e.Package, e.Err)
}

func (e *RoutineError) Unwrap() error {
	return e.Err
}
