package device

import (
	"fmt"

	"github.com/pkg/errors"
)

// A NotFoundError is returned when a name is not present in a Registry.
type NotFoundError struct {
	Name string
}

// NewNotFoundError is used when a device name is not registered.
func NewNotFoundError(name string) error {
	return &NotFoundError{Name: name}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device %q not found", e.Name)
}

// IsNotFoundError returns whether the given error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var errArt *NotFoundError
	return errors.As(err, &errArt)
}
