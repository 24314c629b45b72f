package reconciler

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("задача не найдена")

func notFound(id string) error {
	return fmt.Errorf("задача %s: %w", id, ErrNotFound)
}
