package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every repository lookup that matched no row.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned when an optimistic version check fails.
var ErrVersionConflict = errors.New("version conflict")

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
