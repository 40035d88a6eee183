package usecases

import (
	"errors"

	domainerrors "tutorhub.backend/internal/domain/errors"
)

// notFoundOr converts a repository ErrNotFound into a 404 with msg and
// passes every other error through.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(msg)
	}
	return err
}

// conflictOr converts ErrConflict from a compare-and-set into a 409 with msg.
func conflictOr(err error, notFoundMsg, conflictMsg string) error {
	if errors.Is(err, domainerrors.ErrConflict) {
		return domainerrors.Conflict(conflictMsg)
	}
	return notFoundOr(err, notFoundMsg)
}
