package commands

import (
	"strings"

	"petcare-hub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound     = errs.New("appointment not found")
	ErrSlotConflict            = errs.New("time slot conflict")
	ErrValidation              = errs.New("validation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError reports the colliding appointment when the pre-check found
// it. Collisions caught only by the storage constraint have no id.
type ConflictError struct {
	CollidingID uuid.UUID
}

func (e *ConflictError) Error() string {
	if e.CollidingID == uuid.Nil {
		return "requested window overlaps an existing booking"
	}
	return "requested window overlaps booking " + e.CollidingID.String()
}

// ValidationError lists the request fields that failed, so clients can
// highlight them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func conflictErr(collidingID uuid.UUID) error {
	return errs.Mark(&ConflictError{CollidingID: collidingID}, ErrSlotConflict)
}

func validationErr(fields ...string) error {
	return errs.Mark(&ValidationError{Fields: fields}, ErrValidation)
}
