package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr to err's unwrap chain so stdlib errors.Is matches
// the marker. err keeps its own message, and errors.As still reaches its
// typed causes.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, mark: markErr}
}

type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string { return m.cause.Error() }

func (m *marked) Unwrap() []error { return []error{m.cause, m.mark} }

// Format delegates to the cause so %+v keeps its stack trace.
func (m *marked) Format(f fmt.State, verb rune) {
	if formatter, ok := m.cause.(fmt.Formatter); ok {
		formatter.Format(f, verb)
		return
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), m.cause)
}
