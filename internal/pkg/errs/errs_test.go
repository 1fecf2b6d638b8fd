//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"petcare-hub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestMark(t *testing.T) {
	sentinel := errs.New("slot conflict")

	t.Run("errors.Is matches both the mark and the cause", func(t *testing.T) {
		cause := errs.New("requested window overlaps an existing booking")
		err := errs.Mark(cause, sentinel)

		require.Error(t, err)
		assert.True(t, errors.Is(err, sentinel))
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, cause.Error(), err.Error())
	})

	t.Run("errors.As reaches the typed cause through the mark", func(t *testing.T) {
		err := errs.Mark(&codedError{code: 7}, sentinel)

		var coded *codedError
		require.True(t, errors.As(err, &coded))
		assert.Equal(t, 7, coded.code)
		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("wrapped marks stay matchable", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("boom"), sentinel), "insert appointment")

		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("nil cause yields the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)

		assert.True(t, errors.Is(err, sentinel))
	})
}
