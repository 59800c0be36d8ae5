package errs_test

import (
	"errors"
	"testing"

	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("itemId", "123")

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("itemId", "123", cause)

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("hex_code")

		assert.Equal(t, "hex_code", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: hex_code", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing leading #")
		err := errs.NewValueIsInvalidErrorWithCause("hex_code", cause)

		assert.Equal(t, "hex_code", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: hex_code (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("num_colors", 5, 1, 4)

		assert.Equal(t, "num_colors", err.ParamName)
		assert.Equal(t, 5, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 4, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 5 is num_colors, min value is 1, max value is 4", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("color_order", 0, 1, 4, cause)

		assert.Equal(t, "color_order", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 4, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: 0 is color_order, min value is 1, max value is 4 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("color_name")

		assert.Equal(t, "color_name", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: color_name", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank after trimming")
		err := errs.NewValueIsRequiredErrorWithCause("color_name", cause)

		assert.Equal(t, "color_name", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: color_name (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrNotReady)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid status transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "duplicate key", errs.ErrDuplicateKey.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("itemId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("hex_code")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("num_colors", 5, 1, 4)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("color_name")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)
	})
}

func TestWorkflowErrors(t *testing.T) {
	t.Run("InvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("InQueue", "Printed")

		assert.Equal(t, "invalid status transition: InQueue -> Printed", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("InvalidTransitionErrorWithCause", func(t *testing.T) {
		err := errs.NewInvalidTransitionErrorWithCause("Printed", "Packed", errors.New("skips Assembled"))

		assert.Equal(t, "invalid status transition: Printed -> Packed (cause: skips Assembled)", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("NoOpTransitionError", func(t *testing.T) {
		err := errs.NewNoOpTransitionError("item-1", "InQueue")

		assert.Equal(t, "status transition is a no-op: item-1 is already InQueue", err.Error())
		require.ErrorIs(t, err, errs.ErrNoOpTransition)
	})

	t.Run("UnknownPartError", func(t *testing.T) {
		err := errs.NewUnknownPartError("item-1", "part-9")

		assert.Equal(t, "part is not associated with item: part part-9, item item-1", err.Error())
		require.ErrorIs(t, err, errs.ErrUnknownPart)
	})

	t.Run("InactiveReferenceError", func(t *testing.T) {
		err := errs.NewInactiveReferenceError("color", "c-1")

		assert.Equal(t, "referenced record is inactive: color c-1", err.Error())
		require.ErrorIs(t, err, errs.ErrInactiveReference)
	})

	t.Run("NotReadyError", func(t *testing.T) {
		err := errs.NewNotReadyError("order", "o-1", "not every item is Packed")

		assert.Equal(t, "precondition not satisfied: order o-1: not every item is Packed", err.Error())
		require.ErrorIs(t, err, errs.ErrNotReady)
	})

	t.Run("DuplicateKeyError sanitizes value", func(t *testing.T) {
		err := errs.NewDuplicateKeyError("order_number", "00\n1")

		assert.NotContains(t, err.Error(), "\n")
		require.ErrorIs(t, err, errs.ErrDuplicateKey)
	})

	t.Run("ConcurrentModificationError", func(t *testing.T) {
		cause := errors.New("version mismatch")
		err := errs.NewConcurrentModificationErrorWithCause("item", "i-1", cause)

		assert.Equal(t, "concurrent modification: item i-1 (cause: version mismatch)", err.Error())
		require.ErrorIs(t, err, errs.ErrConcurrentModification)
		assert.NotErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
