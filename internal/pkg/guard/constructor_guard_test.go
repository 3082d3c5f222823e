package guard_test

import (
	"errors"
	"testing"

	"shiptrack/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	var errPickupNotConstructed = errors.New("pickup command must be created via its constructor")

	type pickupCommand struct {
		shipmentID int64
		guard      guard.ConstructorGuard
	}

	newPickupCommand := func(id int64) (pickupCommand, error) {
		if id <= 0 {
			return pickupCommand{}, errors.New("shipment id must be positive")
		}
		return pickupCommand{shipmentID: id, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newPickupCommand(5)

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errPickupNotConstructed))
		assert.Equal(t, int64(5), cmd.shipmentID)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := pickupCommand{shipmentID: 5}

		assert.ErrorIs(t, cmd.guard.Validate(errPickupNotConstructed), errPickupNotConstructed)
	})

	t.Run("constructor_rules_still_apply", func(t *testing.T) {
		_, err := newPickupCommand(0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}
