package order_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate all declared statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Intake,
			order.FollowUp,
			order.Converted,
			order.Hold,
			order.Packed,
			order.Assigned,
			order.HandoverToCourier,
			order.StoreSale,
			order.OutForDelivery,
			order.InTransit,
			order.Delivered,
			order.ReturnInitiated,
			order.Returned,
			order.Rejected,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject out-of-range status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(99)} {
			err := status.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return snake_case names", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Intake, "intake"},
			{order.FollowUp, "follow_up"},
			{order.HandoverToCourier, "handover_to_courier"},
			{order.OutForDelivery, "out_for_delivery"},
			{order.ReturnInitiated, "return_initiated"},
			{order.Cancelled, "cancelled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Status(-1).String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Intake, order.Converted, order.Packed, order.Assigned,
			order.HandoverToCourier, order.Delivered, order.Returned, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"shipped" is not a valid status`)
	})

	t.Run("should reject the unknown name itself", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark returned and cancelled as terminal", func(t *testing.T) {
		assert.True(t, order.Returned.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("should keep every other status non-terminal", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Intake, order.FollowUp, order.Converted, order.Hold, order.Packed,
			order.Assigned, order.HandoverToCourier, order.StoreSale, order.OutForDelivery,
			order.InTransit, order.Delivered, order.ReturnInitiated, order.Rejected,
		} {
			assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
		}
	})
}

func TestCanTransition_SharedFunnel(t *testing.T) {
	channels := []order.FulfillmentType{
		order.LocalDelivery,
		order.ThirdPartyCourier,
		order.InStore,
	}

	t.Run("should allow the intake funnel on every channel", func(t *testing.T) {
		for _, ft := range channels {
			assert.True(t, order.CanTransition(order.Intake, order.FollowUp, ft))
			assert.True(t, order.CanTransition(order.Intake, order.Converted, ft))
			assert.True(t, order.CanTransition(order.FollowUp, order.Hold, ft))
			assert.True(t, order.CanTransition(order.Converted, order.Packed, ft))
			assert.True(t, order.CanTransition(order.Hold, order.Converted, ft))
		}
	})

	t.Run("should allow cancellation from every non-terminal funnel status", func(t *testing.T) {
		for _, ft := range channels {
			for _, from := range []order.Status{order.Intake, order.FollowUp, order.Converted, order.Hold} {
				assert.True(t, order.CanTransition(from, order.Cancelled, ft),
					"%s -> cancelled should be allowed on %s", from, ft)
			}
		}
	})

	t.Run("should reject skipping funnel steps", func(t *testing.T) {
		for _, ft := range channels {
			assert.False(t, order.CanTransition(order.Intake, order.Packed, ft))
			assert.False(t, order.CanTransition(order.Intake, order.Delivered, ft))
		}
	})
}

func TestCanTransition_PerChannel(t *testing.T) {
	t.Run("local delivery should route packed through rider custody", func(t *testing.T) {
		ft := order.LocalDelivery

		assert.True(t, order.CanTransition(order.Packed, order.Assigned, ft))
		assert.True(t, order.CanTransition(order.Assigned, order.OutForDelivery, ft))
		assert.True(t, order.CanTransition(order.OutForDelivery, order.Delivered, ft))
		assert.True(t, order.CanTransition(order.OutForDelivery, order.Rejected, ft))
		assert.True(t, order.CanTransition(order.Rejected, order.Assigned, ft))

		assert.False(t, order.CanTransition(order.Packed, order.HandoverToCourier, ft))
		assert.False(t, order.CanTransition(order.Packed, order.StoreSale, ft))
	})

	t.Run("third party courier should route packed through handover", func(t *testing.T) {
		ft := order.ThirdPartyCourier

		assert.True(t, order.CanTransition(order.Packed, order.HandoverToCourier, ft))
		assert.True(t, order.CanTransition(order.HandoverToCourier, order.InTransit, ft))
		assert.True(t, order.CanTransition(order.InTransit, order.Delivered, ft))
		assert.True(t, order.CanTransition(order.InTransit, order.Rejected, ft))

		assert.False(t, order.CanTransition(order.Packed, order.Assigned, ft))
		assert.False(t, order.CanTransition(order.Rejected, order.Assigned, ft),
			"courier rejections cannot be re-dispatched to a rider")
	})

	t.Run("in-store should route packed through the counter sale", func(t *testing.T) {
		ft := order.InStore

		assert.True(t, order.CanTransition(order.Packed, order.StoreSale, ft))
		assert.True(t, order.CanTransition(order.StoreSale, order.Delivered, ft))

		assert.False(t, order.CanTransition(order.Packed, order.Assigned, ft))
		assert.False(t, order.CanTransition(order.Packed, order.HandoverToCourier, ft))
	})

	t.Run("every channel should allow the return flow after delivery", func(t *testing.T) {
		for _, ft := range []order.FulfillmentType{order.LocalDelivery, order.ThirdPartyCourier, order.InStore} {
			assert.True(t, order.CanTransition(order.Delivered, order.ReturnInitiated, ft))
			assert.True(t, order.CanTransition(order.ReturnInitiated, order.Returned, ft))
		}
	})
}

func TestAllowedNext(t *testing.T) {
	t.Run("should return empty set for terminal statuses", func(t *testing.T) {
		assert.Empty(t, order.AllowedNext(order.Returned, order.LocalDelivery))
		assert.Empty(t, order.AllowedNext(order.Cancelled, order.ThirdPartyCourier))
	})

	t.Run("should return empty set for unknown channel", func(t *testing.T) {
		assert.Empty(t, order.AllowedNext(order.Intake, order.UnknownFulfillment))
	})

	t.Run("should return a defensive copy", func(t *testing.T) {
		first := order.AllowedNext(order.Intake, order.LocalDelivery)
		require.NotEmpty(t, first)
		first[0] = order.Cancelled

		second := order.AllowedNext(order.Intake, order.LocalDelivery)
		assert.Equal(t, order.FollowUp, second[0])
	})
}
