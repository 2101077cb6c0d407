package services_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestStockValidationMode(t *testing.T) {
	t.Run("should tighten down the funnel for delivery channels", func(t *testing.T) {
		testCases := []struct {
			ft       order.FulfillmentType
			status   order.Status
			expected services.ValidationMode
		}{
			{order.LocalDelivery, order.Intake, services.ModeNone},
			{order.LocalDelivery, order.FollowUp, services.ModeNone},
			{order.LocalDelivery, order.Converted, services.ModeSoft},
			{order.LocalDelivery, order.Hold, services.ModeSoft},
			{order.LocalDelivery, order.Packed, services.ModeStrict},
			{order.LocalDelivery, order.Assigned, services.ModeStrict},
			{order.ThirdPartyCourier, order.Intake, services.ModeNone},
			{order.ThirdPartyCourier, order.Converted, services.ModeSoft},
			{order.ThirdPartyCourier, order.Packed, services.ModeStrict},
			{order.ThirdPartyCourier, order.InTransit, services.ModeStrict},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("%s at %s should be %s", tc.ft, tc.status, tc.expected), func(t *testing.T) {
				assert.Equal(t, tc.expected, services.StockValidationMode(tc.ft, tc.status))
			})
		}
	})

	t.Run("should stay soft for in-store at every status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Intake, order.Converted, order.Packed, order.StoreSale, order.Delivered,
		} {
			assert.Equal(t, services.ModeSoft, services.StockValidationMode(order.InStore, status),
				"in-store at %s should be soft", status)
		}
	})
}

func TestValidationMode_String(t *testing.T) {
	assert.Equal(t, "none", services.ModeNone.String())
	assert.Equal(t, "soft", services.ModeSoft.String())
	assert.Equal(t, "strict", services.ModeStrict.String())
}
