package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// FulfillmentType identifies the channel an order is fulfilled through.
// The channel selects the adjacency table the order's status transitions
// are validated against, and the dispatch data required along the way.
type FulfillmentType int

const (
	// UnknownFulfillment represents an invalid or undefined channel.
	UnknownFulfillment FulfillmentType = iota

	// LocalDelivery is fulfilled by the company's own riders.
	LocalDelivery

	// ThirdPartyCourier is fulfilled by an external courier partner.
	ThirdPartyCourier

	// InStore is a point-of-sale counter sale.
	InStore
)

func getFulfillmentTypeStrings() map[FulfillmentType]string {
	return map[FulfillmentType]string{
		UnknownFulfillment: "unknown",
		LocalDelivery:      "local_delivery",
		ThirdPartyCourier:  "third_party_courier",
		InStore:            "in_store",
	}
}

// Validate checks that the channel is one of the three declared values.
func (ft FulfillmentType) Validate() error {
	if ft == UnknownFulfillment {
		return errs.NewValueIsInvalidErrorWithCause("fulfillment type is invalid",
			fmt.Errorf("%d is not a valid fulfillment type", ft))
	}
	if _, ok := getFulfillmentTypeStrings()[ft]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fulfillment type is invalid",
			fmt.Errorf("%d is not a valid fulfillment type", ft))
	}
	return nil
}

// String returns the snake_case channel name. Implements fmt.Stringer.
func (ft FulfillmentType) String() string {
	if str, ok := getFulfillmentTypeStrings()[ft]; ok {
		return str
	}
	return "unknown"
}

// FulfillmentTypeFromString parses a snake_case channel name.
func FulfillmentTypeFromString(s string) (FulfillmentType, error) {
	for ft, name := range getFulfillmentTypeStrings() {
		if name == s && ft != UnknownFulfillment {
			return ft, nil
		}
	}
	return UnknownFulfillment, errs.NewValueIsInvalidErrorWithCause("fulfillment type is invalid",
		fmt.Errorf("%q is not a valid fulfillment type", s))
}

// DeliveryVariant distinguishes courier home delivery from branch pickup.
// Only meaningful on third-party courier orders.
type DeliveryVariant int

const (
	// UnknownVariant represents an unset delivery variant.
	UnknownVariant DeliveryVariant = iota

	// HomeDelivery ships the parcel to the customer's address.
	HomeDelivery

	// BranchPickup ships the parcel to a courier branch for pickup.
	BranchPickup
)

func getDeliveryVariantStrings() map[DeliveryVariant]string {
	return map[DeliveryVariant]string{
		UnknownVariant: "unknown",
		HomeDelivery:   "home_delivery",
		BranchPickup:   "branch_pickup",
	}
}

// String returns the snake_case variant name. Implements fmt.Stringer.
func (v DeliveryVariant) String() string {
	if str, ok := getDeliveryVariantStrings()[v]; ok {
		return str
	}
	return "unknown"
}

// DeliveryVariantFromString parses a snake_case variant name.
func DeliveryVariantFromString(s string) (DeliveryVariant, error) {
	for v, name := range getDeliveryVariantStrings() {
		if name == s && v != UnknownVariant {
			return v, nil
		}
	}
	return UnknownVariant, errs.NewValueIsInvalidErrorWithCause("delivery variant is invalid",
		fmt.Errorf("%q is not a valid delivery variant", s))
}
