package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The full state set is shared across fulfillment channels, but each channel
// owns its own adjacency table over it. The channels diverge after Packed:
//
//	intake -> follow_up -> converted -> hold -> packed
//	packed -> assigned -> out_for_delivery -> delivered   (local delivery)
//	packed -> handover_to_courier -> in_transit -> delivered   (courier)
//	packed -> store_sale -> delivered                     (in-store)
//	delivered -> return_initiated -> returned
//
// Cancelled is reachable from every non-terminal state. Rejected marks a
// failed delivery attempt and is only reachable from rider/courier custody.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Intake is the initial status of a freshly captured order.
	Intake

	// FollowUp marks an order waiting on customer confirmation.
	FollowUp

	// Converted marks a confirmed order; line quantities are reserved.
	Converted

	// Hold parks a confirmed order without releasing its reservation.
	Hold

	// Packed marks an order whose stock has been physically deducted.
	Packed

	// Assigned means a rider has been given custody (local delivery only).
	Assigned

	// HandoverToCourier means the parcel was handed to a courier partner.
	HandoverToCourier

	// StoreSale marks an in-store counter sale in progress.
	StoreSale

	// OutForDelivery means the assigned rider is delivering the order.
	OutForDelivery

	// InTransit means the courier partner is moving the parcel.
	InTransit

	// Delivered means the customer has received the order.
	Delivered

	// ReturnInitiated marks a delivered order the customer is sending back.
	ReturnInitiated

	// Returned is terminal; the order physically came back.
	Returned

	// Rejected marks a failed delivery attempt while in custody.
	Rejected

	// Cancelled is terminal and reachable from every non-terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Intake:            "intake",
		FollowUp:          "follow_up",
		Converted:         "converted",
		Hold:              "hold",
		Packed:            "packed",
		Assigned:          "assigned",
		HandoverToCourier: "handover_to_courier",
		StoreSale:         "store_sale",
		OutForDelivery:    "out_for_delivery",
		InTransit:         "in_transit",
		Delivered:         "delivered",
		ReturnInitiated:   "return_initiated",
		Returned:          "returned",
		Rejected:          "rejected",
		Cancelled:         "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// Validate checks that the Status is one of the declared lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a snake_case status name as stored in the
// database or received from the API.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transitions exist from the status
// on any channel.
func (s Status) IsTerminal() bool {
	return s == Returned || s == Cancelled
}

// sharedFunnel is the pre-fulfillment portion of every channel's table.
// Channels diverge only after Packed.
func sharedFunnel() map[Status][]Status {
	return map[Status][]Status{
		Intake:    {FollowUp, Converted, Cancelled},
		FollowUp:  {Converted, Hold, Cancelled},
		Converted: {Hold, Packed, Cancelled},
		Hold:      {Converted, Packed, Cancelled},
	}
}

// transitionTable returns the adjacency list for one fulfillment channel.
// The tables are declarative data: each entry maps a current status to the
// exact set of statuses reachable in one step on that channel. No channel
// ever permits a transition absent from its own table, even if another
// channel's table contains it.
func transitionTable(ft FulfillmentType) map[Status][]Status {
	table := sharedFunnel()

	switch ft {
	case LocalDelivery:
		table[Packed] = []Status{Assigned, Cancelled}
		table[Assigned] = []Status{OutForDelivery, Rejected, Cancelled}
		table[OutForDelivery] = []Status{Delivered, Rejected, Cancelled}
		table[Delivered] = []Status{ReturnInitiated, Cancelled}
		table[ReturnInitiated] = []Status{Returned, Cancelled}
		table[Rejected] = []Status{Assigned, Returned, Cancelled}
	case ThirdPartyCourier:
		table[Packed] = []Status{HandoverToCourier, Cancelled}
		table[HandoverToCourier] = []Status{InTransit, Cancelled}
		table[InTransit] = []Status{Delivered, Rejected, Cancelled}
		table[Delivered] = []Status{ReturnInitiated, Cancelled}
		table[ReturnInitiated] = []Status{Returned, Cancelled}
		table[Rejected] = []Status{ReturnInitiated, Returned, Cancelled}
	case InStore:
		table[Packed] = []Status{StoreSale, Cancelled}
		table[StoreSale] = []Status{Delivered, Cancelled}
		table[Delivered] = []Status{ReturnInitiated, Cancelled}
		table[ReturnInitiated] = []Status{Returned, Cancelled}
	default:
		return map[Status][]Status{}
	}

	return table
}

// AllowedNext returns the set of statuses reachable in one step from s on
// the given channel. Terminal statuses and unknown channels yield an empty
// set. The returned slice is a copy and safe to modify.
func AllowedNext(s Status, ft FulfillmentType) []Status {
	allowed, ok := transitionTable(ft)[s]
	if !ok {
		return []Status{}
	}
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransition reports whether the one-step transition from -> to exists
// in the channel's adjacency table.
func CanTransition(from, to Status, ft FulfillmentType) bool {
	for _, s := range transitionTable(ft)[from] {
		if s == to {
			return true
		}
	}
	return false
}
