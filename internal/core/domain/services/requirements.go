package services

import (
	"orderflow/internal/core/domain/model/order"
)

// Dispatch requirement field names, as reported in MissingFieldsError and
// in the API's missingFields list.
const (
	FieldRiderID           = "rider_id"
	FieldCourierPartner    = "courier_partner"
	FieldTrackingCode      = "tracking_code"
	FieldDestinationBranch = "destination_branch"
	FieldReason            = "reason"
)

type requirement struct {
	fields []string
	hint   string
}

// dispatchRequirementTable maps a target status to the fields that must be
// present, on the order already or supplied with the request, before the
// transition may proceed. Statuses absent from the table require nothing.
func dispatchRequirementTable() map[order.Status]requirement {
	return map[order.Status]requirement{
		order.Assigned: {
			fields: []string{FieldRiderID},
			hint:   "select a rider before dispatching the order",
		},
		order.HandoverToCourier: {
			fields: []string{FieldCourierPartner, FieldTrackingCode},
			hint:   "record the courier partner and tracking code from the booking",
		},
		order.InTransit: {
			fields: []string{FieldTrackingCode},
			hint:   "the parcel cannot be tracked without its tracking code",
		},
		order.Cancelled: {
			fields: []string{FieldReason},
			hint:   "a cancellation reason is required for the audit trail",
		},
		order.Rejected: {
			fields: []string{FieldReason},
			hint:   "record why the delivery attempt failed",
		},
		order.ReturnInitiated: {
			fields: []string{FieldReason},
			hint:   "record why the customer is returning the order",
		},
		order.Returned: {
			fields: []string{FieldReason},
			hint:   "record why the order came back",
		},
	}
}

// RequiredFields returns the declared field list for a target status.
// The returned slice is a copy and safe to modify.
func RequiredFields(target order.Status) []string {
	req, ok := dispatchRequirementTable()[target]
	if !ok {
		return []string{}
	}
	out := make([]string, len(req.fields))
	copy(out, req.fields)
	return out
}

// CheckRequirements verifies the dispatch requirements for the target
// status against the order's present data and the supplied fields.
// Branch-pickup courier orders additionally need a destination branch at
// handover. Returns a MissingFieldsError naming every absent field, or nil.
func CheckRequirements(o *order.Order, target order.Status, supplied order.TransitionFields) error {
	req, ok := dispatchRequirementTable()[target]
	if !ok {
		return nil
	}

	required := make([]string, len(req.fields))
	copy(required, req.fields)

	if target == order.HandoverToCourier && effectiveVariant(o, supplied) == order.BranchPickup {
		required = append(required, FieldDestinationBranch)
	}

	var missing []string
	for _, field := range required {
		if !fieldPresent(o, supplied, field) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{
			Target: target,
			Fields: missing,
			Hint:   req.hint,
		}
	}
	return nil
}

func effectiveVariant(o *order.Order, supplied order.TransitionFields) order.DeliveryVariant {
	if supplied.DeliveryVariant != order.UnknownVariant {
		return supplied.DeliveryVariant
	}
	return o.DeliveryVariant()
}

// fieldPresent checks a single requirement against both sources: the data
// already captured on the order and the payload supplied with the request.
func fieldPresent(o *order.Order, supplied order.TransitionFields, field string) bool {
	switch field {
	case FieldRiderID:
		return supplied.RiderID != nil || o.RiderID() != nil
	case FieldCourierPartner:
		return supplied.CourierPartner != "" || o.CourierPartner() != ""
	case FieldTrackingCode:
		return supplied.TrackingCode != "" || o.TrackingCode() != ""
	case FieldDestinationBranch:
		return supplied.DestinationBranch != "" || o.DestinationBranch() != ""
	case FieldReason:
		return supplied.Reason != ""
	default:
		return false
	}
}
