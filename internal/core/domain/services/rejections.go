package services

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Sentinel errors for the transition rejection taxonomy. Every rejection
// raised by the validator unwraps to exactly one of these, so callers can
// classify with errors.Is while the concrete types carry the details.
var (
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrAccessDenied          = errors.New("access denied")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInsufficientStock     = errors.New("insufficient stock")
)

// RejectionCode is the wire-level classification of a rejection, exposed
// unmodified through the workflow operations.
type RejectionCode string

const (
	CodeInvalidTransition  RejectionCode = "invalid_transition"
	CodeRoleMismatch       RejectionCode = "role_mismatch"
	CodeWrongAssignedRider RejectionCode = "wrong_assigned_rider"
	CodeMissingFields      RejectionCode = "missing_required_fields"
	CodeInsufficientStock  RejectionCode = "insufficient_stock"
)

// InvalidTransitionError rejects a transition absent from the channel's
// adjacency table. It names the allowed set so UIs and tests can see what
// would have been legal.
type InvalidTransitionError struct {
	From    order.Status
	To      order.Status
	Channel order.FulfillmentType
	Allowed []order.Status
}

func (e *InvalidTransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.String()
	}
	return fmt.Sprintf("%s: %s -> %s is not allowed on %s (allowed: %s)",
		ErrInvalidTransition, e.From, e.To, e.Channel, strings.Join(names, ", "))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Code returns the wire classification for this rejection.
func (e *InvalidTransitionError) Code() RejectionCode {
	return CodeInvalidTransition
}

// RoleMismatchError rejects an actor whose role is not in the allowed-role
// set of the order's current status.
type RoleMismatchError struct {
	Role   actor.Role
	Status order.Status
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("%s: role %s may not act on an order in %s", ErrAccessDenied, e.Role, e.Status)
}

func (e *RoleMismatchError) Unwrap() error {
	return ErrAccessDenied
}

// Code returns the wire classification for this rejection.
func (e *RoleMismatchError) Code() RejectionCode {
	return CodeRoleMismatch
}

// WrongAssignedRiderError rejects a rider acting on an order assigned to a
// different rider. This is deliberately a distinct failure from a generic
// role mismatch: the role was acceptable, the identity was not.
type WrongAssignedRiderError struct {
	ActorID         kernel.UUID
	AssignedRiderID *kernel.UUID
}

func (e *WrongAssignedRiderError) Error() string {
	assigned := "nobody"
	if e.AssignedRiderID != nil {
		assigned = e.AssignedRiderID.String()
	}
	return fmt.Sprintf("%s: order is assigned to rider %s, not %s", ErrAccessDenied, assigned, e.ActorID)
}

func (e *WrongAssignedRiderError) Unwrap() error {
	return ErrAccessDenied
}

// Code returns the wire classification for this rejection.
func (e *WrongAssignedRiderError) Code() RejectionCode {
	return CodeWrongAssignedRider
}

// MissingFieldsError rejects a transition whose target status demands data
// that is neither on the order nor supplied with the request.
type MissingFieldsError struct {
	Target order.Status
	Fields []string
	Hint   string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: transition to %s requires %s",
		ErrMissingRequiredFields, e.Target, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingRequiredFields
}

// Code returns the wire classification for this rejection.
func (e *MissingFieldsError) Code() RejectionCode {
	return CodeMissingFields
}

// Shortfall reports one line whose requested quantity exceeds availability.
type Shortfall struct {
	VariantID kernel.UUID
	Requested int
	Available int
	Shortfall int
}

// InsufficientStockError rejects a strict-mode stock check, carrying the
// per-line shortfall list.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = fmt.Sprintf("%s short by %d (requested %d, available %d)",
			s.VariantID, s.Shortfall, s.Requested, s.Available)
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Code returns the wire classification for this rejection.
func (e *InsufficientStockError) Code() RejectionCode {
	return CodeInsufficientStock
}
