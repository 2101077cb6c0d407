package services

import (
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/order"
)

// roleLockTable maps each status to the roles permitted to act on an order
// while it sits in that status. The table is declarative data: whether a
// role may request any transition away from a status is answered by a
// lookup, never by branching logic.
//
// Locked status classes:
//   - Assigned and OutForDelivery are locked to the rider class (plus the
//     elevated roles); the specific rider is checked separately.
//   - HandoverToCourier and InTransit are locked to the elevated-approval
//     class (admin, manager).
//
// Viewer appears nowhere: it performs no transitions.
func roleLockTable() map[order.Status][]actor.Role {
	return map[order.Status][]actor.Role{
		order.Intake:            {actor.Admin, actor.Manager, actor.Operator},
		order.FollowUp:          {actor.Admin, actor.Manager, actor.Operator},
		order.Converted:         {actor.Admin, actor.Manager, actor.Operator},
		order.Hold:              {actor.Admin, actor.Manager, actor.Operator},
		order.Packed:            {actor.Admin, actor.Manager},
		order.Assigned:          {actor.Admin, actor.Manager, actor.Rider},
		order.OutForDelivery:    {actor.Admin, actor.Manager, actor.Rider},
		order.HandoverToCourier: {actor.Admin, actor.Manager},
		order.InTransit:         {actor.Admin, actor.Manager},
		order.StoreSale:         {actor.Admin, actor.Manager},
		order.Delivered:         {actor.Admin, actor.Manager},
		order.ReturnInitiated:   {actor.Admin, actor.Manager},
		order.Rejected:          {actor.Admin, actor.Manager},
	}
}

// AllowedRoles returns the set of roles that may act on an order in the
// given status. The returned slice is a copy and safe to modify.
func AllowedRoles(status order.Status) []actor.Role {
	allowed, ok := roleLockTable()[status]
	if !ok {
		return []actor.Role{}
	}
	out := make([]actor.Role, len(allowed))
	copy(out, allowed)
	return out
}

// CheckRoleLock decides whether the actor may request a transition away
// from the order's current status.
//
// Check order matters and is part of the contract:
//  1. Admin bypasses everything, including the rider identity lock. The
//     bypass is evaluated before the identity check, never after.
//  2. A rider-role actor can never act on an order assigned to a different
//     rider, regardless of the order's status or the target; this yields
//     WrongAssignedRiderError, a distinct failure from a role mismatch.
//  3. The actor's role must be in the status's allowed-role set.
func CheckRoleLock(o *order.Order, a actor.Context) error {
	if a.IsAdmin() {
		return nil
	}

	if a.Role() == actor.Rider {
		if assigned := o.RiderID(); assigned != nil && !assigned.IsEqual(a.UserID()) {
			return &WrongAssignedRiderError{
				ActorID:         a.UserID(),
				AssignedRiderID: assigned,
			}
		}
	}

	for _, role := range roleLockTable()[o.Status()] {
		if role == a.Role() {
			return nil
		}
	}

	return &RoleMismatchError{
		Role:   a.Role(),
		Status: o.Status(),
	}
}
