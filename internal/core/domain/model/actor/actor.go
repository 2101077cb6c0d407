// Package actor models the acting user a workflow request runs as. The
// engine never sees credentials; it receives a resolved identity plus a
// role, and the role lock tables decide what that pair may do. Role is a
// closed enum rather than a raw string so that a typo can never widen
// anyone's authorization.
package actor

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Role is the closed set of workflow roles.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	UnknownRole Role = iota

	// Admin bypasses every lock and per-role transition restriction.
	Admin

	// Manager has broad access across the whole funnel.
	Manager

	// Operator works the pre-packing phases only.
	Operator

	// Rider may act only on orders in their own custody.
	Rider

	// Viewer performs no transitions.
	Viewer
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Admin:       "admin",
		Manager:     "manager",
		Operator:    "operator",
		Rider:       "rider",
		Viewer:      "viewer",
	}
}

// Validate checks that the role is one of the declared values.
func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString parses a role name as delivered by the auth layer.
func RoleFromString(s string) (Role, error) {
	for r, name := range getRoleStrings() {
		if name == s && r != UnknownRole {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Context carries the acting user through one workflow call. It is a
// per-call value object, never persisted and never mutated by the engine.
type Context struct {
	userID kernel.UUID
	role   Role
}

// NewContext creates an actor context from a resolved user id and role.
func NewContext(userID kernel.UUID, role Role) (Context, error) {
	if err := userID.Validate(); err != nil {
		return Context{}, err
	}
	if err := role.Validate(); err != nil {
		return Context{}, err
	}
	return Context{userID: userID, role: role}, nil
}

// UserID returns the acting user's identity.
func (c Context) UserID() kernel.UUID {
	return c.userID
}

// Role returns the acting user's role.
func (c Context) Role() Role {
	return c.role
}

// IsAdmin reports whether the actor bypasses locks entirely.
func (c Context) IsAdmin() bool {
	return c.role == Admin
}

// Validate checks the context was built from a valid identity and role.
func (c Context) Validate() error {
	if err := c.userID.Validate(); err != nil {
		return err
	}
	return c.role.Validate()
}
