// Package order contains the Order aggregate and its lifecycle state
// machine. Each fulfillment channel (local delivery, third-party courier,
// in-store) owns its own adjacency table over the shared status set; the
// tables are declarative map data so they can be audited and unit-tested
// without executing any validator.
//
// The aggregate enforces structural invariants (identity, immutable lines
// and totals, one-step adjacency, channel lock after stock commitment).
// Role locks, dispatch requirements, and stock gating are layered on top by
// the domain services package.
package order
