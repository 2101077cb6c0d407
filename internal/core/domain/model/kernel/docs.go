// Package kernel provides core domain primitives shared across the order
// workflow model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Money: an integer amount in minor currency units
//
// These primitives are immutable and safe for concurrent use. They enforce
// their own invariants so that aggregates built on top of them never carry
// half-initialized identity or negative monetary values.
package kernel
