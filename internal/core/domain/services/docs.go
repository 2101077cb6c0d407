// Package services contains the order workflow engine's domain services:
// the transition validator composing the adjacency, role-lock, and
// dispatch-requirement tables with the stock validation policy, and the
// inventory trigger executor performing the stock side effects of
// committed transitions.
//
// The rule tables are declarative lookup structures, immutable after
// process start, so every matrix can be audited and unit-tested without
// executing the validator. Rejections form a closed taxonomy of error
// types that unwrap to package-level sentinels.
package services
