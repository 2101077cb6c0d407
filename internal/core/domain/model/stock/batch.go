package stock

import (
	"orderflow/internal/core/domain/model/kernel"
)

// BatchLine is one (variant, quantity) pair in a batch stock mutation.
type BatchLine struct {
	VariantID kernel.UUID
	Quantity  int
}

// BatchLineResult reports one applied mutation with the balances of the
// mutated counter around it. For deductions and restores the balances are
// current stock; for reservations and releases they are reserved stock.
type BatchLineResult struct {
	VariantID kernel.UUID
	Quantity  int
	Before    int
	After     int
}

// BatchResult is the per-line outcome of one batch mutation. The ledger
// applies the batch atomically; Failed lists lines it refused. A response
// naming both applied and failed lines is a partial failure, which the
// workflow engine treats as a hard failure requiring manual reconciliation.
type BatchResult struct {
	Lines  []BatchLineResult
	Failed []kernel.UUID
}

// AllApplied reports whether every line of the batch was applied.
func (r BatchResult) AllApplied() bool {
	return len(r.Failed) == 0
}

// Partial reports whether some lines were applied and others refused.
func (r BatchResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Lines) > 0
}
