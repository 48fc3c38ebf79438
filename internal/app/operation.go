package app

import "dms-go/internal/journal"

// ClientOperation tracks a CLI invocation that may be journalled.
// Operations are created in memory with ID=0. Only domain-mutating commands
// persist them (giving them an auto-increment ID from the journal).
type ClientOperation struct {
	ID         int64
	OpID       string
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewClientOperation creates a new in-memory client operation.
func NewClientOperation(opID, operation, parameters string) *ClientOperation {
	return &ClientOperation{
		OpID:       opID,
		Operation:  operation,
		Parameters: parameters,
		Status:     journal.StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the journal.
func (op *ClientOperation) Persisted() bool {
	return op.ID != 0
}
