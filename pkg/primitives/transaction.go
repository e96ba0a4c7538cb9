package primitives

import "github.com/google/uuid"

// TransactionID identifies one in-flight transaction. It wraps a uuid so
// identifiers stay globally unique and comparable across independently
// constructed BufferPool/LockManager instances, rather than relying on a
// single process-wide counter.
type TransactionID struct {
	id uuid.UUID
}

// NewTransactionID mints a fresh transaction identifier.
func NewTransactionID() TransactionID {
	return TransactionID{id: uuid.New()}
}

func (t TransactionID) Equals(other TransactionID) bool { return t.id == other.id }

func (t TransactionID) String() string { return t.id.String() }
