// Package transaction re-exports the transaction identity type from
// primitives so callers in the concurrency and memory packages can speak of
// "a transaction" without importing primitives directly.
package transaction

import "storemy/pkg/primitives"

type ID = primitives.TransactionID

func New() ID { return primitives.NewTransactionID() }
