package tuple

import "storemy/pkg/primitives"

// RecordID is re-exported from primitives so callers working with tuples
// don't need a separate import for the type that identifies their physical
// location.
type RecordID = primitives.RecordID
