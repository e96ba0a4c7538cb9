package types

import (
	"io"

	"storemy/pkg/primitives"
)

// Field is a tagged value: an Int32Field or a StringField, never anything
// else. GetType reports the tag; callers that need the concrete value
// type-switch on *Int32Field and *StringField.
type Field interface {
	GetType() Type
	Serialize(w io.Writer) error
	Compare(op primitives.Op, other Field) (bool, error)
	Equals(other Field) bool
	String() string
}
