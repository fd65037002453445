package fulfillment

import (
	"errors"
	"strings"
)

// Kind classifies a fulfillment failure. Validation kinds aggregate every
// defect in one error so a caller can fix them in a single revision;
// consistency kinds are singular and fatal.
type Kind int

const (
	KindUnknown Kind = iota
	KindDuplicateItem
	KindUnknownItem
	KindGcpMismatch
	KindInsufficientStock
	KindAtomicityViolation
	KindPackingInfeasible
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateItem:
		return "duplicate item"
	case KindUnknownItem:
		return "unknown item"
	case KindGcpMismatch:
		return "gcp mismatch"
	case KindInsufficientStock:
		return "insufficient stock"
	case KindAtomicityViolation:
		return "atomicity violation"
	case KindPackingInfeasible:
		return "packing infeasible"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Details []string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + strings.Join(e.Details, "; ")
}

func newError(kind Kind, details ...string) *Error {
	return &Error{Kind: kind, Details: details}
}

// KindOf returns the failure kind, or KindUnknown for transient/store errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsUserError reports whether the failure was caused by the request itself
// rather than warehouse state or the store.
func IsUserError(err error) bool {
	switch KindOf(err) {
	case KindDuplicateItem, KindUnknownItem, KindGcpMismatch:
		return true
	}
	return false
}
