package validation

import "fmt"

// Kind names a single validation failure.
type Kind string

const (
	KindRequired          Kind = "required"
	KindEmail             Kind = "email"
	KindMinLength         Kind = "minlength"
	KindMin               Kind = "min"
	KindContainsNumbers   Kind = "containsNumbers"
	KindInvalidDomain     Kind = "invalidDomain"
	KindTooManyOrders     Kind = "tooManyOrders"
	KindInsufficientStock Kind = "insufficientStock"
	KindDuplicateProducts Kind = "duplicateProducts"
	KindMaxTotalQuantity  Kind = "maxTotalQuantity"
)

// priority is the order in which failures are reported to the user.
var priority = []Kind{
	KindRequired,
	KindEmail,
	KindMinLength,
	KindMin,
	KindContainsNumbers,
	KindInvalidDomain,
	KindTooManyOrders,
	KindInsufficientStock,
	KindDuplicateProducts,
	KindMaxTotalQuantity,
}

// Errors is the set of failures on one control, kept in priority order.
type Errors []Kind

// Has reports whether kind is among the failures.
func (e Errors) Has(kind Kind) bool {
	for _, k := range e {
		if k == kind {
			return true
		}
	}
	return false
}

// Valid reports whether there are no failures.
func (e Errors) Valid() bool { return len(e) == 0 }

// With returns a copy of e that also contains kind.
func (e Errors) With(kind Kind) Errors {
	if e.Has(kind) {
		return e
	}
	set := make(map[Kind]bool, len(e)+1)
	for _, k := range e {
		set[k] = true
	}
	set[kind] = true
	return fromSet(set)
}

// Without returns a copy of e with kind removed.
func (e Errors) Without(kind Kind) Errors {
	var out Errors
	for _, k := range e {
		if k != kind {
			out = append(out, k)
		}
	}
	return out
}

// Message returns the text for the highest-priority failure, or "" if valid.
func (e Errors) Message() string {
	if len(e) == 0 {
		return ""
	}
	return Message(e[0])
}

func fromSet(set map[Kind]bool) Errors {
	var out Errors
	for _, k := range priority {
		if set[k] {
			out = append(out, k)
		}
	}
	return out
}

// Message returns the user-facing text for kind.
func Message(kind Kind) string {
	switch kind {
	case KindRequired:
		return "This field is required"
	case KindEmail:
		return "Invalid email format"
	case KindMinLength:
		return fmt.Sprintf("Minimum length is %d", MinNameLength)
	case KindContainsNumbers:
		return "Name should not contain numbers"
	case KindInvalidDomain:
		return "Invalid email domain"
	case KindTooManyOrders:
		return "Too many orders in the last 24 hours"
	case KindInsufficientStock:
		return "Insufficient stock"
	case KindDuplicateProducts:
		return "Duplicate products are not allowed"
	case KindMaxTotalQuantity:
		return "Maximum total quantity exceeded"
	default:
		return "Invalid input"
	}
}
