package services

import "fmt"

// OutcomeKind says how a use case ended.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeNotFound
	OutcomeValidationFailed
	OutcomeStorageFault
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeValidationFailed:
		return "validation_failed"
	case OutcomeStorageFault:
		return "storage_fault"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of one use case. Payload is set on success,
// Message and Fields on a client error, Err on a storage fault.
type Outcome struct {
	Kind    OutcomeKind
	Payload any
	Message string
	Fields  map[string]string
	Err     error
}

func Success(payload any) Outcome {
	return Outcome{Kind: OutcomeSuccess, Payload: payload}
}

func NotFound(message string) Outcome {
	return Outcome{Kind: OutcomeNotFound, Message: message}
}

func Invalid(message string, fields map[string]string) Outcome {
	return Outcome{Kind: OutcomeValidationFailed, Message: message, Fields: fields}
}

func Fault(err error) Outcome {
	return Outcome{Kind: OutcomeStorageFault, Err: err}
}

// Listing is the success body of the list use cases.
type Listing[T any] struct {
	Count int `json:"count"`
	List  []T `json:"list"`
}

func newListing[T any](items []T) Listing[T] {
	return Listing[T]{Count: len(items), List: items}
}
