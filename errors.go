package coinfolio

import (
	"errors"
	"fmt"
)

// Kind classifies failures by how the caller must react to them.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration is a missing or malformed credential or setting.
	KindConfiguration
	// KindAuthentication is a request rejected by the exchange (bad signature, clock skew, revoked key).
	KindAuthentication
	// KindTransient is a connection failure, a timeout, a rate limit or a server error.
	KindTransient
	// KindDataShape is a response that cannot be decoded or misses a required field.
	KindDataShape
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindTransient:
		return "transient"
	case KindDataShape:
		return "data shape"
	default:
		return "unknown"
	}
}

// Error is a classified error.
type Error struct {
	Kind    Kind
	Op      string // operation, e.g "GET accounts"
	Subject string // asset symbol or record id, possibly empty
	Err     error
}

// E creates a classified error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Ef creates a classified error with a formatted cause.
func Ef(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg += " " + e.Subject
	}
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first classified error in err's chain.
// Context cancellation is never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// IsFatal reports whether err must abort a whole operation instead of
// degrading a single item.
func IsFatal(err error) bool {
	switch KindOf(err) {
	case KindConfiguration, KindAuthentication:
		return true
	case KindUnknown:
		// cancellation and unexpected errors.
		return err != nil
	}
	return false
}

// Warning records an item that was skipped or degraded while building a report.
type Warning struct {
	Subject string // asset symbol, account or order id
	Reason  string
	Kind    Kind
}

func (w Warning) String() string { return w.Subject + ": " + w.Reason }

func newWarning(subject string, err error) Warning {
	return Warning{Subject: subject, Reason: err.Error(), Kind: KindOf(err)}
}
