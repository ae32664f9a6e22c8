package resolver

import "net/http"

// Kind classifies resolver failures. Ledger faults are collapsed into one
// kind per operation so callers cannot tell a missing record from any
// other ledger fault.
type Kind int

const (
	KindInit Kind = iota + 1
	KindDidDocumentRetrieval
	KindVcMetaRetrieval
)

var (
	ErrInit                 = &Error{kind: KindInit}
	ErrDidDocumentRetrieval = &Error{kind: KindDidDocumentRetrieval}
	ErrVcMetaRetrieval      = &Error{kind: KindVcMetaRetrieval}
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "ledger client initialization failed"
	case KindDidDocumentRetrieval:
		return "DID document retrieval failed"
	case KindVcMetaRetrieval:
		return "VC metadata retrieval failed"
	default:
		return "unknown resolver error"
	}
}

// Code is a stable machine readable identifier for the kind
func (k Kind) Code() string {
	switch k {
	case KindInit:
		return "LEDGER_INIT_FAILED"
	case KindDidDocumentRetrieval:
		return "GET_DID_DOC_FAILED"
	case KindVcMetaRetrieval:
		return "VC_META_RETRIEVAL_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Error is returned by all Client operations. The underlying ledger
// error is only ever logged.
type Error struct {
	kind  Kind
	cause error
}

func newError(k Kind, cause error) *Error {
	return &Error{kind: k, cause: cause}
}

func (e *Error) Error() string {
	return e.kind.String()
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Code() string {
	return e.kind.Code()
}

// HTTPStatus is the status an API should answer with
func (e *Error) HTTPStatus() int {
	if e.kind == KindInit {
		return http.StatusServiceUnavailable
	}

	return http.StatusBadRequest
}

// Is matches any Error of the same kind, allowing errors.Is against the
// package sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}
