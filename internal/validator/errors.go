package validator

import "github.com/saltoio/salto-core/internal/elemid"

// Severity classifies how serious a ValidationError is. Only
// UnresolvedReferenceValidationError carries SeverityError; every other
// kind is SeverityWarning (see §4.3/§7).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Error is satisfied by every validation finding.
type Error interface {
	error
	ElemID() elemid.ElemID
	Severity() Severity
}

type baseError struct {
	id       elemid.ElemID
	severity Severity
	message  string
}

func (e baseError) ElemID() elemid.ElemID { return e.id }
func (e baseError) Severity() Severity    { return e.severity }
func (e baseError) Error() string         { return e.message }

// UnresolvedReferenceValidationError reports a value whose ReferenceExpression
// traversal root does not resolve to any merged element, or a TypeRef whose
// ElemID never resolved. The only SeverityError kind.
type UnresolvedReferenceValidationError struct{ baseError }

func newUnresolvedReference(id elemid.ElemID, message string) UnresolvedReferenceValidationError {
	return UnresolvedReferenceValidationError{baseError{id, SeverityError, message}}
}

// InvalidValueTypeValidationError reports a value whose runtime shape
// contradicts its declared type.
type InvalidValueTypeValidationError struct{ baseError }

func newInvalidValueType(id elemid.ElemID, message string) InvalidValueTypeValidationError {
	return InvalidValueTypeValidationError{baseError{id, SeverityWarning, message}}
}

// CircularReferenceValidationError reports a ReferenceExpression chain that
// ultimately refers back to its own starting point.
type CircularReferenceValidationError struct{ baseError }

func newCircularReference(id elemid.ElemID, message string) CircularReferenceValidationError {
	return CircularReferenceValidationError{baseError{id, SeverityWarning, message}}
}

// MissingRequiredFieldValidationError reports a required field omitted from
// an instance's value.
type MissingRequiredFieldValidationError struct{ baseError }

func newMissingRequiredField(id elemid.ElemID, message string) MissingRequiredFieldValidationError {
	return MissingRequiredFieldValidationError{baseError{id, SeverityWarning, message}}
}
