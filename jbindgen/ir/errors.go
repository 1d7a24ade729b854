package ir

import (
	"fmt"
	"strings"

	"github.com/broady/jbind/jbindgen/catalog"
)

// ErrorCode represents a machine-readable diagnostic or error code.
type ErrorCode string

const (
	CodeUnresolvedType   ErrorCode = "unresolved_type"
	CodeOverloadConflict ErrorCode = "overload_conflict"
	CodeDisambiguation   ErrorCode = "disambiguation"
	CodeInvalidCatalog   ErrorCode = "invalid_catalog"
	CodeUnknownClass     ErrorCode = "unknown_class"     // configured class not in the catalog
	CodeUnusedPackage    ErrorCode = "unused_package"    // package expression matched nothing
	CodeProviderWarning  ErrorCode = "provider_warning"  // input the provider could not fully read
	CodeAccessorRenamed  ErrorCode = "accessor_renamed"  // accessor fell back to a suffixed name
	CodeMissingSupertype ErrorCode = "missing_supertype" // supertype outside the catalog
)

// UnresolvedTypeError reports a member whose type has no binding.
// The member is skipped; generation continues.
type UnresolvedTypeError struct {
	Type   string // the unresolved class name
	Owner  string
	Member string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("%s: unresolved type %s in %s", e.Code(), e.Type, e.Location())
}

// Code returns CodeUnresolvedType.
func (e *UnresolvedTypeError) Code() ErrorCode { return CodeUnresolvedType }

// Location returns "Owner.Member".
func (e *UnresolvedTypeError) Location() string {
	if e.Member == "" {
		return e.Owner
	}
	return e.Owner + "." + e.Member
}

// OverloadConflictError reports two overloads with the same erased
// parameters that differ in return type or static-ness. The later
// candidate is dropped.
type OverloadConflictError struct {
	Owner   string
	Method  string
	Kept    catalog.Signature
	Dropped catalog.Signature
	Reason  string
}

func (e *OverloadConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s %s conflicts with %s (%s); dropped",
		e.Code(), e.Location(), e.Method, e.Dropped, e.Kept, e.Reason)
}

// Code returns CodeOverloadConflict.
func (e *OverloadConflictError) Code() ErrorCode { return CodeOverloadConflict }

// Location returns "Owner.Method".
func (e *OverloadConflictError) Location() string {
	return e.Owner + "." + e.Method
}

// DisambiguationError reports types for which no unique identifier exists
// even after full qualification. It aborts generation.
type DisambiguationError struct {
	Identifier string
	Classes    []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("%s: identifier %s is claimed by %s",
		e.Code(), e.Identifier, strings.Join(e.Classes, ", "))
}

// Code returns CodeDisambiguation.
func (e *DisambiguationError) Code() ErrorCode { return CodeDisambiguation }

// Location returns the contested identifier.
func (e *DisambiguationError) Location() string { return e.Identifier }
