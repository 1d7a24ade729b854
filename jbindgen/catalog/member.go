package catalog

import "strings"

// Visibility is a Java access level.
type Visibility int

const (
	Package Visibility = iota // no modifier
	Public
	Protected
	Private
)

// String returns the string representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "package"
	}
}

// ParseVisibility maps a modifier keyword to a Visibility.
// Anything unrecognized is package-private.
func ParseVisibility(s string) Visibility {
	switch s {
	case "public":
		return Public
	case "protected":
		return Protected
	case "private":
		return Private
	default:
		return Package
	}
}

// MemberKind distinguishes fields, methods and constructors.
type MemberKind int

const (
	FieldMember MemberKind = iota
	MethodMember
	ConstructorMember
)

// String returns the string representation of the member kind.
func (k MemberKind) String() string {
	switch k {
	case FieldMember:
		return "field"
	case MethodMember:
		return "method"
	case ConstructorMember:
		return "constructor"
	default:
		return "unknown"
	}
}

// Signature is the parameter list and return type of a method or constructor.
// Only the last parameter may be variadic, and it is always an array.
type Signature struct {
	Params  []TypeDescriptor
	VarArgs bool
	Return  *TypeDescriptor // nil for void and constructors
}

// Erased returns the overload key of the signature: the parameter
// descriptors with variadic parameters in their array form.
func (s Signature) Erased() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range s.Params {
		sb.WriteString(p.Descriptor())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Descriptor returns the JVM method descriptor.
func (s Signature) Descriptor() string {
	return MethodDescriptor(s.Params, s.Return)
}

// SameReturn reports whether two signatures return the same type.
func (s Signature) SameReturn(o Signature) bool {
	if s.Return == nil || o.Return == nil {
		return s.Return == nil && o.Return == nil
	}
	return s.Return.Equal(*o.Return)
}

// String renders the signature in Java syntax, e.g. "(int, java.lang.String...) void".
func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s.VarArgs && i == len(s.Params)-1 && p.IsArray() {
			sb.WriteString(p.Element().String())
			sb.WriteString("...")
			continue
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") ")
	if s.Return == nil {
		sb.WriteString("void")
	} else {
		sb.WriteString(s.Return.String())
	}
	return sb.String()
}

// Member is a field, method or constructor declared on a type.
type Member struct {
	Name       string
	Kind       MemberKind
	Visibility Visibility
	Static     bool
	Abstract   bool
	Default    bool // interface default method
	Final      bool

	// Type is the field type. Unused for methods and constructors.
	Type TypeDescriptor

	// Signature is the method or constructor signature. Unused for fields.
	Signature Signature

	// ParamNames are the declared parameter names, if known.
	ParamNames []string

	// Owner is the fully qualified name of the declaring type.
	Owner string

	// Doc is the declaration's doc comment text, if any.
	Doc string
}

// Eligible reports whether the member participates in bindings:
// public and protected members, and package-private statics.
func (m Member) Eligible() bool {
	switch m.Visibility {
	case Public, Protected:
		return true
	case Package:
		return m.Static
	default:
		return false
	}
}

// Assignment is one step of a type's static initialization, either a
// field initializer or an assignment inside a static block.
type Assignment struct {
	Field string
	Value string // literal source text
}
