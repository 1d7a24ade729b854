// Package ir defines the binding representation produced from a class
// catalog: resolved type expressions, per-type binding units, identifiers
// and diagnostics. Renderers turn units into target language source.
package ir

import "github.com/broady/jbind/jbindgen/catalog"

// ExprKind identifies the category of a type expression.
type ExprKind int

const (
	KindPrimitive ExprKind = iota // Unboxed primitive
	KindBoxed                     // Nullable primitive wrapper
	KindBuiltin                   // String or Object
	KindArray                     // One array dimension
	KindReference                 // Reference to another binding unit
)

// String returns the string representation of the expression kind.
func (k ExprKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindBoxed:
		return "Boxed"
	case KindBuiltin:
		return "Builtin"
	case KindArray:
		return "Array"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// Expr is a resolved binding type.
type Expr interface {
	// Kind returns the expression kind for type switching.
	Kind() ExprKind

	// Nullable reports whether the binding admits null.
	Nullable() bool

	// Ensure only types in this package can implement Expr.
	sealed()
}

// TargetPrimitive is the foreign-side primitive a Java primitive maps onto.
type TargetPrimitive int

const (
	TargetBoolean TargetPrimitive = iota
	TargetNumber
	TargetBigInt // exact 64-bit integers
)

// String returns the string representation of the target primitive.
func (p TargetPrimitive) String() string {
	switch p {
	case TargetBoolean:
		return "boolean"
	case TargetNumber:
		return "number"
	case TargetBigInt:
		return "bigint"
	default:
		return "unknown"
	}
}

// PrimitiveExpr is an unboxed primitive. Never nullable.
type PrimitiveExpr struct {
	Java   catalog.PrimitiveKind
	Target TargetPrimitive
}

func (*PrimitiveExpr) Kind() ExprKind { return KindPrimitive }
func (*PrimitiveExpr) Nullable() bool { return false }
func (*PrimitiveExpr) sealed()        {}

// BoxedExpr is a wrapper class. It binds to the primitive's target type
// plus null.
type BoxedExpr struct {
	Element *PrimitiveExpr
}

func (*BoxedExpr) Kind() ExprKind { return KindBoxed }
func (*BoxedExpr) Nullable() bool { return true }
func (*BoxedExpr) sealed()        {}

// Builtin identifies classes with builtin bindings.
type Builtin int

const (
	BuiltinString Builtin = iota
	BuiltinObject
)

// String returns the string representation of the builtin.
func (b Builtin) String() string {
	switch b {
	case BuiltinString:
		return "string"
	case BuiltinObject:
		return "object"
	default:
		return "unknown"
	}
}

// BuiltinExpr is java.lang.String or java.lang.Object.
type BuiltinExpr struct {
	Builtin Builtin
}

func (*BuiltinExpr) Kind() ExprKind { return KindBuiltin }
func (*BuiltinExpr) Nullable() bool { return true }
func (*BuiltinExpr) sealed()        {}

// ArrayExpr is a single array dimension. Multi-dimensional arrays nest
// one ArrayExpr per dimension.
type ArrayExpr struct {
	Element Expr
}

func (*ArrayExpr) Kind() ExprKind { return KindArray }
func (*ArrayExpr) Nullable() bool { return true }
func (*ArrayExpr) sealed()        {}

// Dims returns the number of nested array dimensions.
func (a *ArrayExpr) Dims() int {
	n := 1
	for e := a.Element; ; n++ {
		inner, ok := e.(*ArrayExpr)
		if !ok {
			return n
		}
		e = inner.Element
	}
}

// ReferenceExpr refers to the binding of another catalog type.
type ReferenceExpr struct {
	Class  string
	Target BindingIdentifier
}

func (*ReferenceExpr) Kind() ExprKind { return KindReference }
func (*ReferenceExpr) Nullable() bool { return true }
func (*ReferenceExpr) sealed()        {}

// Array creates an ArrayExpr.
func Array(elem Expr) *ArrayExpr {
	return &ArrayExpr{Element: elem}
}

// Reference creates a ReferenceExpr.
func Reference(class string, target BindingIdentifier) *ReferenceExpr {
	return &ReferenceExpr{Class: class, Target: target}
}

// String returns a builtin string expression.
func String() *BuiltinExpr {
	return &BuiltinExpr{Builtin: BuiltinString}
}

// Object returns a builtin object expression.
func Object() *BuiltinExpr {
	return &BuiltinExpr{Builtin: BuiltinObject}
}
