package ir

import (
	"strings"

	"github.com/broady/jbind/jbindgen/catalog"
)

// BindingIdentifier names a binding unit in the emitted surface.
// Top-level units have an empty Scope; nested units are scoped to the
// Path of their enclosing unit.
type BindingIdentifier struct {
	// Name is the identifier within its scope. Always a valid identifier.
	Name string

	// Scope is the enclosing unit's Path, or empty at top level.
	Scope string
}

// IsZero returns true if the identifier is empty.
func (id BindingIdentifier) IsZero() bool {
	return id.Name == "" && id.Scope == ""
}

// Path returns the dotted path of the identifier, e.g. "Outer.Inner".
func (id BindingIdentifier) Path() string {
	if id.Scope == "" {
		return id.Name
	}
	return id.Scope + "." + id.Name
}

// Top returns the top-level segment of the path.
func (id BindingIdentifier) Top() string {
	p := id.Path()
	if i := strings.IndexByte(p, '.'); i >= 0 {
		return p[:i]
	}
	return p
}

// String implements fmt.Stringer.
func (id BindingIdentifier) String() string {
	return id.Path()
}

// Param is one resolved parameter of a callable.
type Param struct {
	Name string
	Type Expr
}

// CallShape is one way a callable can be invoked from the foreign side.
type CallShape int

const (
	// ShapeFixed passes every parameter positionally; a variadic last
	// parameter is passed as one array.
	ShapeFixed CallShape = iota

	// ShapeSpread passes the variadic tail as individual arguments.
	ShapeSpread
)

// String returns the string representation of the call shape.
func (s CallShape) String() string {
	if s == ShapeSpread {
		return "spread"
	}
	return "fixed"
}

// Callable is a resolved method or constructor.
type Callable struct {
	Name     string
	Params   []Param
	Return   Expr // nil for void and constructors
	VarArgs  bool
	Static   bool
	Abstract bool
	Default  bool

	// Origin is the catalog type that declares this callable. For
	// inherited methods it is the nearest defining ancestor.
	Origin string

	// Signature is the catalog signature the callable was resolved from.
	Signature catalog.Signature

	Doc string
}

// Shapes returns the call shapes of the callable: fixed, plus spread
// for variadic callables.
func (c Callable) Shapes() []CallShape {
	if c.VarArgs {
		return []CallShape{ShapeSpread, ShapeFixed}
	}
	return []CallShape{ShapeFixed}
}

// Accessor is a getter/setter pair bound to a field.
type Accessor struct {
	Field  string
	Getter string
	Setter string // empty for final fields
	Type   Expr
	Java   catalog.TypeDescriptor
	Static bool
	Origin string
	Doc    string
}

// StaticEntry is one field of a type's static initial state.
type StaticEntry struct {
	Field string `json:"field"`
	Value string `json:"value"` // Java source literal
}

// StaticState is the combined effect of a type's static field
// initializers and static blocks, applied as one step.
type StaticState struct {
	Entries []StaticEntry
}

// IsZero returns true if there is no static initialization.
func (s StaticState) IsZero() bool {
	return len(s.Entries) == 0
}

// TypeBindingUnit is the binding of one catalog type. Units refer to
// each other only by identifier and are immutable once built.
type TypeBindingUnit struct {
	Class      string
	ID         BindingIdentifier
	Kind       catalog.TypeKind
	Super      *BindingIdentifier
	Interfaces []BindingIdentifier
	Enclosing  *BindingIdentifier
	Nested     []BindingIdentifier

	Accessors    []Accessor
	Constructors []Callable

	// Methods are grouped by name in name order; within a name they keep
	// resolution order (declared before inherited).
	Methods []Callable

	StaticState StaticState

	Doc    string
	Source catalog.Source
}

// Overloads returns the methods named name.
func (u *TypeBindingUnit) Overloads(name string) []Callable {
	var out []Callable
	for _, m := range u.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// InstanceMethods returns the non-static methods.
func (u *TypeBindingUnit) InstanceMethods() []Callable {
	var out []Callable
	for _, m := range u.Methods {
		if !m.Static {
			out = append(out, m)
		}
	}
	return out
}

// StaticMethods returns the static methods.
func (u *TypeBindingUnit) StaticMethods() []Callable {
	var out []Callable
	for _, m := range u.Methods {
		if m.Static {
			out = append(out, m)
		}
	}
	return out
}

// InstanceAccessors returns the non-static accessors.
func (u *TypeBindingUnit) InstanceAccessors() []Accessor {
	var out []Accessor
	for _, a := range u.Accessors {
		if !a.Static {
			out = append(out, a)
		}
	}
	return out
}

// StaticAccessors returns the static accessors.
func (u *TypeBindingUnit) StaticAccessors() []Accessor {
	var out []Accessor
	for _, a := range u.Accessors {
		if a.Static {
			out = append(out, a)
		}
	}
	return out
}

// MemberNames returns every name the unit exposes: accessor and method names.
func (u *TypeBindingUnit) MemberNames() map[string]bool {
	names := make(map[string]bool)
	for _, a := range u.Accessors {
		names[a.Getter] = true
		if a.Setter != "" {
			names[a.Setter] = true
		}
	}
	for _, m := range u.Methods {
		names[m.Name] = true
	}
	return names
}
