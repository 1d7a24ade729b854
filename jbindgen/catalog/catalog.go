// Package catalog holds the class catalog the binding generator reads:
// Java type descriptors, members and signatures, frozen into an immutable
// snapshot before any binding work starts.
package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// TypeKind distinguishes concrete classes, abstract classes and interfaces.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindAbstractClass
	KindInterface
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindAbstractClass:
		return "abstract"
	case KindInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// ParseTypeKind is the inverse of TypeKind.String.
func ParseTypeKind(s string) (TypeKind, error) {
	switch s {
	case "", "class":
		return KindClass, nil
	case "abstract":
		return KindAbstractClass, nil
	case "interface":
		return KindInterface, nil
	}
	return 0, fmt.Errorf("unknown type kind %q", s)
}

// Source is a location in a catalog input.
type Source struct {
	File string
	Line int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0
}

// String returns "file:line", or "" when unknown.
func (s Source) String() string {
	if s.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// TypeInfo describes one class or interface.
// Nested types use binary names: "com.example.Outer$Inner".
type TypeInfo struct {
	Name       string
	Kind       TypeKind
	Visibility Visibility

	// Super is the superclass name; empty means java.lang.Object.
	Super string

	// Interfaces lists directly implemented (or, for interfaces, extended)
	// interfaces in declaration order.
	Interfaces []string

	// Enclosing is the directly enclosing type for nested types.
	Enclosing string

	// Static is set for static nested types and all top-level types.
	Static bool

	// Members in declaration order.
	Members []Member

	// StaticInit lists static field initializers and static block
	// assignments in source order.
	StaticInit []Assignment

	Source Source
	Doc    string
}

// Package returns the package part of the name.
func (t TypeInfo) Package() string {
	return PackageOf(t.Name)
}

// SimpleName returns the unqualified name, without enclosing types.
func (t TypeInfo) SimpleName() string {
	return SimpleNameOf(t.Name)
}

// IsConcrete reports whether instances of the type can be constructed.
func (t TypeInfo) IsConcrete() bool {
	return t.Kind == KindClass
}

// PackageOf returns the package of a binary class name.
func PackageOf(fqn string) string {
	top := fqn
	if i := strings.IndexByte(top, '$'); i >= 0 {
		top = top[:i]
	}
	if i := strings.LastIndexByte(top, '.'); i >= 0 {
		return top[:i]
	}
	return ""
}

// SimpleNameOf returns the unqualified name of a binary class name.
func SimpleNameOf(fqn string) string {
	if i := strings.LastIndexAny(fqn, ".$"); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// Catalog is the read-only view of class metadata the generator consumes.
type Catalog interface {
	// ListTypes returns every type name in sorted order.
	ListTypes() []string

	// Lookup returns the full record for a type.
	Lookup(name string) (TypeInfo, bool)

	// MembersOf returns the declared members of a type in declaration order.
	MembersOf(name string) []Member

	// SupertypeOf returns the superclass of a type, or "".
	SupertypeOf(name string) string

	// InterfacesOf returns the direct interfaces of a type.
	InterfacesOf(name string) []string

	// EnclosingTypeOf returns the enclosing type of a nested type, or "".
	EnclosingTypeOf(name string) string

	// KindOf returns the kind of a type.
	KindOf(name string) (TypeKind, bool)
}

// Snapshot is an immutable Catalog. Build one with a Builder.
type Snapshot struct {
	types map[string]*TypeInfo
	names []string
}

var _ Catalog = (*Snapshot)(nil)

// ListTypes returns every type name in sorted order.
func (s *Snapshot) ListTypes() []string {
	return slices.Clone(s.names)
}

// Len returns the number of types in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.names)
}

// Lookup returns the record for name. Slices in the result are shared
// with the snapshot and must not be modified.
func (s *Snapshot) Lookup(name string) (TypeInfo, bool) {
	t, ok := s.types[name]
	if !ok {
		return TypeInfo{}, false
	}
	return *t, true
}

// Has reports whether name is in the snapshot.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// MembersOf returns the declared members of name.
func (s *Snapshot) MembersOf(name string) []Member {
	if t, ok := s.types[name]; ok {
		return slices.Clone(t.Members)
	}
	return nil
}

// SupertypeOf returns the superclass of name.
func (s *Snapshot) SupertypeOf(name string) string {
	if t, ok := s.types[name]; ok {
		return t.Super
	}
	return ""
}

// InterfacesOf returns the direct interfaces of name.
func (s *Snapshot) InterfacesOf(name string) []string {
	if t, ok := s.types[name]; ok {
		return slices.Clone(t.Interfaces)
	}
	return nil
}

// EnclosingTypeOf returns the enclosing type of name.
func (s *Snapshot) EnclosingTypeOf(name string) string {
	if t, ok := s.types[name]; ok {
		return t.Enclosing
	}
	return ""
}

// KindOf returns the kind of name.
func (s *Snapshot) KindOf(name string) (TypeKind, bool) {
	if t, ok := s.types[name]; ok {
		return t.Kind, true
	}
	return 0, false
}

// Types returns copies of all records in name order.
func (s *Snapshot) Types() []TypeInfo {
	out := make([]TypeInfo, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, *s.types[n])
	}
	return out
}

// NestedTypesOf returns the types directly enclosed by name, sorted.
func (s *Snapshot) NestedTypesOf(name string) []string {
	var out []string
	for _, n := range s.names {
		if s.types[n].Enclosing == name {
			out = append(out, n)
		}
	}
	return out
}

// Builder accumulates TypeInfo records into a Snapshot.
type Builder struct {
	types map[string]*TypeInfo
	dups  []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{types: make(map[string]*TypeInfo)}
}

// Add records a type. Member owners are filled in from the type name.
func (b *Builder) Add(t TypeInfo) {
	if _, ok := b.types[t.Name]; ok {
		b.dups = append(b.dups, t.Name)
		return
	}
	t.Interfaces = slices.Clone(t.Interfaces)
	t.StaticInit = slices.Clone(t.StaticInit)
	members := make([]Member, len(t.Members))
	for i, m := range t.Members {
		m.Owner = t.Name
		m.ParamNames = slices.Clone(m.ParamNames)
		m.Signature.Params = slices.Clone(m.Signature.Params)
		members[i] = m
	}
	t.Members = members
	if t.Enclosing == "" {
		t.Static = true
	}
	b.types[t.Name] = &t
}

// Has reports whether a type with the given name was added.
func (b *Builder) Has(name string) bool {
	_, ok := b.types[name]
	return ok
}

// Build freezes the accumulated types. Duplicate names are an error.
func (b *Builder) Build() (*Snapshot, error) {
	if len(b.dups) > 0 {
		return nil, &ValidationError{
			Code:    "duplicate_type",
			Message: "duplicate type name: " + strings.Join(b.dups, ", "),
		}
	}
	s := &Snapshot{
		types: make(map[string]*TypeInfo, len(b.types)),
		names: make([]string, 0, len(b.types)),
	}
	for name, t := range b.types {
		s.types[name] = t
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s, nil
}
