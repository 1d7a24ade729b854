package catalog

import (
	"fmt"
	"strings"
)

// Tag identifies the category of a type descriptor.
type Tag int

const (
	TagPrimitive Tag = iota // boolean, int, long, ...
	TagBoxed                // java.lang.Integer and friends
	TagObject               // any other class or interface
	TagArray                // one or more dimensions over a non-array element
)

// String returns the string representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagPrimitive:
		return "primitive"
	case TagBoxed:
		return "boxed"
	case TagObject:
		return "object"
	case TagArray:
		return "array"
	default:
		return "unknown"
	}
}

// PrimitiveKind is one of the eight Java primitive types.
type PrimitiveKind int

const (
	Boolean PrimitiveKind = iota + 1
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
)

var primitiveNames = map[PrimitiveKind]string{
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
}

var boxNames = map[PrimitiveKind]string{
	Boolean: "java.lang.Boolean",
	Byte:    "java.lang.Byte",
	Char:    "java.lang.Character",
	Short:   "java.lang.Short",
	Int:     "java.lang.Integer",
	Long:    "java.lang.Long",
	Float:   "java.lang.Float",
	Double:  "java.lang.Double",
}

var descriptorChars = map[PrimitiveKind]byte{
	Boolean: 'Z',
	Byte:    'B',
	Char:    'C',
	Short:   'S',
	Int:     'I',
	Long:    'J',
	Float:   'F',
	Double:  'D',
}

// String returns the Java keyword for the primitive.
func (k PrimitiveKind) String() string {
	if n, ok := primitiveNames[k]; ok {
		return n
	}
	return "unknown"
}

// BoxName returns the fully qualified name of the wrapper class.
func (k PrimitiveKind) BoxName() string {
	return boxNames[k]
}

// LookupPrimitive returns the primitive kind for a Java keyword.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	for k, n := range primitiveNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// LookupBoxed returns the primitive kind wrapped by a boxed class name.
func LookupBoxed(fqn string) (PrimitiveKind, bool) {
	for k, n := range boxNames {
		if n == fqn {
			return k, true
		}
	}
	return 0, false
}

// Well-known class names with builtin bindings.
const (
	StringClass = "java.lang.String"
	ObjectClass = "java.lang.Object"
)

// TypeDescriptor describes a Java type as it appears on a field or in a signature.
// Arrays hold a non-array element plus a dimension count.
type TypeDescriptor struct {
	Tag  Tag
	Prim PrimitiveKind   // TagPrimitive, TagBoxed
	Name string          // TagObject: fully qualified class name
	Elem *TypeDescriptor // TagArray
	Dims int             // TagArray, always >= 1
}

// Primitive returns the descriptor for a primitive type.
func Primitive(k PrimitiveKind) TypeDescriptor {
	return TypeDescriptor{Tag: TagPrimitive, Prim: k}
}

// Boxed returns the descriptor for the wrapper class of a primitive.
func Boxed(k PrimitiveKind) TypeDescriptor {
	return TypeDescriptor{Tag: TagBoxed, Prim: k}
}

// Object returns the descriptor for a class name. Wrapper class names
// normalize to their boxed descriptor.
func Object(fqn string) TypeDescriptor {
	if k, ok := LookupBoxed(fqn); ok {
		return Boxed(k)
	}
	return TypeDescriptor{Tag: TagObject, Name: fqn}
}

// ArrayOf returns an array of elem with the given number of dimensions.
// An array element is flattened into a single multi-dimensional descriptor.
func ArrayOf(elem TypeDescriptor, dims int) TypeDescriptor {
	if dims <= 0 {
		return elem
	}
	if elem.Tag == TagArray {
		return ArrayOf(*elem.Elem, elem.Dims+dims)
	}
	e := elem
	return TypeDescriptor{Tag: TagArray, Elem: &e, Dims: dims}
}

// IsArray reports whether the descriptor is an array.
func (t TypeDescriptor) IsArray() bool { return t.Tag == TagArray }

// IsPrimitive reports whether the descriptor is an unboxed primitive.
func (t TypeDescriptor) IsPrimitive() bool { return t.Tag == TagPrimitive }

// IsZero reports whether the descriptor is unset.
func (t TypeDescriptor) IsZero() bool {
	return t.Tag == TagPrimitive && t.Prim == 0
}

// Element peels exactly one array dimension.
// It panics if t is not an array.
func (t TypeDescriptor) Element() TypeDescriptor {
	if t.Tag != TagArray {
		panic("catalog: Element of non-array " + t.String())
	}
	if t.Dims == 1 {
		return *t.Elem
	}
	return ArrayOf(*t.Elem, t.Dims-1)
}

// Base returns the innermost non-array type.
func (t TypeDescriptor) Base() TypeDescriptor {
	if t.Tag == TagArray {
		return *t.Elem
	}
	return t
}

// ClassName returns the class the descriptor refers to, or "" for primitives.
func (t TypeDescriptor) ClassName() string {
	switch t.Tag {
	case TagBoxed:
		return t.Prim.BoxName()
	case TagObject:
		return t.Name
	case TagArray:
		return t.Elem.ClassName()
	}
	return ""
}

// Equal reports whether two descriptors denote the same type.
func (t TypeDescriptor) Equal(o TypeDescriptor) bool {
	return t.Descriptor() == o.Descriptor()
}

// String returns the Java source spelling, e.g. "int[][]".
func (t TypeDescriptor) String() string {
	switch t.Tag {
	case TagPrimitive:
		return t.Prim.String()
	case TagBoxed:
		return t.Prim.BoxName()
	case TagObject:
		return t.Name
	case TagArray:
		return t.Elem.String() + strings.Repeat("[]", t.Dims)
	}
	return "?"
}

// Descriptor returns the JVM descriptor, e.g. "[[I" or "Ljava/lang/String;".
func (t TypeDescriptor) Descriptor() string {
	switch t.Tag {
	case TagPrimitive:
		return string(descriptorChars[t.Prim])
	case TagBoxed:
		return "L" + strings.ReplaceAll(t.Prim.BoxName(), ".", "/") + ";"
	case TagObject:
		return "L" + strings.ReplaceAll(t.Name, ".", "/") + ";"
	case TagArray:
		return strings.Repeat("[", t.Dims) + t.Elem.Descriptor()
	}
	return "?"
}

// ParseType parses a Java source type such as "int", "java.lang.String[]"
// or "java.lang.Integer". Generic arguments are not part of the type model.
func ParseType(s string) (TypeDescriptor, error) {
	s = strings.TrimSpace(s)
	dims := 0
	for strings.HasSuffix(s, "[]") {
		dims++
		s = strings.TrimSpace(s[:len(s)-2])
	}
	if s == "" {
		return TypeDescriptor{}, fmt.Errorf("empty type")
	}
	if s == "void" {
		return TypeDescriptor{}, fmt.Errorf("void is not a value type")
	}
	if k, ok := LookupPrimitive(s); ok {
		return ArrayOf(Primitive(k), dims), nil
	}
	if !isQualifiedName(s) {
		return TypeDescriptor{}, fmt.Errorf("invalid type name %q", s)
	}
	return ArrayOf(Object(s), dims), nil
}

// ParseReturnType is ParseType that maps "void" (or "") to nil.
func ParseReturnType(s string) (*TypeDescriptor, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil, nil
	}
	t, err := ParseType(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isQualifiedName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r == '_' || r == '$':
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9' && i > 0:
			default:
				return false
			}
		}
	}
	return true
}
