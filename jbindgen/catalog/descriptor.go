package catalog

import (
	"fmt"
	"strings"
)

// ParseDescriptor parses a JVM field descriptor such as "[[I" or
// "Ljava/lang/String;".
func ParseDescriptor(desc string) (TypeDescriptor, error) {
	t, n, err := parseFieldType(desc, 0)
	if err != nil {
		return TypeDescriptor{}, err
	}
	if n != len(desc) {
		return TypeDescriptor{}, fmt.Errorf("trailing data in descriptor %q", desc)
	}
	return t, nil
}

// ParseMethodDescriptor parses a JVM method descriptor such as
// "(I[Ljava/lang/String;)V". A void return yields a nil return type.
func ParseMethodDescriptor(desc string) ([]TypeDescriptor, *TypeDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, nil, fmt.Errorf("method descriptor %q must start with '('", desc)
	}

	var params []TypeDescriptor
	i := 1
	for i < len(desc) && desc[i] != ')' {
		t, n, err := parseFieldType(desc, i)
		if err != nil {
			return nil, nil, err
		}
		params = append(params, t)
		i += n
	}
	if i >= len(desc) {
		return nil, nil, fmt.Errorf("unterminated parameter list in %q", desc)
	}
	i++

	if desc[i:] == "V" {
		return params, nil, nil
	}
	ret, n, err := parseFieldType(desc, i)
	if err != nil {
		return nil, nil, err
	}
	if i+n != len(desc) {
		return nil, nil, fmt.Errorf("trailing data in descriptor %q", desc)
	}
	return params, &ret, nil
}

// MethodDescriptor renders params and return type as a JVM method descriptor.
func MethodDescriptor(params []TypeDescriptor, ret *TypeDescriptor) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range params {
		sb.WriteString(p.Descriptor())
	}
	sb.WriteByte(')')
	if ret == nil {
		sb.WriteByte('V')
	} else {
		sb.WriteString(ret.Descriptor())
	}
	return sb.String()
}

func parseFieldType(desc string, start int) (TypeDescriptor, int, error) {
	i := start
	dims := 0
	for i < len(desc) && desc[i] == '[' {
		dims++
		i++
	}
	if i >= len(desc) {
		return TypeDescriptor{}, 0, fmt.Errorf("truncated descriptor %q", desc)
	}

	var base TypeDescriptor
	switch desc[i] {
	case 'Z':
		base = Primitive(Boolean)
	case 'B':
		base = Primitive(Byte)
	case 'C':
		base = Primitive(Char)
	case 'S':
		base = Primitive(Short)
	case 'I':
		base = Primitive(Int)
	case 'J':
		base = Primitive(Long)
	case 'F':
		base = Primitive(Float)
	case 'D':
		base = Primitive(Double)
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return TypeDescriptor{}, 0, fmt.Errorf("malformed class descriptor in %q", desc)
		}
		name := strings.ReplaceAll(desc[i+1:i+semicolon], "/", ".")
		return ArrayOf(Object(name), dims), i - start + semicolon + 1, nil
	default:
		return TypeDescriptor{}, 0, fmt.Errorf("unexpected %q in descriptor %q", desc[i], desc)
	}
	return ArrayOf(base, dims), i - start + 1, nil
}
