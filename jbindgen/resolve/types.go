// Package resolve maps catalog types onto binding expressions and merges
// declared and inherited methods into per-type overload sets.
package resolve

import (
	"fmt"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/naming"
)

// TypeResolver maps catalog type descriptors to binding expressions.
type TypeResolver struct {
	cat catalog.Catalog
	ids map[string]ir.BindingIdentifier
}

// NewTypeResolver creates a resolver over c. ids holds the binding
// identifier of every type in c.
func NewTypeResolver(c catalog.Catalog, ids map[string]ir.BindingIdentifier) *TypeResolver {
	return &TypeResolver{cat: c, ids: ids}
}

// Resolve returns the binding expression for t. Object types outside the
// catalog fail with *ir.UnresolvedTypeError; the caller fills in the
// owning member.
func (r *TypeResolver) Resolve(t catalog.TypeDescriptor) (ir.Expr, error) {
	switch t.Tag {
	case catalog.TagPrimitive:
		return primitive(t.Prim), nil
	case catalog.TagBoxed:
		return &ir.BoxedExpr{Element: primitive(t.Prim)}, nil
	case catalog.TagObject:
		return r.resolveObject(t.Name)
	case catalog.TagArray:
		elem, err := r.Resolve(t.Element())
		if err != nil {
			return nil, err
		}
		return ir.Array(elem), nil
	}
	return nil, fmt.Errorf("unknown type tag %v", t.Tag)
}

func (r *TypeResolver) resolveObject(name string) (ir.Expr, error) {
	switch name {
	case catalog.StringClass:
		return ir.String(), nil
	case catalog.ObjectClass:
		return ir.Object(), nil
	}
	id, ok := r.ids[name]
	if !ok {
		return nil, &ir.UnresolvedTypeError{Type: name}
	}
	return ir.Reference(name, id), nil
}

func primitive(k catalog.PrimitiveKind) *ir.PrimitiveExpr {
	target := ir.TargetNumber
	switch k {
	case catalog.Boolean:
		target = ir.TargetBoolean
	case catalog.Long:
		target = ir.TargetBigInt
	}
	return &ir.PrimitiveExpr{Java: k, Target: target}
}

// Callable resolves a method or constructor member. On failure the
// returned *ir.UnresolvedTypeError names the member.
func (r *TypeResolver) Callable(m catalog.Member, owner string) (ir.Callable, error) {
	c := ir.Callable{
		Name:      m.Name,
		VarArgs:   m.Signature.VarArgs,
		Static:    m.Static,
		Abstract:  m.Abstract,
		Default:   m.Default,
		Origin:    m.Owner,
		Signature: m.Signature,
		Doc:       m.Doc,
	}

	used := make(map[string]bool)
	for i, p := range m.Signature.Params {
		typ, err := r.Resolve(p)
		if err != nil {
			return ir.Callable{}, r.annotate(err, owner, m)
		}
		c.Params = append(c.Params, ir.Param{Name: paramName(m.ParamNames, i, used), Type: typ})
	}
	if m.Signature.Return != nil {
		typ, err := r.Resolve(*m.Signature.Return)
		if err != nil {
			return ir.Callable{}, r.annotate(err, owner, m)
		}
		c.Return = typ
	}
	return c, nil
}

// Field resolves a field member's type.
func (r *TypeResolver) Field(m catalog.Member, owner string) (ir.Expr, error) {
	typ, err := r.Resolve(m.Type)
	if err != nil {
		return nil, r.annotate(err, owner, m)
	}
	return typ, nil
}

func (r *TypeResolver) annotate(err error, owner string, m catalog.Member) error {
	if ue, ok := err.(*ir.UnresolvedTypeError); ok {
		member := m.Name
		if m.Kind != catalog.FieldMember {
			member += m.Signature.Erased()
		}
		return &ir.UnresolvedTypeError{Type: ue.Type, Owner: owner, Member: member}
	}
	return err
}

// paramName picks a unique, valid parameter name.
func paramName(names []string, i int, used map[string]bool) string {
	name := fmt.Sprintf("arg%d", i)
	if i < len(names) && names[i] != "" {
		name = naming.Sanitize(names[i])
	}
	for used[name] {
		name += "_"
	}
	used[name] = true
	return name
}
