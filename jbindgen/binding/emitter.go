// Package binding turns a class catalog into ordered binding units.
package binding

import (
	"errors"
	"fmt"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/naming"
	"github.com/broady/jbind/jbindgen/resolve"
)

// Result is the output of Emit.
type Result struct {
	// Units in dependency order: supertypes, interfaces and enclosing
	// types precede the types that depend on them.
	Units []*ir.TypeBindingUnit

	// Diagnostics in report order.
	Diagnostics []ir.Diagnostic

	// Dispatch lists every callable the units expose.
	Dispatch *DispatchTable
}

// Unit returns the unit bound to class, or nil.
func (r *Result) Unit(class string) *ir.TypeBindingUnit {
	for _, u := range r.Units {
		if u.Class == class {
			return u
		}
	}
	return nil
}

// validator is implemented by catalogs that can check their own structure.
type validator interface {
	Validate() []error
}

// Emit binds every type in c. Recoverable problems become diagnostics;
// an invalid catalog or an identifier that cannot be made unique is fatal.
func Emit(c catalog.Catalog) (*Result, error) {
	if v, ok := c.(validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
		}
	}

	ids, err := naming.Disambiguate(naming.CollisionGroups(c), c)
	if err != nil {
		return nil, fmt.Errorf("assign identifiers: %w", err)
	}

	order, err := Order(c)
	if err != nil {
		return nil, err
	}

	e := &emitter{
		cat:    c,
		ids:    ids,
		types:  resolve.NewTypeResolver(c, ids),
		nested: make(map[string][]string),
	}
	for _, name := range c.ListTypes() {
		if enc := c.EnclosingTypeOf(name); enc != "" {
			e.nested[enc] = append(e.nested[enc], name)
		}
	}
	e.overloads = resolve.NewOverloadResolver(c, &e.diags)

	res := &Result{}
	for _, class := range order {
		res.Units = append(res.Units, e.unit(class))
	}
	res.Diagnostics = e.diags.All()
	res.Dispatch = NewDispatchTable(res.Units)
	return res, nil
}

// Order returns the types of c so that every type follows its superclass,
// interfaces and enclosing type. Ties are broken by name.
func Order(c catalog.Catalog) ([]string, error) {
	var order []string
	done := make(map[string]bool)
	active := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if done[name] {
			return nil
		}
		if active[name] {
			return fmt.Errorf("dependency cycle through %s", name)
		}
		if _, ok := c.KindOf(name); !ok {
			return nil
		}
		active[name] = true
		deps := []string{c.SupertypeOf(name)}
		deps = append(deps, c.InterfacesOf(name)...)
		deps = append(deps, c.EnclosingTypeOf(name))
		for _, d := range deps {
			if d == "" {
				continue
			}
			if err := visit(d); err != nil {
				return err
			}
		}
		active[name] = false
		done[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range c.ListTypes() {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

type emitter struct {
	cat       catalog.Catalog
	ids       map[string]ir.BindingIdentifier
	types     *resolve.TypeResolver
	overloads *resolve.OverloadResolver
	diags     ir.Diagnostics
	nested    map[string][]string // enclosing type -> nested types, sorted
}

func (e *emitter) unit(class string) *ir.TypeBindingUnit {
	info, _ := e.cat.Lookup(class)
	u := &ir.TypeBindingUnit{
		Class:  class,
		ID:     e.ids[class],
		Kind:   info.Kind,
		Doc:    info.Doc,
		Source: info.Source,
	}

	if info.Super != "" && info.Super != catalog.ObjectClass {
		if id, ok := e.ids[info.Super]; ok {
			u.Super = &id
		} else {
			e.diags.Addf(ir.CodeMissingSupertype, class, "superclass %s is not in the catalog", info.Super)
		}
	}
	for _, iface := range info.Interfaces {
		if id, ok := e.ids[iface]; ok {
			u.Interfaces = append(u.Interfaces, id)
		} else {
			e.diags.Addf(ir.CodeMissingSupertype, class, "interface %s is not in the catalog", iface)
		}
	}
	if info.Enclosing != "" {
		id := e.ids[info.Enclosing]
		u.Enclosing = &id
	}
	for _, name := range e.nested[class] {
		u.Nested = append(u.Nested, e.ids[name])
	}

	u.Methods = e.methods(class)
	u.Accessors = e.accessors(class, info, u.Methods)
	if info.IsConcrete() {
		u.Constructors = e.constructors(class, info)
	}
	u.StaticState = staticState(info)
	return u
}

func (e *emitter) methods(class string) []ir.Callable {
	var out []ir.Callable
	for _, m := range e.overloads.MethodSet(class).All() {
		c, err := e.types.Callable(m, class)
		if err != nil {
			// Inherited members were reported on their declaring type.
			if m.Owner == class {
				e.diags.Report(err)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

func (e *emitter) constructors(class string, info catalog.TypeInfo) []ir.Callable {
	var out []ir.Callable
	seen := make(map[string]int)
	for _, m := range info.Members {
		if m.Kind != catalog.ConstructorMember || !(m.Visibility == catalog.Public || m.Visibility == catalog.Protected) {
			continue
		}
		key := m.Signature.Erased()
		if i, ok := seen[key]; ok {
			out[i].VarArgs = out[i].VarArgs || m.Signature.VarArgs
			out[i].Signature.VarArgs = out[i].VarArgs
			continue
		}
		c, err := e.types.Callable(m, class)
		if err != nil {
			e.diags.Report(err)
			continue
		}
		c.Name = "new"
		seen[key] = len(out)
		out = append(out, c)
	}
	return out
}

func (e *emitter) accessors(class string, info catalog.TypeInfo, methods []ir.Callable) []ir.Accessor {
	used := make(map[string]bool)
	for _, m := range methods {
		used[m.Name] = true
	}
	hidden := make(map[string]bool)

	var out []ir.Accessor
	add := func(owner string, m catalog.Member) {
		typ, err := e.types.Field(m, owner)
		if err != nil {
			// Inherited fields were reported on their declaring type.
			if owner == class {
				e.diags.Report(err)
			}
			return
		}

		getter, setter := accessorNames(m.Name, m.Final, used)
		if getter != naming.Getter(m.Name) {
			e.diags.Addf(ir.CodeAccessorRenamed, class+"."+m.Name,
				"accessor %s collides with another member; using %s", naming.Getter(m.Name), getter)
		}
		used[getter] = true
		if setter != "" {
			used[setter] = true
		}

		out = append(out, ir.Accessor{
			Field:  m.Name,
			Getter: getter,
			Setter: setter,
			Type:   typ,
			Java:   m.Type,
			Static: m.Static,
			Origin: owner,
			Doc:    m.Doc,
		})
	}

	for _, m := range info.Members {
		if m.Kind != catalog.FieldMember {
			continue
		}
		hidden[m.Name] = true
		if m.Eligible() {
			add(class, m)
		}
	}

	// Static has no extends clause: inherited static fields are copied
	// from the superclass chain.
	seen := map[string]bool{class: true}
	for sup := e.cat.SupertypeOf(class); sup != "" && !seen[sup]; sup = e.cat.SupertypeOf(sup) {
		seen[sup] = true
		for _, m := range e.cat.MembersOf(sup) {
			if m.Kind != catalog.FieldMember || hidden[m.Name] {
				continue
			}
			hidden[m.Name] = true
			if m.Static && m.Eligible() {
				add(sup, m)
			}
		}
	}
	return out
}

// accessorNames picks getter and setter names not already in use,
// falling back to a "Field" suffix.
func accessorNames(field string, final bool, used map[string]bool) (string, string) {
	free := func(g, s string) bool {
		return !used[g] && (final || !used[s])
	}
	candidates := []string{field, field + "Field"}
	for _, base := range candidates {
		g, s := naming.Getter(base), naming.Setter(base)
		if free(g, s) {
			if final {
				s = ""
			}
			return g, s
		}
	}
	base := field + "Field"
	for {
		base += "_"
		g, s := naming.Getter(base), naming.Setter(base)
		if free(g, s) {
			if final {
				s = ""
			}
			return g, s
		}
	}
}

// staticState collapses static initializers into one ordered state:
// one entry per eligible static field, in first-assignment order, holding
// the last assigned value.
func staticState(info catalog.TypeInfo) ir.StaticState {
	eligible := make(map[string]bool)
	for _, m := range info.Members {
		if m.Kind == catalog.FieldMember && m.Static && m.Eligible() {
			eligible[m.Name] = true
		}
	}

	var order []string
	values := make(map[string]string)
	for _, a := range info.StaticInit {
		if !eligible[a.Field] {
			continue
		}
		if _, ok := values[a.Field]; !ok {
			order = append(order, a.Field)
		}
		values[a.Field] = a.Value
	}

	var st ir.StaticState
	for _, f := range order {
		st.Entries = append(st.Entries, ir.StaticEntry{Field: f, Value: values[f]})
	}
	return st
}
