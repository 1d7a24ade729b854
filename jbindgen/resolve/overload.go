package resolve

import (
	"sort"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

// MethodSet is the merged set of callable methods of one type, declared
// and inherited. Each entry's Owner is the nearest ancestor defining it.
type MethodSet struct {
	names  []string
	byName map[string][]catalog.Member
}

// Names returns the method names in sorted order.
func (s *MethodSet) Names() []string {
	return s.names
}

// Overloads returns the methods named name: declared first, then
// inherited in superclass-then-interface order.
func (s *MethodSet) Overloads(name string) []catalog.Member {
	return s.byName[name]
}

// All returns every method grouped by name in name order.
func (s *MethodSet) All() []catalog.Member {
	var out []catalog.Member
	for _, n := range s.names {
		out = append(out, s.byName[n]...)
	}
	return out
}

// OverloadResolver computes method sets bottom-up. Sets are memoized, so
// each type's conflicts are reported once.
type OverloadResolver struct {
	cat   catalog.Catalog
	diags *ir.Diagnostics
	sets  map[string]*MethodSet
	busy  map[string]bool
}

// NewOverloadResolver creates a resolver reporting conflicts to diags.
func NewOverloadResolver(c catalog.Catalog, diags *ir.Diagnostics) *OverloadResolver {
	return &OverloadResolver{
		cat:   c,
		diags: diags,
		sets:  make(map[string]*MethodSet),
		busy:  make(map[string]bool),
	}
}

// ResolveOverloads returns the signatures callable on class under name.
func (r *OverloadResolver) ResolveOverloads(class, name string) []catalog.Signature {
	var sigs []catalog.Signature
	for _, m := range r.MethodSet(class).Overloads(name) {
		sigs = append(sigs, m.Signature)
	}
	return sigs
}

// MethodSet returns the merged methods of class. Types outside the
// catalog have empty sets.
func (r *OverloadResolver) MethodSet(class string) *MethodSet {
	if s, ok := r.sets[class]; ok {
		return s
	}
	s := &MethodSet{byName: make(map[string][]catalog.Member)}
	if r.busy[class] {
		// Inheritance cycle; the catalog validator reports it.
		return s
	}
	info, ok := r.cat.Lookup(class)
	if !ok {
		r.sets[class] = s
		return s
	}
	r.busy[class] = true
	defer delete(r.busy, class)

	m := merger{r: r, class: class, set: s}
	for _, mem := range info.Members {
		if mem.Kind == catalog.MethodMember && mem.Eligible() {
			m.add(mem, true)
		}
	}
	if info.Super != "" {
		for _, mem := range r.MethodSet(info.Super).All() {
			m.add(mem, false)
		}
	}
	for _, iface := range info.Interfaces {
		for _, mem := range r.MethodSet(iface).All() {
			if mem.Static {
				continue
			}
			m.add(mem, false)
		}
	}

	for n := range s.byName {
		s.names = append(s.names, n)
	}
	sort.Strings(s.names)
	r.sets[class] = s
	return s
}

type merger struct {
	r     *OverloadResolver
	class string
	set   *MethodSet
}

func (m *merger) add(x catalog.Member, declared bool) {
	list := m.set.byName[x.Name]
	key := x.Signature.Erased()
	for i, e := range list {
		if e.Signature.Erased() != key {
			continue
		}
		if e.Owner == x.Owner && !declared {
			// Same method reached through two inheritance paths.
			if x.Signature.VarArgs {
				list[i].Signature.VarArgs = true
			}
			return
		}

		reason := ""
		switch {
		case e.Static != x.Static:
			reason = "static modifier differs"
		case !e.Signature.SameReturn(x.Signature) && !(!declared && m.covariant(e, x)):
			reason = "return type differs"
		}
		if reason != "" {
			m.r.diags.Report(&ir.OverloadConflictError{
				Owner:   m.class,
				Method:  x.Name,
				Kept:    e.Signature,
				Dropped: x.Signature,
				Reason:  reason,
			})
			return
		}

		varargs := e.Signature.VarArgs || x.Signature.VarArgs
		if e.Owner != m.class && e.Abstract && !x.Abstract && m.isInterface(e.Owner) {
			// A concrete inherited definition replaces an abstract one
			// reached through an interface.
			list[i] = x
		}
		list[i].Signature.VarArgs = varargs
		return
	}
	m.set.byName[x.Name] = append(list, x)
}

func (m *merger) isInterface(class string) bool {
	k, ok := m.r.cat.KindOf(class)
	return ok && k == catalog.KindInterface
}

// covariant reports whether e's return type narrows x's: x returns
// java.lang.Object or an ancestor of e's return class.
func (m *merger) covariant(e, x catalog.Member) bool {
	er, xr := e.Signature.Return, x.Signature.Return
	if er == nil || xr == nil || er.Tag == catalog.TagPrimitive || xr.Tag == catalog.TagPrimitive {
		return false
	}
	if xr.Tag == catalog.TagObject && xr.Name == catalog.ObjectClass {
		return true
	}
	if er.Tag != catalog.TagObject || xr.Tag != catalog.TagObject {
		return false
	}
	return isAncestor(m.r.cat, xr.Name, er.Name)
}

// isAncestor reports whether anc is a superclass or superinterface of class.
func isAncestor(c catalog.Catalog, anc, class string) bool {
	seen := make(map[string]bool)
	var walk func(string) bool
	walk = func(n string) bool {
		if n == "" || seen[n] {
			return false
		}
		seen[n] = true
		if n == anc {
			return true
		}
		if walk(c.SupertypeOf(n)) {
			return true
		}
		for _, i := range c.InterfacesOf(n) {
			if walk(i) {
				return true
			}
		}
		return false
	}
	return class != anc && walk(class)
}
