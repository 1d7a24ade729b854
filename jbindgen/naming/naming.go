// Package naming assigns collision-free binding identifiers to catalog types.
//
// Top-level types keep their simple name unless another top-level type
// shares it. Colliding types are qualified with the shortest package
// suffix that separates them ("featureset_Thing", "ambiguous_Thing").
// Nested types are scoped to their enclosing type's identifier and never
// reuse a top-level identifier, so a reference written inside a namespace
// still reaches the top-level type.
package naming

import (
	"fmt"
	"sort"
	"strings"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

// CollisionGroup is a set of top-level types sharing a simple name.
type CollisionGroup struct {
	SimpleName string
	Classes    []string // sorted
}

// Collided reports whether more than one type shares the name.
func (g CollisionGroup) Collided() bool {
	return len(g.Classes) > 1
}

// CollisionGroups partitions the top-level types of c by simple name.
// Groups are sorted by simple name.
func CollisionGroups(c catalog.Catalog) []CollisionGroup {
	byName := make(map[string][]string)
	for _, name := range c.ListTypes() {
		if c.EnclosingTypeOf(name) != "" {
			continue
		}
		simple := catalog.SimpleNameOf(name)
		byName[simple] = append(byName[simple], name)
	}

	groups := make([]CollisionGroup, 0, len(byName))
	for simple, classes := range byName {
		sort.Strings(classes)
		groups = append(groups, CollisionGroup{SimpleName: simple, Classes: classes})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SimpleName < groups[j].SimpleName
	})
	return groups
}

// Qualify returns the identifier for fqn using the last level package
// components, joined with underscores. Level 0 is the simple name, with an
// underscore appended if the declaration file already uses it.
func Qualify(fqn string, level int) string {
	simple := Sanitize(catalog.SimpleNameOf(fqn))
	pkg := catalog.PackageOf(fqn)
	if level <= 0 || pkg == "" {
		if declared[simple] {
			return simple + "_"
		}
		return simple
	}
	parts := strings.Split(pkg, ".")
	if level > len(parts) {
		level = len(parts)
	}
	parts = parts[len(parts)-level:]
	for i, p := range parts {
		parts[i] = Sanitize(p)
	}
	return strings.Join(parts, "_") + "_" + simple
}

func maxLevel(fqn string) int {
	pkg := catalog.PackageOf(fqn)
	if pkg == "" {
		return 0
	}
	return strings.Count(pkg, ".") + 1
}

// Disambiguate assigns a binding identifier to every type in c.
// It fails with *ir.DisambiguationError when two types cannot be told
// apart even by their fully qualified names.
func Disambiguate(groups []CollisionGroup, c catalog.Catalog) (map[string]ir.BindingIdentifier, error) {
	levels := make(map[string]int)
	for _, g := range groups {
		if !g.Collided() {
			levels[g.Classes[0]] = 0
			continue
		}
		lvl := minimalLevel(g.Classes)
		for _, cls := range g.Classes {
			levels[cls] = lvl
		}
	}

	if err := escalate(levels); err != nil {
		return nil, err
	}

	ids := make(map[string]ir.BindingIdentifier, len(levels))
	for cls, lvl := range levels {
		ids[cls] = ir.BindingIdentifier{Name: Qualify(cls, lvl)}
	}

	if err := scopeNested(ids, c); err != nil {
		return nil, err
	}
	return ids, nil
}

// minimalLevel returns the smallest qualification level that gives every
// class in the group a distinct identifier.
func minimalLevel(classes []string) int {
	top := 0
	for _, cls := range classes {
		top = max(top, maxLevel(cls))
	}
	for lvl := 1; lvl <= top; lvl++ {
		seen := make(map[string]bool)
		ok := true
		for _, cls := range classes {
			q := Qualify(cls, lvl)
			if seen[q] {
				ok = false
				break
			}
			seen[q] = true
		}
		if ok {
			return lvl
		}
	}
	return top
}

// escalate raises qualification levels until identifiers are globally
// unique. Qualified types move first; unqualified ones move only when
// nothing else can.
func escalate(levels map[string]int) error {
	for {
		owners := make(map[string][]string)
		for cls, lvl := range levels {
			q := Qualify(cls, lvl)
			owners[q] = append(owners[q], cls)
		}

		var clashes []string
		for q, classes := range owners {
			if len(classes) > 1 {
				clashes = append(clashes, q)
			}
		}
		if len(clashes) == 0 {
			return nil
		}
		sort.Strings(clashes)

		for _, q := range clashes {
			classes := owners[q]
			sort.Strings(classes)

			var movable []string
			for _, cls := range classes {
				if levels[cls] > 0 && levels[cls] < maxLevel(cls) {
					movable = append(movable, cls)
				}
			}
			if len(movable) == 0 {
				for _, cls := range classes {
					if levels[cls] < maxLevel(cls) {
						movable = append(movable, cls)
					}
				}
			}
			if len(movable) == 0 {
				return &ir.DisambiguationError{Identifier: q, Classes: classes}
			}
			for _, cls := range movable {
				levels[cls]++
			}
		}
	}
}

// scopeNested assigns identifiers to nested types, parents first.
func scopeNested(ids map[string]ir.BindingIdentifier, c catalog.Catalog) error {
	var nested []string
	depth := make(map[string]int)
	for _, name := range c.ListTypes() {
		if c.EnclosingTypeOf(name) == "" {
			continue
		}
		nested = append(nested, name)
		d := 0
		seen := map[string]bool{}
		for cur := name; c.EnclosingTypeOf(cur) != "" && !seen[cur]; cur = c.EnclosingTypeOf(cur) {
			seen[cur] = true
			d++
		}
		depth[name] = d
	}
	sort.SliceStable(nested, func(i, j int) bool {
		if depth[nested[i]] != depth[nested[j]] {
			return depth[nested[i]] < depth[nested[j]]
		}
		return nested[i] < nested[j]
	})

	global := make(map[string]bool, len(ids)+len(declared))
	for _, id := range ids {
		global[id.Name] = true
	}
	for name := range declared {
		global[name] = true
	}

	taken := make(map[string]map[string]bool) // scope path -> names in use
	for _, name := range nested {
		enc := c.EnclosingTypeOf(name)
		parent, ok := ids[enc]
		if !ok {
			return fmt.Errorf("nested type %s: enclosing type %s has no binding", name, enc)
		}
		scope := parent.Path()
		used, ok := taken[scope]
		if !ok {
			used = MemberNames(c, enc)
			for g := range global {
				used[g] = true
			}
			taken[scope] = used
		}

		base := Sanitize(catalog.SimpleNameOf(name))
		chosen := ""
		for _, cand := range []string{base, base + "_"} {
			if !used[cand] {
				chosen = cand
				break
			}
		}
		if chosen == "" {
			return &ir.DisambiguationError{Identifier: scope + "." + base, Classes: []string{enc, name}}
		}
		used[chosen] = true
		ids[name] = ir.BindingIdentifier{Name: chosen, Scope: scope}
	}
	return nil
}

// Names the declaration file declares besides the units themselves.
const (
	// StaticNamespace is the type-level member holder inside every
	// unit's namespace.
	StaticNamespace = "Static"
	ImportMapName   = "ImportMap"
	ImportFunction  = "importClass"
	CallbackType    = "Callback"
)

// declared holds the names no binding identifier may take. A unit named
// Static would be shadowed by its own namespace member; the rest are
// declared at top level.
var declared = map[string]bool{
	StaticNamespace: true,
	ImportMapName:   true,
	ImportFunction:  true,
	CallbackType:    true,
}

// MemberNames returns the names the eligible declared members of class
// expose in its scope: method names and primary accessor names.
func MemberNames(c catalog.Catalog, class string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range c.MembersOf(class) {
		if !m.Eligible() {
			continue
		}
		switch m.Kind {
		case catalog.MethodMember:
			names[m.Name] = true
		case catalog.FieldMember:
			names[Getter(m.Name)] = true
			if !m.Final {
				names[Setter(m.Name)] = true
			}
		}
	}
	return names
}
