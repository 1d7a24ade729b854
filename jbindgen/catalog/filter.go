package catalog

import (
	"fmt"
	"strings"
)

// PackageExpr matches class names by package.
// "com.example.*" matches types directly in com.example;
// "com.example.**" also matches every subpackage.
type PackageExpr struct {
	Package   string
	Recursive bool
}

// ParsePackageExpr parses "pkg.*" or "pkg.**".
func ParsePackageExpr(s string) (PackageExpr, error) {
	switch {
	case strings.HasSuffix(s, ".**"):
		return PackageExpr{Package: strings.TrimSuffix(s, ".**"), Recursive: true}, nil
	case strings.HasSuffix(s, ".*"):
		return PackageExpr{Package: strings.TrimSuffix(s, ".*")}, nil
	}
	return PackageExpr{}, fmt.Errorf("package expression %q must end in .* or .**", s)
}

// String returns the expression in its source form.
func (e PackageExpr) String() string {
	if e.Recursive {
		return e.Package + ".**"
	}
	return e.Package + ".*"
}

// Match reports whether the class name falls under the expression.
func (e PackageExpr) Match(fqn string) bool {
	pkg := PackageOf(fqn)
	if pkg == e.Package {
		return true
	}
	return e.Recursive && strings.HasPrefix(pkg, e.Package+".")
}

// FilterResult reports which selectors matched nothing.
type FilterResult struct {
	UnusedExprs    []string
	UnknownClasses []string
}

// Filter restricts a snapshot to the types selected by package expressions
// and explicit class names, plus everything they extend, implement or are
// nested in. With no selectors the snapshot is returned unchanged.
func Filter(s *Snapshot, exprs []PackageExpr, classes []string) (*Snapshot, FilterResult) {
	var res FilterResult
	if len(exprs) == 0 && len(classes) == 0 {
		return s, res
	}

	keep := make(map[string]bool)
	for _, e := range exprs {
		used := false
		for _, name := range s.names {
			if e.Match(name) {
				keep[name] = true
				used = true
			}
		}
		if !used {
			res.UnusedExprs = append(res.UnusedExprs, e.String())
		}
	}
	for _, c := range classes {
		if !s.Has(c) {
			res.UnknownClasses = append(res.UnknownClasses, c)
			continue
		}
		keep[c] = true
	}

	var closure func(name string)
	closure = func(name string) {
		t, ok := s.types[name]
		if !ok {
			return
		}
		deps := append([]string{t.Super, t.Enclosing}, t.Interfaces...)
		for _, d := range deps {
			if d != "" && s.Has(d) && !keep[d] {
				keep[d] = true
				closure(d)
			}
		}
	}
	for _, name := range s.names {
		if keep[name] {
			closure(name)
		}
	}

	out := &Snapshot{types: make(map[string]*TypeInfo, len(keep))}
	for _, name := range s.names {
		if keep[name] {
			out.types[name] = s.types[name]
			out.names = append(out.names, name)
		}
	}
	return out, res
}
