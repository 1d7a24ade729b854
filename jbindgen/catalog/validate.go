package catalog

import (
	"strings"
)

// ValidationError represents a structural problem in a catalog.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the snapshot for structural issues that make binding
// impossible. Returns all validation errors found (not just the first).
// References to types outside the snapshot are not errors here; the
// binding emitter reports them as unresolved.
func (s *Snapshot) Validate() []error {
	var errs []*ValidationError

	for _, name := range s.names {
		t := s.types[name]

		if t.Enclosing != "" && !s.Has(t.Enclosing) {
			errs = append(errs, &ValidationError{
				Code:    "missing_enclosing_type",
				Message: "type " + name + " is nested in unknown type " + t.Enclosing,
			})
		}
		if t.Kind == KindInterface && t.Super != "" && t.Super != ObjectClass {
			errs = append(errs, &ValidationError{
				Code:    "interface_superclass",
				Message: "interface " + name + " declares superclass " + t.Super,
			})
		}

		fields := make(map[string]bool)
		for _, m := range t.Members {
			switch m.Kind {
			case FieldMember:
				if fields[m.Name] {
					errs = append(errs, &ValidationError{
						Code:    "duplicate_field",
						Message: "duplicate field " + name + "." + m.Name,
					})
				}
				fields[m.Name] = true
			case MethodMember, ConstructorMember:
				if m.Signature.VarArgs {
					n := len(m.Signature.Params)
					if n == 0 || !m.Signature.Params[n-1].IsArray() {
						errs = append(errs, &ValidationError{
							Code:    "invalid_varargs",
							Message: "variadic " + name + "." + m.Name + " must end in an array parameter",
						})
					}
				}
			}
		}
	}

	errs = append(errs, s.detectCircularInheritance()...)
	errs = append(errs, s.detectCircularNesting()...)

	var result []error
	for _, e := range errs {
		result = append(result, e)
	}
	return result
}

// detectCircularInheritance checks for cycles through superclasses and interfaces.
func (s *Snapshot) detectCircularInheritance() []*ValidationError {
	var errs []*ValidationError

	visited := make(map[string]bool)
	inStack := make(map[string]bool)

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		if inStack[name] {
			errs = append(errs, &ValidationError{
				Code:    "circular_inheritance",
				Message: "circular inheritance detected: " + strings.Join(append(path, name), " -> "),
			})
			return
		}
		if visited[name] {
			return
		}
		t, ok := s.types[name]
		if !ok {
			return
		}
		visited[name] = true
		inStack[name] = true
		path = append(path, name)
		if t.Super != "" {
			visit(t.Super, path)
		}
		for _, iface := range t.Interfaces {
			visit(iface, path)
		}
		inStack[name] = false
	}

	for _, name := range s.names {
		visit(name, nil)
	}
	return errs
}

// detectCircularNesting checks that enclosing chains terminate.
func (s *Snapshot) detectCircularNesting() []*ValidationError {
	var errs []*ValidationError
	for _, name := range s.names {
		seen := map[string]bool{name: true}
		for cur := s.types[name].Enclosing; cur != ""; {
			if seen[cur] {
				errs = append(errs, &ValidationError{
					Code:    "circular_nesting",
					Message: "type " + name + " is transitively nested in itself",
				})
				break
			}
			seen[cur] = true
			t, ok := s.types[cur]
			if !ok {
				break
			}
			cur = t.Enclosing
		}
	}
	return errs
}
