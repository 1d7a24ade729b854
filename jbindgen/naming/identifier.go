package naming

import (
	"strings"
	"unicode"

	"github.com/golang-cz/textcase"
)

// reserved holds TypeScript keywords and the built-in type names that
// cannot name a binding.
var reserved = func() map[string]bool {
	m := make(map[string]bool)
	for _, w := range strings.Fields(`
		any arguments boolean break case catch class const continue debugger
		default delete do else enum eval export extends false finally for
		function if implements import in instanceof interface let module
		namespace new null number package private protected public return
		static string super switch symbol this throw true try type typeof
		var void while with yield`) {
		m[w] = true
	}
	return m
}()

// EscapeReserved appends an underscore to reserved words.
func EscapeReserved(name string) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}

func identRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// NeedsQuoting reports whether name must be quoted as a property key.
func NeedsQuoting(name string) bool {
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return true
	}
	return strings.IndexFunc(name, func(r rune) bool { return !identRune(r) }) >= 0
}

// Sanitize maps name onto a valid TypeScript identifier. Invalid runes
// become underscores.
func Sanitize(name string) string {
	if name == "" {
		return "_"
	}
	mapped := strings.Map(func(r rune) rune {
		if identRune(r) {
			return r
		}
		return '_'
	}, name)
	if unicode.IsDigit(rune(mapped[0])) {
		mapped = "_" + mapped
	}
	return EscapeReserved(mapped)
}

// PackagePath escapes each component of a dotted package name, e.g.
// "com.example.function" becomes "com.example.function_".
func PackagePath(pkg string) string {
	if pkg == "" {
		return ""
	}
	parts := strings.Split(pkg, ".")
	for i, p := range parts {
		parts[i] = Sanitize(p)
	}
	return strings.Join(parts, ".")
}

// Getter returns the accessor name reading field, e.g. "getTheValue".
func Getter(field string) string {
	return "get" + textcase.PascalCase(field)
}

// Setter returns the accessor name writing field, e.g. "setTheValue".
func Setter(field string) string {
	return "set" + textcase.PascalCase(field)
}
