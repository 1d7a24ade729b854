package typescript

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/naming"
)

// Emitter writes TypeScript declarations for binding units.
type Emitter struct {
	config Config
	indent string
	byPath map[string]*ir.TypeBindingUnit
}

// NewEmitter creates an emitter for units. Nested units are found
// through their enclosing unit's Nested list.
func NewEmitter(cfg Config, units []*ir.TypeBindingUnit) *Emitter {
	e := &Emitter{
		config: cfg,
		indent: indentUnit(cfg),
		byPath: make(map[string]*ir.TypeBindingUnit, len(units)),
	}
	for _, u := range units {
		e.byPath[u.ID.Path()] = u
	}
	return e
}

func indentUnit(cfg Config) string {
	if cfg.IndentStyle == "tab" {
		return "\t"
	}
	n := cfg.IndentSize
	if n <= 0 {
		n = 2
	}
	return strings.Repeat(" ", n)
}

func (e *Emitter) pad(depth int) string {
	return strings.Repeat(e.indent, depth)
}

// EmitUnit emits the instance interface of u followed by its namespace,
// which holds the Static interface and any nested units.
func (e *Emitter) EmitUnit(buf *bytes.Buffer, u *ir.TypeBindingUnit, depth int) error {
	pad := e.pad(depth)
	name := u.ID.Name

	if e.config.EmitComments {
		if u.Doc == "" {
			e.emitJSDoc(buf, pad, u.Class)
		} else {
			e.emitJSDoc(buf, pad, u.Doc, u.Class)
		}
	}
	buf.WriteString(pad)
	buf.WriteString("export interface ")
	buf.WriteString(name)
	if ext := extendsList(u); len(ext) > 0 {
		buf.WriteString(" extends ")
		buf.WriteString(strings.Join(ext, ", "))
	}
	buf.WriteString(" {\n")
	for _, a := range u.InstanceAccessors() {
		if err := e.emitAccessor(buf, depth+1, a, ""); err != nil {
			return err
		}
	}
	for _, m := range u.InstanceMethods() {
		if err := e.emitMethod(buf, depth+1, m); err != nil {
			return err
		}
	}
	buf.WriteString(pad)
	buf.WriteString("}\n")

	buf.WriteString(pad)
	buf.WriteString("export namespace ")
	buf.WriteString(name)
	buf.WriteString(" {\n")
	if err := e.emitStatic(buf, depth+1, u); err != nil {
		return err
	}
	for _, id := range u.Nested {
		nested, ok := e.byPath[id.Path()]
		if !ok {
			continue
		}
		if err := e.EmitUnit(buf, nested, depth+1); err != nil {
			return fmt.Errorf("nested %s: %w", id, err)
		}
	}
	buf.WriteString(pad)
	buf.WriteString("}\n")
	return nil
}

func extendsList(u *ir.TypeBindingUnit) []string {
	var ext []string
	if u.Super != nil {
		ext = append(ext, u.Super.Path())
	}
	for _, i := range u.Interfaces {
		ext = append(ext, i.Path())
	}
	return ext
}

// emitStatic emits the Static interface: constructors, static accessors
// and static methods.
func (e *Emitter) emitStatic(buf *bytes.Buffer, depth int, u *ir.TypeBindingUnit) error {
	pad := e.pad(depth)
	buf.WriteString(pad)
	buf.WriteString("export interface ")
	buf.WriteString(naming.StaticNamespace)
	buf.WriteString(" {\n")

	initial := make(map[string]string, len(u.StaticState.Entries))
	for _, s := range u.StaticState.Entries {
		initial[s.Field] = s.Value
	}

	for _, c := range u.Constructors {
		if e.config.EmitComments && c.Doc != "" {
			e.emitJSDoc(buf, e.pad(depth+1), c.Doc)
		}
		for _, shape := range c.Shapes() {
			params, err := e.params(c, shape)
			if err != nil {
				return err
			}
			fmt.Fprintf(buf, "%snew (%s): %s;\n", e.pad(depth+1), params, u.ID.Path())
		}
	}
	for _, a := range u.StaticAccessors() {
		tag := ""
		if v, ok := initial[a.Field]; ok {
			tag = "@defaultValue " + v
		}
		if err := e.emitAccessor(buf, depth+1, a, tag); err != nil {
			return err
		}
	}
	for _, m := range u.StaticMethods() {
		if err := e.emitMethod(buf, depth+1, m); err != nil {
			return err
		}
	}

	buf.WriteString(pad)
	buf.WriteString("}\n")
	return nil
}

func (e *Emitter) emitAccessor(buf *bytes.Buffer, depth int, a ir.Accessor, tag string) error {
	typ, err := e.EmitTypeExpr(a.Type)
	if err != nil {
		return fmt.Errorf("field %s: %w", a.Field, err)
	}
	pad := e.pad(depth)
	if e.config.EmitComments && (a.Doc != "" || tag != "") {
		var tags []string
		if tag != "" {
			tags = append(tags, tag)
		}
		e.emitJSDoc(buf, pad, a.Doc, tags...)
	}
	fmt.Fprintf(buf, "%s%s(): %s;\n", pad, a.Getter, typ)
	if a.Setter != "" {
		fmt.Fprintf(buf, "%s%s(value: %s): void;\n", pad, a.Setter, typ)
	}
	return nil
}

// flavour is one declared form of a method.
type flavour int

const (
	flavourSync flavour = iota
	flavourAsync
	flavourPromise
)

type methodForm struct {
	flavour flavour
	suffix  string
}

// forms returns the enabled method flavours with their name suffixes.
func (e *Emitter) forms() []methodForm {
	var out []methodForm
	for _, f := range []struct {
		flavour flavour
		suffix  *string
	}{
		{flavourSync, e.config.Async.SyncSuffix},
		{flavourAsync, e.config.Async.AsyncSuffix},
		{flavourPromise, e.config.Async.PromiseSuffix},
	} {
		if f.suffix != nil {
			out = append(out, methodForm{f.flavour, *f.suffix})
		}
	}
	return out
}

// emitMethod emits one line per call shape and flavour.
func (e *Emitter) emitMethod(buf *bytes.Buffer, depth int, m ir.Callable) error {
	pad := e.pad(depth)
	ret := "void"
	if m.Return != nil {
		r, err := e.EmitTypeExpr(m.Return)
		if err != nil {
			return fmt.Errorf("method %s: %w", m.Name, err)
		}
		ret = r
	}
	if e.config.EmitComments && m.Doc != "" {
		e.emitJSDoc(buf, pad, m.Doc)
	}
	for _, f := range e.forms() {
		for _, shape := range m.Shapes() {
			params, err := e.params(m, shape)
			if err != nil {
				return fmt.Errorf("method %s: %w", m.Name, err)
			}
			name := m.Name + f.suffix
			switch f.flavour {
			case flavourSync:
				fmt.Fprintf(buf, "%s%s(%s): %s;\n", pad, name, params, ret)
			case flavourAsync:
				if shape == ir.ShapeSpread {
					// A callback cannot follow a rest parameter.
					continue
				}
				if params != "" {
					params += ", "
				}
				fmt.Fprintf(buf, "%s%s(%scb: %s<%s>): void;\n", pad, name, params, naming.CallbackType, ret)
			case flavourPromise:
				fmt.Fprintf(buf, "%s%s(%s): Promise<%s>;\n", pad, name, params, ret)
			}
		}
	}
	return nil
}

// params renders the parameter list of c for one call shape.
func (e *Emitter) params(c ir.Callable, shape ir.CallShape) (string, error) {
	parts := make([]string, 0, len(c.Params))
	for i, p := range c.Params {
		typ, err := e.EmitTypeExpr(p.Type)
		if err != nil {
			return "", fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		rest := ""
		if shape == ir.ShapeSpread && i == len(c.Params)-1 {
			rest = "..."
		}
		parts = append(parts, rest+p.Name+": "+typ)
	}
	return strings.Join(parts, ", "), nil
}

// EmitTypeExpr renders a type expression.
func (e *Emitter) EmitTypeExpr(x ir.Expr) (string, error) {
	switch t := x.(type) {
	case *ir.PrimitiveExpr:
		return t.Target.String(), nil
	case *ir.BoxedExpr:
		return t.Element.Target.String() + " | null", nil
	case *ir.BuiltinExpr:
		if t.Builtin == ir.BuiltinString {
			return "string", nil
		}
		if e.config.UnknownType == "" {
			return "unknown", nil
		}
		return e.config.UnknownType, nil
	case *ir.ArrayExpr:
		elem, err := e.EmitTypeExpr(t.Element)
		if err != nil {
			return "", err
		}
		if _, ok := t.Element.(*ir.BoxedExpr); ok {
			elem = "(" + elem + ")"
		}
		return elem + "[]", nil
	case *ir.ReferenceExpr:
		return t.Target.Path(), nil
	case nil:
		return "", fmt.Errorf("missing type expression")
	default:
		return "", fmt.Errorf("unsupported type expression kind: %s", x.Kind())
	}
}

// emitJSDoc writes a documentation comment. Single-line docs without
// tags use the short form.
func (e *Emitter) emitJSDoc(buf *bytes.Buffer, pad, doc string, tags ...string) {
	doc = strings.TrimSpace(doc)
	if doc == "" && len(tags) == 0 {
		return
	}
	lines := strings.Split(doc, "\n")
	if len(tags) == 0 && len(lines) == 1 {
		fmt.Fprintf(buf, "%s/** %s */\n", pad, escapeComment(lines[0]))
		return
	}
	buf.WriteString(pad)
	buf.WriteString("/**\n")
	if doc != "" {
		for _, l := range lines {
			writeCommentLine(buf, pad, escapeComment(strings.TrimSpace(l)))
		}
	}
	for _, t := range tags {
		writeCommentLine(buf, pad, escapeComment(t))
	}
	buf.WriteString(pad)
	buf.WriteString(" */\n")
}

func writeCommentLine(buf *bytes.Buffer, pad, line string) {
	buf.WriteString(pad)
	if line == "" {
		buf.WriteString(" *\n")
		return
	}
	buf.WriteString(" * ")
	buf.WriteString(line)
	buf.WriteString("\n")
}

func propertyKey(name string) string {
	if naming.NeedsQuoting(name) {
		return strconv.Quote(name)
	}
	return name
}

func escapeComment(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}

// EmitImportMap emits the ImportMap interface: every unit's Static
// interface keyed by binary class name, plus top-level simple names that
// belong to exactly one class.
func (e *Emitter) EmitImportMap(buf *bytes.Buffer, units []*ir.TypeBindingUnit) {
	short := make(map[string][]*ir.TypeBindingUnit)
	for _, u := range units {
		if u.Enclosing == nil {
			s := catalog.SimpleNameOf(u.Class)
			short[s] = append(short[s], u)
		}
	}

	fmt.Fprintf(buf, "export interface %s {\n", naming.ImportMapName)
	pad := e.pad(1)
	for _, u := range units {
		fmt.Fprintf(buf, "%s%s: %s.%s;\n", pad, propertyKey(u.Class), u.ID.Path(), naming.StaticNamespace)
	}
	for _, u := range units {
		s := catalog.SimpleNameOf(u.Class)
		if u.Enclosing != nil || len(short[s]) != 1 || s == u.Class {
			continue
		}
		fmt.Fprintf(buf, "%s%s: %s.%s;\n", pad, propertyKey(s), u.ID.Path(), naming.StaticNamespace)
	}
	buf.WriteString("}\n\n")
	fmt.Fprintf(buf, "export function %s<K extends keyof %s>(className: K): %s[K];\n",
		naming.ImportFunction, naming.ImportMapName, naming.ImportMapName)
}
