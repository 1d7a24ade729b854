package provider

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

// SourceProvider extracts types by parsing Java source files.
type SourceProvider struct{}

// SourceInputOptions configures source-based extraction.
type SourceInputOptions struct {
	// Paths are .java files or directories searched recursively.
	Paths []string
}

// SourceFile is one in-memory Java compilation unit.
type SourceFile struct {
	Name string
	Data []byte
}

// BuildCatalog parses every .java file under opts.Paths.
func (p *SourceProvider) BuildCatalog(ctx context.Context, opts SourceInputOptions) (*Result, error) {
	if len(opts.Paths) == 0 {
		return nil, fmt.Errorf("no source paths specified")
	}
	var files []SourceFile
	for _, root := range opts.Paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".java" {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files = append(files, SourceFile{Name: filepath.ToSlash(path), Data: data})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read sources: %w", err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .java files found")
	}
	return ParseSources(ctx, files)
}

// ParseSources builds a catalog from in-memory Java sources.
func ParseSources(ctx context.Context, files []SourceFile) (*Result, error) {
	sb := newSourceBuilder(nil)
	defer sb.close()
	if err := sb.parse(ctx, files); err != nil {
		return nil, err
	}
	b := catalog.NewBuilder()
	sb.addTo(b)
	snap, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Result{Catalog: snap, Diagnostics: sb.diags.All()}, nil
}

// javaLang lists the java.lang types visible without an import.
var javaLang = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "Number": true,
	"Boolean": true, "Byte": true, "Character": true, "Short": true,
	"Integer": true, "Long": true, "Float": true, "Double": true, "Void": true,
	"Class": true, "Enum": true, "Iterable": true, "Comparable": true,
	"Runnable": true, "Thread": true, "Throwable": true, "Exception": true,
	"RuntimeException": true, "Error": true, "StringBuilder": true,
	"Math": true, "System": true,
}

type javaFile struct {
	name string
	src  []byte
	tree *sitter.Tree
	pkg  string

	// single maps simple names to single-type imports; onDemand holds
	// the prefixes of import-on-demand declarations.
	single   map[string]string
	onDemand []string
}

func (f *javaFile) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.src)
}

func (f *javaFile) source(n *sitter.Node) catalog.Source {
	return catalog.Source{File: f.name, Line: int(n.StartPoint().Row) + 1}
}

// decl is a class or interface declaration found in pass one.
type decl struct {
	file      *javaFile
	node      *sitter.Node
	name      string // binary name
	canonical string // dotted source name
	simple    string
	enclosing *decl
}

func (d *decl) isInterface() bool {
	return d.node.Type() == "interface_declaration"
}

// scope is the name resolution context of a type reference.
type scope struct {
	file     *javaFile
	decl     *decl
	typeVars map[string]string // type variable -> erased class name
}

// sourceBuilder parses in two passes: declarations first, so that type
// references in any file can resolve to types declared in any other.
type sourceBuilder struct {
	parser      *sitter.Parser
	files       []*javaFile
	decls       []*decl
	known       map[string]bool   // binary names
	byCanonical map[string]string // canonical -> binary
	diags       ir.Diagnostics
}

// newSourceBuilder creates a builder that also resolves references to
// the extern binary names.
func newSourceBuilder(extern []string) *sourceBuilder {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	sb := &sourceBuilder{
		parser:      p,
		known:       make(map[string]bool),
		byCanonical: make(map[string]string),
	}
	for _, name := range extern {
		sb.declare(name)
	}
	return sb
}

func (sb *sourceBuilder) declare(binary string) {
	sb.known[binary] = true
	sb.byCanonical[strings.ReplaceAll(binary, "$", ".")] = binary
}

func (sb *sourceBuilder) close() {
	for _, f := range sb.files {
		if f.tree != nil {
			f.tree.Close()
		}
	}
	sb.parser.Close()
}

func (sb *sourceBuilder) parse(ctx context.Context, files []SourceFile) error {
	sorted := make([]SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, sf := range sorted {
		tree, err := sb.parser.ParseCtx(ctx, nil, sf.Data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", sf.Name, err)
		}
		f := &javaFile{name: sf.Name, src: sf.Data, tree: tree, single: make(map[string]string)}
		sb.files = append(sb.files, f)

		root := tree.RootNode()
		if root.HasError() {
			at := firstError(root)
			sb.diags.Addf(ir.CodeProviderWarning, f.source(at).String(),
				"syntax error near %q; declarations in this region may be missing", clip(f.text(at)))
		}
		sb.header(f, root)
		sb.collect(f, nil, root)
	}
	return nil
}

// header reads the package and import declarations.
func (sb *sourceBuilder) header(f *javaFile, root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_declaration":
			if name := nameChild(n); name != nil {
				f.pkg = f.text(name)
			}
		case "import_declaration":
			static := false
			for j := 0; j < int(n.ChildCount()); j++ {
				if n.Child(j).Type() == "static" {
					static = true
				}
			}
			name := nameChild(n)
			if name == nil || static {
				continue
			}
			path := f.text(name)
			if childOfType(n, "asterisk") != nil {
				f.onDemand = append(f.onDemand, path)
				continue
			}
			f.single[lastSegment(path)] = path
		}
	}
}

// collect records the type declarations directly under parent.
func (sb *sourceBuilder) collect(f *javaFile, parent *decl, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		n := body.NamedChild(i)
		switch n.Type() {
		case "class_declaration", "interface_declaration":
		case "enum_declaration", "record_declaration", "annotation_type_declaration":
			sb.diags.Addf(ir.CodeProviderWarning, f.source(n).String(),
				"%s %s skipped: only classes and interfaces are supported",
				strings.TrimSuffix(n.Type(), "_declaration"), f.text(n.ChildByFieldName("name")))
			continue
		default:
			continue
		}
		simple := f.text(n.ChildByFieldName("name"))
		if simple == "" {
			continue
		}
		d := &decl{file: f, node: n, simple: simple, enclosing: parent}
		if parent == nil {
			d.name = qualify(f.pkg, simple)
			d.canonical = d.name
		} else {
			d.name = parent.name + "$" + simple
			d.canonical = parent.canonical + "." + simple
		}
		sb.decls = append(sb.decls, d)
		sb.declare(d.name)
		if b := n.ChildByFieldName("body"); b != nil {
			sb.collect(f, d, b)
		}
	}
}

// addTo converts every declaration and adds it to b.
func (sb *sourceBuilder) addTo(b *catalog.Builder) {
	for _, d := range sb.decls {
		b.Add(sb.typeInfo(d))
	}
}

func (sb *sourceBuilder) typeInfo(d *decl) catalog.TypeInfo {
	f := d.file
	n := d.node
	mods := modifiers(n)
	sc := sb.typeScope(d)

	t := catalog.TypeInfo{
		Name:       d.name,
		Kind:       catalog.KindClass,
		Visibility: visibility(mods),
		Source:     f.source(n),
		Doc:        f.docOf(n),
	}
	inInterface := d.enclosing != nil && d.enclosing.isInterface()
	if inInterface {
		t.Visibility = catalog.Public
	}
	switch {
	case d.isInterface():
		t.Kind = catalog.KindInterface
	case mods["abstract"]:
		t.Kind = catalog.KindAbstractClass
	}
	if d.enclosing != nil {
		t.Enclosing = d.enclosing.name
		t.Static = mods["static"] || inInterface || d.isInterface()
	}

	if sup := childOfType(n, "superclass"); sup != nil && sup.NamedChildCount() > 0 {
		if typ, err := sb.typeOf(sc, sup.NamedChild(0), 0); err == nil && typ.ClassName() != catalog.ObjectClass {
			t.Super = typ.ClassName()
		} else if err != nil {
			sb.diags.Addf(ir.CodeProviderWarning, d.name, "superclass: %v", err)
		}
	}
	ifaces := childOfType(n, "super_interfaces")
	if d.isInterface() {
		ifaces = childOfType(n, "extends_interfaces")
	}
	if ifaces != nil {
		if list := childOfType(ifaces, "type_list"); list != nil {
			for i := 0; i < int(list.NamedChildCount()); i++ {
				typ, err := sb.typeOf(sc, list.NamedChild(i), 0)
				if err != nil {
					sb.diags.Addf(ir.CodeProviderWarning, d.name, "interface: %v", err)
					continue
				}
				t.Interfaces = append(t.Interfaces, typ.ClassName())
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		sb.members(&t, d, sc, body)
	}
	if t.Kind != catalog.KindInterface && !hasConstructor(t.Members) {
		t.Members = append(t.Members, catalog.Member{
			Name:       "<init>",
			Kind:       catalog.ConstructorMember,
			Visibility: t.Visibility,
		})
	}
	return t
}

// typeScope returns the scope inside d, with the type variables of d
// and its enclosing types.
func (sb *sourceBuilder) typeScope(d *decl) scope {
	sc := scope{file: d.file, decl: d, typeVars: make(map[string]string)}
	var chain []*decl
	for e := d; e != nil; e = e.enclosing {
		chain = append(chain, e)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		sb.bindTypeVars(&sc, chain[i].node.ChildByFieldName("type_parameters"))
	}
	return sc
}

// bindTypeVars adds the erasures of a type_parameters list to sc.
func (sb *sourceBuilder) bindTypeVars(sc *scope, params *sitter.Node) {
	if params == nil {
		return
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "type_parameter" {
			continue
		}
		var name string
		erasure := catalog.ObjectClass
		for j := 0; j < int(p.NamedChildCount()); j++ {
			c := p.NamedChild(j)
			switch c.Type() {
			case "type_identifier", "identifier":
				name = sc.file.text(c)
			case "type_bound":
				if c.NamedChildCount() > 0 {
					if typ, err := sb.typeOf(*sc, c.NamedChild(0), 0); err == nil {
						erasure = typ.ClassName()
					}
				}
			}
		}
		if name != "" {
			sc.typeVars[name] = erasure
		}
	}
}

func (sb *sourceBuilder) members(t *catalog.TypeInfo, d *decl, sc scope, body *sitter.Node) {
	f := d.file
	iface := d.isInterface()
	for i := 0; i < int(body.NamedChildCount()); i++ {
		n := body.NamedChild(i)
		switch n.Type() {
		case "field_declaration", "constant_declaration":
			sb.fields(t, d, sc, n)
		case "method_declaration":
			mods := modifiers(n)
			m := catalog.Member{
				Name:       f.text(n.ChildByFieldName("name")),
				Kind:       catalog.MethodMember,
				Visibility: visibility(mods),
				Static:     mods["static"],
				Abstract:   mods["abstract"],
				Default:    mods["default"],
				Final:      mods["final"],
				Doc:        f.docOf(n),
			}
			if iface {
				if !mods["private"] {
					m.Visibility = catalog.Public
				}
				m.Abstract = !m.Static && !m.Default && m.Visibility != catalog.Private
			}
			msc := sc.withTypeVars()
			sb.bindTypeVars(&msc, n.ChildByFieldName("type_parameters"))
			if err := sb.signature(&m, msc, n); err != nil {
				sb.diags.Addf(ir.CodeProviderWarning, d.name+"."+m.Name, "method skipped: %v", err)
				continue
			}
			t.Members = append(t.Members, m)
		case "constructor_declaration":
			if iface {
				continue
			}
			mods := modifiers(n)
			m := catalog.Member{
				Name:       "<init>",
				Kind:       catalog.ConstructorMember,
				Visibility: visibility(mods),
				Doc:        f.docOf(n),
			}
			msc := sc.withTypeVars()
			sb.bindTypeVars(&msc, n.ChildByFieldName("type_parameters"))
			if err := sb.signature(&m, msc, n); err != nil {
				sb.diags.Addf(ir.CodeProviderWarning, d.name+".<init>", "constructor skipped: %v", err)
				continue
			}
			t.Members = append(t.Members, m)
		case "static_initializer":
			t.StaticInit = append(t.StaticInit, staticAssignments(f, d, n)...)
		}
	}
}

func (sb *sourceBuilder) fields(t *catalog.TypeInfo, d *decl, sc scope, n *sitter.Node) {
	f := d.file
	mods := modifiers(n)
	iface := d.isInterface()
	vis := visibility(mods)
	static := mods["static"]
	final := mods["final"]
	if iface {
		vis, static, final = catalog.Public, true, true
	}
	doc := f.docOf(n)
	typeNode := n.ChildByFieldName("type")
	for i := 0; i < int(n.NamedChildCount()); i++ {
		v := n.NamedChild(i)
		if v.Type() != "variable_declarator" {
			continue
		}
		name := f.text(v.ChildByFieldName("name"))
		typ, err := sb.typeOf(sc, typeNode, dims(f, v.ChildByFieldName("dimensions")))
		if err != nil {
			sb.diags.Addf(ir.CodeProviderWarning, d.name+"."+name, "field skipped: %v", err)
			continue
		}
		t.Members = append(t.Members, catalog.Member{
			Name:       name,
			Kind:       catalog.FieldMember,
			Visibility: vis,
			Static:     static,
			Final:      final,
			Type:       typ,
			Doc:        doc,
		})
		if value := v.ChildByFieldName("value"); static && value != nil && isLiteral(value) {
			t.StaticInit = append(t.StaticInit, catalog.Assignment{Field: name, Value: f.text(value)})
		}
	}
}

// signature fills in the parameters and return type of a method or
// constructor declaration.
func (sb *sourceBuilder) signature(m *catalog.Member, sc scope, n *sitter.Node) error {
	f := sc.file
	if m.Kind == catalog.MethodMember {
		ret := n.ChildByFieldName("type")
		if ret == nil {
			return fmt.Errorf("missing return type")
		}
		if ret.Type() != "void_type" {
			typ, err := sb.typeOf(sc, ret, dims(f, n.ChildByFieldName("dimensions")))
			if err != nil {
				return fmt.Errorf("return type: %w", err)
			}
			m.Signature.Return = &typ
		}
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		var (
			typeNode, nameNode *sitter.Node
			extra              int
		)
		switch p.Type() {
		case "formal_parameter":
			typeNode = p.ChildByFieldName("type")
			nameNode = p.ChildByFieldName("name")
			extra = dims(f, p.ChildByFieldName("dimensions"))
		case "spread_parameter":
			for j := 0; j < int(p.NamedChildCount()); j++ {
				c := p.NamedChild(j)
				switch c.Type() {
				case "modifiers":
				case "variable_declarator":
					nameNode = c.ChildByFieldName("name")
					extra = dims(f, c.ChildByFieldName("dimensions"))
				default:
					if typeNode == nil {
						typeNode = c
					}
				}
			}
			extra++
			m.Signature.VarArgs = true
		default:
			continue
		}
		if typeNode == nil {
			return fmt.Errorf("parameter %d: missing type", i+1)
		}
		typ, err := sb.typeOf(sc, typeNode, extra)
		if err != nil {
			return fmt.Errorf("parameter %d: %w", i+1, err)
		}
		m.Signature.Params = append(m.Signature.Params, typ)
		name := fmt.Sprintf("arg%d", i)
		if nameNode != nil {
			name = f.text(nameNode)
		}
		m.ParamNames = append(m.ParamNames, name)
	}
	return nil
}

// typeOf converts a type node, adding extra array dimensions.
func (sb *sourceBuilder) typeOf(sc scope, n *sitter.Node, extra int) (catalog.TypeDescriptor, error) {
	if n == nil {
		return catalog.TypeDescriptor{}, fmt.Errorf("missing type")
	}
	f := sc.file
	switch n.Type() {
	case "integral_type", "floating_point_type", "boolean_type":
		k, ok := catalog.LookupPrimitive(f.text(n))
		if !ok {
			return catalog.TypeDescriptor{}, fmt.Errorf("unknown primitive %q", f.text(n))
		}
		return catalog.ArrayOf(catalog.Primitive(k), extra), nil
	case "type_identifier":
		return catalog.ArrayOf(catalog.Object(sb.resolve(sc, f.text(n))), extra), nil
	case "scoped_type_identifier":
		return catalog.ArrayOf(catalog.Object(sb.resolveQualified(sc, stripTypeArgs(f.text(n)))), extra), nil
	case "generic_type":
		if n.NamedChildCount() == 0 {
			return catalog.TypeDescriptor{}, fmt.Errorf("malformed generic type %q", f.text(n))
		}
		return sb.typeOf(sc, n.NamedChild(0), extra)
	case "array_type":
		return sb.typeOf(sc, n.ChildByFieldName("element"), extra+dims(f, n.ChildByFieldName("dimensions")))
	case "annotated_type":
		if c := n.NamedChildCount(); c > 0 {
			return sb.typeOf(sc, n.NamedChild(int(c)-1), extra)
		}
	}
	return catalog.TypeDescriptor{}, fmt.Errorf("unsupported type %q", f.text(n))
}

// lookup finds the class a simple type name refers to. Lookup order:
// type variables, member types of enclosing types, single-type imports,
// the current package, imports on demand, java.lang.
func (sb *sourceBuilder) lookup(sc scope, name string) (string, bool) {
	if e, ok := sc.typeVars[name]; ok {
		return e, true
	}
	for d := sc.decl; d != nil; d = d.enclosing {
		if d.simple == name {
			return d.name, true
		}
		if member := d.name + "$" + name; sb.known[member] {
			return member, true
		}
	}
	if path, ok := sc.file.single[name]; ok {
		return sb.binary(path), true
	}
	if local := qualify(sc.file.pkg, name); sb.known[local] {
		return local, true
	}
	for _, prefix := range sc.file.onDemand {
		if c := sb.binary(prefix + "." + name); sb.known[c] {
			return c, true
		}
	}
	if javaLang[name] {
		return "java.lang." + name, true
	}
	return "", false
}

// resolve is lookup with a same-package fallback for names declared
// outside the parsed sources.
func (sb *sourceBuilder) resolve(sc scope, name string) string {
	if c, ok := sb.lookup(sc, name); ok {
		return c
	}
	return qualify(sc.file.pkg, name)
}

// resolveQualified resolves "Outer.Inner" or "pkg.Type" to a binary name.
func (sb *sourceBuilder) resolveQualified(sc scope, name string) string {
	first, rest, _ := strings.Cut(name, ".")
	if c, ok := sb.lookup(sc, first); ok {
		return c + "$" + strings.ReplaceAll(rest, ".", "$")
	}
	return sb.binary(name)
}

// binary maps a canonical name to a binary name by finding the longest
// known enclosing prefix.
func (sb *sourceBuilder) binary(canonical string) string {
	if b, ok := sb.byCanonical[canonical]; ok {
		return b
	}
	parts := strings.Split(canonical, ".")
	for i := len(parts) - 1; i > 0; i-- {
		if b, ok := sb.byCanonical[strings.Join(parts[:i], ".")]; ok {
			return b + "$" + strings.Join(parts[i:], "$")
		}
	}
	return canonical
}

func (sc scope) withTypeVars() scope {
	vars := make(map[string]string, len(sc.typeVars))
	for k, v := range sc.typeVars {
		vars[k] = v
	}
	sc.typeVars = vars
	return sc
}

// staticAssignments returns the literal assignments to fields of d made
// directly in a static initializer block.
func staticAssignments(f *javaFile, d *decl, n *sitter.Node) []catalog.Assignment {
	block := childOfType(n, "block")
	if block == nil {
		return nil
	}
	var out []catalog.Assignment
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}
		expr := stmt.NamedChild(0)
		if expr.Type() != "assignment_expression" {
			continue
		}
		if op := expr.ChildByFieldName("operator"); op == nil || f.text(op) != "=" {
			continue
		}
		left, right := expr.ChildByFieldName("left"), expr.ChildByFieldName("right")
		if left == nil || right == nil || !isLiteral(right) {
			continue
		}
		var field string
		switch left.Type() {
		case "identifier":
			field = f.text(left)
		case "field_access":
			obj := left.ChildByFieldName("object")
			if obj == nil || (f.text(obj) != d.simple && f.text(obj) != d.canonical) {
				continue
			}
			field = f.text(left.ChildByFieldName("field"))
		default:
			continue
		}
		out = append(out, catalog.Assignment{Field: field, Value: f.text(right)})
	}
	return out
}

var literalTypes = map[string]bool{
	"decimal_integer_literal":        true,
	"hex_integer_literal":            true,
	"octal_integer_literal":          true,
	"binary_integer_literal":         true,
	"decimal_floating_point_literal": true,
	"hex_floating_point_literal":     true,
	"character_literal":              true,
	"string_literal":                 true,
	"null_literal":                   true,
	"true":                           true,
	"false":                          true,
}

func isLiteral(n *sitter.Node) bool {
	if literalTypes[n.Type()] {
		return true
	}
	if n.Type() == "unary_expression" {
		op := n.ChildByFieldName("operand")
		return op != nil && literalTypes[op.Type()]
	}
	return false
}

// docOf returns the text of the doc comment directly before n, without
// block tags.
func (f *javaFile) docOf(n *sitter.Node) string {
	prev := n.PrevNamedSibling()
	if prev == nil || (prev.Type() != "block_comment" && prev.Type() != "comment") {
		return ""
	}
	text := f.text(prev)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		l = strings.TrimSpace(strings.TrimPrefix(l, "*"))
		if strings.HasPrefix(l, "@") {
			break
		}
		lines = append(lines, l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func modifiers(n *sitter.Node) map[string]bool {
	mods := make(map[string]bool)
	m := childOfType(n, "modifiers")
	if m == nil {
		return mods
	}
	for i := 0; i < int(m.ChildCount()); i++ {
		if c := m.Child(i); !c.IsNamed() {
			mods[c.Type()] = true
		}
	}
	return mods
}

func visibility(mods map[string]bool) catalog.Visibility {
	switch {
	case mods["public"]:
		return catalog.Public
	case mods["protected"]:
		return catalog.Protected
	case mods["private"]:
		return catalog.Private
	}
	return catalog.Package
}

func hasConstructor(members []catalog.Member) bool {
	for _, m := range members {
		if m.Kind == catalog.ConstructorMember {
			return true
		}
	}
	return false
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// nameChild returns the identifier or scoped_identifier child of a
// package or import declaration.
func nameChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		switch c := n.NamedChild(i); c.Type() {
		case "identifier", "scoped_identifier":
			return c
		}
	}
	return nil
}

// dims counts the brackets of a dimensions node.
func dims(f *javaFile, n *sitter.Node) int {
	if n == nil {
		return 0
	}
	return strings.Count(f.text(n), "[")
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.HasError() || c.IsMissing() {
			return firstError(c)
		}
	}
	return n
}

func stripTypeArgs(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0 && r != ' ':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
