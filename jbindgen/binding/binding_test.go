package binding

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/broady/jbind/internal/testfixtures"
	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

func emitFeatureset(t *testing.T) *Result {
	t.Helper()
	res, err := Emit(testfixtures.Featureset(t))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	return res
}

func accessor(u *ir.TypeBindingUnit, field string) (ir.Accessor, bool) {
	for _, a := range u.Accessors {
		if a.Field == field {
			return a, true
		}
	}
	return ir.Accessor{}, false
}

func TestEmitOrder(t *testing.T) {
	res := emitFeatureset(t)

	pos := make(map[string]int)
	for i, u := range res.Units {
		pos[u.Class] = i
	}
	if len(pos) != 10 {
		t.Fatalf("got %d units, want 10", len(pos))
	}

	before := [][2]string{
		{testfixtures.Named, testfixtures.SomeInterface},
		{testfixtures.SomeInterface, testfixtures.SomeAbstractClass},
		{testfixtures.SomeAbstractClass, testfixtures.SomeClass},
		{testfixtures.AmbiguousThing, testfixtures.Nested},
		{testfixtures.Overloading, testfixtures.Bar},
		{testfixtures.Bar, testfixtures.Foo},
	}
	for _, b := range before {
		if pos[b[0]] >= pos[b[1]] {
			t.Errorf("%s emitted after %s", b[0], b[1])
		}
	}
}

func TestEmitIdentifiers(t *testing.T) {
	res := emitFeatureset(t)
	tests := []struct {
		class string
		want  string
	}{
		{testfixtures.SomeClass, "SomeClass"},
		{testfixtures.Thing, "featureset_Thing"},
		{testfixtures.AmbiguousThing, "ambiguous_Thing"},
		{testfixtures.Nested, "ambiguous_Thing.Nested"},
		{testfixtures.Foo, "Overloading.Foo"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			u := res.Unit(tt.class)
			if u == nil {
				t.Fatalf("no unit for %s", tt.class)
			}
			if got := u.ID.Path(); got != tt.want {
				t.Errorf("ID.Path() = %q, want %q", got, tt.want)
			}
		})
	}

	outer := res.Unit(testfixtures.AmbiguousThing)
	if len(outer.Nested) != 1 || outer.Nested[0].Name != "Nested" {
		t.Errorf("Nested = %v", outer.Nested)
	}
	foo := res.Unit(testfixtures.Foo)
	if foo.Super == nil || foo.Super.Path() != "Overloading.Bar" {
		t.Errorf("Foo.Super = %v", foo.Super)
	}
	if foo.Enclosing == nil || foo.Enclosing.Path() != "Overloading" {
		t.Errorf("Foo.Enclosing = %v", foo.Enclosing)
	}
}

func TestEmitAccessors(t *testing.T) {
	res := emitFeatureset(t)
	u := res.Unit(testfixtures.Thing)

	tests := []struct {
		field     string
		present   bool
		static    bool
		hasSetter bool
	}{
		{"theInstanceField", true, false, true},
		{"theStaticField", true, true, true},
		{"MAX", true, true, false},
		{"mProtectedStaticInt", true, true, true},
		{"mPackageStaticInt", true, true, true},
		{"mProtectedInt", true, false, true},
		{"mPrivateStaticInt", false, false, false},
		{"mPrivateInt", false, false, false},
		{"mPackageInt", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			a, ok := accessor(u, tt.field)
			if ok != tt.present {
				t.Fatalf("accessor present = %v, want %v", ok, tt.present)
			}
			if !ok {
				return
			}
			if a.Static != tt.static {
				t.Errorf("Static = %v, want %v", a.Static, tt.static)
			}
			if (a.Setter != "") != tt.hasSetter {
				t.Errorf("Setter = %q, want setter %v", a.Setter, tt.hasSetter)
			}
		})
	}

	a, _ := accessor(u, "theInstanceField")
	if a.Getter != "getTheInstanceField" || a.Setter != "setTheInstanceField" {
		t.Errorf("theInstanceField accessors = %q, %q", a.Getter, a.Setter)
	}
}

func TestEmitConstructors(t *testing.T) {
	res := emitFeatureset(t)

	if got := len(res.Unit(testfixtures.SomeClass).Constructors); got != 2 {
		t.Errorf("SomeClass constructors = %d, want 2", got)
	}
	for _, class := range []string{testfixtures.SomeAbstractClass, testfixtures.SomeInterface} {
		if got := len(res.Unit(class).Constructors); got != 0 {
			t.Errorf("%s constructors = %d, want 0", class, got)
		}
	}
	// Package-private constructors are not exposed.
	if got := len(res.Unit(testfixtures.Nested).Constructors); got != 0 {
		t.Errorf("Nested constructors = %d, want 0", got)
	}

	c := res.Unit(testfixtures.SomeClass).Constructors[1]
	var names []string
	for _, p := range c.Params {
		names = append(names, p.Name)
	}
	if want := []string{"x", "y", "z", "b", "d"}; !reflect.DeepEqual(names, want) {
		t.Errorf("constructor params = %v, want %v", names, want)
	}
	if p, ok := c.Params[1].Type.(*ir.PrimitiveExpr); !ok || p.Target != ir.TargetBigInt {
		t.Errorf("long param = %#v, want bigint", c.Params[1].Type)
	}
}

func TestEmitDiagnostics(t *testing.T) {
	res := emitFeatureset(t)

	var unresolved []ir.Diagnostic
	conflicts := 0
	for _, d := range res.Diagnostics {
		switch d.Kind {
		case ir.CodeUnresolvedType:
			unresolved = append(unresolved, d)
		case ir.CodeOverloadConflict:
			conflicts++
		}
	}
	if len(unresolved) != 1 || unresolved[0].Location != testfixtures.SomeClass+".getOptional()" {
		t.Errorf("unresolved diagnostics = %v", unresolved)
	}
	if conflicts != 2 {
		t.Errorf("conflicts = %d, want 2", conflicts)
	}
	if got := res.Unit(testfixtures.SomeClass).Overloads("getOptional"); len(got) != 0 {
		t.Errorf("getOptional was emitted: %+v", got)
	}
}

func TestEmitStaticState(t *testing.T) {
	res := emitFeatureset(t)
	got := res.Unit(testfixtures.Thing).StaticState.Entries
	want := []ir.StaticEntry{
		{Field: "MAX", Value: "10"},
		{Field: "theStaticField", Value: `"static thingy"`},
		{Field: "mProtectedStaticInt", Value: "1"},
		{Field: "mPackageStaticInt", Value: "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StaticState = %v, want %v", got, want)
	}
	if !res.Unit(testfixtures.SomeClass).StaticState.IsZero() {
		t.Errorf("SomeClass has static state")
	}
}

func TestStaticStateLastValueWins(t *testing.T) {
	info := catalog.TypeInfo{
		Name: "a.C",
		Members: []catalog.Member{
			{Name: "A", Kind: catalog.FieldMember, Visibility: catalog.Public, Static: true, Type: catalog.Primitive(catalog.Int)},
			{Name: "B", Kind: catalog.FieldMember, Visibility: catalog.Public, Static: true, Type: catalog.Primitive(catalog.Int)},
		},
		StaticInit: []catalog.Assignment{
			{Field: "A", Value: "1"},
			{Field: "B", Value: "2"},
			{Field: "A", Value: "3"},
		},
	}
	got := staticState(info).Entries
	want := []ir.StaticEntry{{Field: "A", Value: "3"}, {Field: "B", Value: "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("staticState() = %v, want %v", got, want)
	}
}

func TestAccessorRenamed(t *testing.T) {
	s := testfixtures.Build(t, catalog.TypeInfo{
		Name: "a.C",
		Members: []catalog.Member{
			{Name: "size", Kind: catalog.FieldMember, Visibility: catalog.Public, Type: catalog.Primitive(catalog.Int)},
			{Name: "getSize", Kind: catalog.MethodMember, Visibility: catalog.Public,
				Signature: catalog.Signature{Return: &catalog.TypeDescriptor{Tag: catalog.TagPrimitive, Prim: catalog.Int}}},
		},
	})
	res, err := Emit(s)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := accessor(res.Unit("a.C"), "size")
	if !ok {
		t.Fatal("no accessor for size")
	}
	if a.Getter != "getSizeField" || a.Setter != "setSizeField" {
		t.Errorf("accessors = %q, %q, want getSizeField, setSizeField", a.Getter, a.Setter)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != ir.CodeAccessorRenamed {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestInheritedStaticAccessors(t *testing.T) {
	field := func(name string, static, final bool, vis catalog.Visibility) catalog.Member {
		return catalog.Member{Name: name, Kind: catalog.FieldMember, Static: static, Final: final,
			Visibility: vis, Type: catalog.Primitive(catalog.Int)}
	}
	s := testfixtures.Build(t,
		catalog.TypeInfo{Name: "a.Base", Members: []catalog.Member{
			field("COUNT", true, true, catalog.Public),
			field("x", true, false, catalog.Public),
			field("secret", true, false, catalog.Private),
			field("size", false, false, catalog.Public),
		}},
		catalog.TypeInfo{Name: "a.Sub", Super: "a.Base", Members: []catalog.Member{
			field("x", true, false, catalog.Public),
		}},
		catalog.TypeInfo{Name: "a.Leaf", Super: "a.Sub"},
	)
	res, err := Emit(s)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		class, field, origin, setter string
	}{
		{"a.Sub", "x", "a.Sub", "setX"},
		{"a.Sub", "COUNT", "a.Base", ""},
		{"a.Leaf", "x", "a.Sub", "setX"},
		{"a.Leaf", "COUNT", "a.Base", ""},
	}
	for _, tt := range tests {
		t.Run(tt.class+"."+tt.field, func(t *testing.T) {
			a, ok := accessor(res.Unit(tt.class), tt.field)
			if !ok {
				t.Fatal("no accessor")
			}
			if !a.Static || a.Origin != tt.origin || a.Setter != tt.setter {
				t.Errorf("accessor = %+v, want static from %s with setter %q", a, tt.origin, tt.setter)
			}
		})
	}

	leaf := res.Unit("a.Leaf")
	if len(leaf.Accessors) != 2 {
		t.Errorf("Leaf accessors = %+v, want x and COUNT only", leaf.Accessors)
	}
	for _, f := range []string{"secret", "size"} {
		if _, ok := accessor(leaf, f); ok {
			t.Errorf("Leaf has accessor for %s", f)
		}
	}

	key := DispatchKey{Kind: EntryGetter, Class: "a.Leaf", Member: "COUNT", Descriptor: "I", Static: true}
	if e, ok := res.Dispatch.Lookup(key); !ok || e.Origin != "a.Base" {
		t.Errorf("Lookup(%s) = %+v, %v", key, e, ok)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestMissingSupertype(t *testing.T) {
	s := testfixtures.Build(t, catalog.TypeInfo{Name: "a.C", Super: "b.Missing", Interfaces: []string{"b.Iface"}})
	res, err := Emit(s)
	if err != nil {
		t.Fatal(err)
	}
	u := res.Unit("a.C")
	if u.Super != nil || len(u.Interfaces) != 0 {
		t.Errorf("unit kept missing supertypes: %v %v", u.Super, u.Interfaces)
	}
	if len(res.Diagnostics) != 2 {
		t.Errorf("diagnostics = %v, want 2", res.Diagnostics)
	}
}

func TestEmitInvalidCatalog(t *testing.T) {
	s := testfixtures.Build(t,
		catalog.TypeInfo{Name: "a.A", Super: "a.B"},
		catalog.TypeInfo{Name: "a.B", Super: "a.A"},
	)
	if _, err := Emit(s); err == nil {
		t.Error("Emit() succeeded on a circular catalog")
	}
}

func TestEmitDisambiguationFails(t *testing.T) {
	s := testfixtures.Build(t,
		catalog.TypeInfo{Name: "a.Thing"},
		catalog.TypeInfo{Name: "b.Thing"},
		catalog.TypeInfo{Name: "a_Thing"},
	)
	_, err := Emit(s)
	var de *ir.DisambiguationError
	if !errors.As(err, &de) {
		t.Errorf("Emit() error = %v, want DisambiguationError", err)
	}
}

func TestEmitIdempotent(t *testing.T) {
	a := emitFeatureset(t)
	b := emitFeatureset(t)
	if !reflect.DeepEqual(a.Units, b.Units) {
		t.Error("units differ between runs")
	}
	if !reflect.DeepEqual(a.Diagnostics, b.Diagnostics) {
		t.Error("diagnostics differ between runs")
	}
	if !reflect.DeepEqual(a.Dispatch.Entries(), b.Dispatch.Entries()) {
		t.Error("dispatch tables differ between runs")
	}
}

func TestDispatchTable(t *testing.T) {
	res := emitFeatureset(t)
	table := res.Dispatch

	tests := []struct {
		key  DispatchKey
		name string
	}{
		{DispatchKey{Kind: EntryMethod, Class: testfixtures.Thing, Member: "set", Descriptor: "(I)V"}, "set"},
		{DispatchKey{Kind: EntryConstructor, Class: testfixtures.Thing, Member: "<init>", Descriptor: "(I)V"}, "new"},
		{DispatchKey{Kind: EntryGetter, Class: testfixtures.Thing, Member: "theInstanceField", Descriptor: "Ljava/lang/String;"}, "getTheInstanceField"},
		{DispatchKey{Kind: EntrySetter, Class: testfixtures.Thing, Member: "theInstanceField", Descriptor: "Ljava/lang/String;"}, "setTheInstanceField"},
		{DispatchKey{Kind: EntryMethod, Class: testfixtures.Foo, Member: "create", Descriptor: "()Lcom/redseal/featureset/overloading/Overloading$Bar;", Static: true}, "create"},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			e, ok := table.Lookup(tt.key)
			if !ok {
				t.Fatal("Lookup() found nothing")
			}
			if e.Name != tt.name {
				t.Errorf("Name = %q, want %q", e.Name, tt.name)
			}
		})
	}

	varargs := DispatchKey{Kind: EntryMethod, Class: testfixtures.SomeClass, Member: "setListVarArgs", Descriptor: "([Ljava/lang/String;)V"}
	e, ok := table.Lookup(varargs)
	if !ok || len(e.Shapes) != 2 {
		t.Errorf("setListVarArgs entry = %+v, want two shapes", e)
	}

	entries := table.Entries()
	if len(entries) != table.Len() {
		t.Errorf("Entries() = %d, Len() = %d", len(entries), table.Len())
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key.String() >= entries[i].Key.String() {
			t.Errorf("entries out of order at %s", entries[i].Key)
		}
	}
}

func TestGuard(t *testing.T) {
	res := emitFeatureset(t)
	var calls []DispatchKey
	inner := InvokerFunc(func(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
		calls = append(calls, key)
		return len(args), nil
	})
	inv := Guard(inner, res.Dispatch)
	ctx := context.Background()

	set := DispatchKey{Kind: EntryMethod, Class: testfixtures.Thing, Member: "set", Descriptor: "(I)V"}
	v, err := inv.Invoke(ctx, set, []Value{1})
	if err != nil || v != 1 {
		t.Errorf("Invoke(set) = %v, %v", v, err)
	}

	_, err = inv.Invoke(ctx, set, nil)
	var ie *InvocationError
	if !errors.As(err, &ie) || ie.Key != set {
		t.Errorf("Invoke(set) with no args error = %v, want InvocationError", err)
	}

	helper := DispatchKey{Kind: EntryMethod, Class: testfixtures.SomeClass, Member: "helper", Descriptor: "()I"}
	if _, err := inv.Invoke(ctx, helper, nil); !errors.Is(err, ErrUnknownCallable) {
		t.Errorf("Invoke(helper) error = %v, want ErrUnknownCallable", err)
	}

	getter := DispatchKey{Kind: EntryGetter, Class: testfixtures.Thing, Member: "MAX", Descriptor: "I", Static: true}
	if _, err := inv.Invoke(ctx, getter, nil); err != nil {
		t.Errorf("Invoke(MAX getter) error = %v", err)
	}
	setter := getter
	setter.Kind = EntrySetter
	if _, err := inv.Invoke(ctx, setter, []Value{1}); !errors.Is(err, ErrUnknownCallable) {
		t.Errorf("Invoke(MAX setter) error = %v, want ErrUnknownCallable", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := inv.Invoke(cancelled, set, []Value{1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Invoke() with cancelled context error = %v", err)
	}

	if len(calls) != 2 {
		t.Errorf("inner invoker called %d times, want 2", len(calls))
	}
}
