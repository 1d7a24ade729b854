package ir

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/broady/jbind/jbindgen/catalog"
)

func TestExprKind(t *testing.T) {
	tests := []struct {
		expr     Expr
		kind     ExprKind
		nullable bool
	}{
		{&PrimitiveExpr{Java: catalog.Int, Target: TargetNumber}, KindPrimitive, false},
		{&BoxedExpr{Element: &PrimitiveExpr{Java: catalog.Int}}, KindBoxed, true},
		{String(), KindBuiltin, true},
		{Array(String()), KindArray, true},
		{Reference("a.B", BindingIdentifier{Name: "B"}), KindReference, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if tt.expr.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.expr.Kind(), tt.kind)
			}
			if tt.expr.Nullable() != tt.nullable {
				t.Errorf("Nullable() = %v, want %v", tt.expr.Nullable(), tt.nullable)
			}
		})
	}
}

func TestArrayDims(t *testing.T) {
	var e Expr = &PrimitiveExpr{Java: catalog.Int}
	for i := 1; i <= 3; i++ {
		e = Array(e)
		if got := e.(*ArrayExpr).Dims(); got != i {
			t.Errorf("Dims() = %d, want %d", got, i)
		}
	}
}

func TestBindingIdentifier(t *testing.T) {
	top := BindingIdentifier{Name: "ambiguous_Thing"}
	nested := BindingIdentifier{Name: "Nested", Scope: top.Path()}
	if got := nested.Path(); got != "ambiguous_Thing.Nested" {
		t.Errorf("Path() = %q, want %q", got, "ambiguous_Thing.Nested")
	}
	if got := nested.Top(); got != "ambiguous_Thing" {
		t.Errorf("Top() = %q, want %q", got, "ambiguous_Thing")
	}
	if !(BindingIdentifier{}).IsZero() {
		t.Error("zero BindingIdentifier should report IsZero")
	}
}

func TestCallableShapes(t *testing.T) {
	fixed := Callable{Name: "setList"}
	if got := fixed.Shapes(); len(got) != 1 || got[0] != ShapeFixed {
		t.Errorf("Shapes() = %v, want [fixed]", got)
	}
	variadic := Callable{Name: "setListVarArgs", VarArgs: true}
	if got := variadic.Shapes(); len(got) != 2 || got[0] != ShapeSpread || got[1] != ShapeFixed {
		t.Errorf("Shapes() = %v, want [spread fixed]", got)
	}
}

func TestUnitViews(t *testing.T) {
	u := &TypeBindingUnit{
		Accessors: []Accessor{
			{Field: "x", Getter: "getX", Setter: "setX"},
			{Field: "Y", Getter: "getY", Static: true},
		},
		Methods: []Callable{
			{Name: "a"},
			{Name: "a", Params: []Param{{Name: "n"}}},
			{Name: "b", Static: true},
		},
	}
	if got := len(u.Overloads("a")); got != 2 {
		t.Errorf("Overloads(a) = %d, want 2", got)
	}
	if got := len(u.StaticMethods()); got != 1 {
		t.Errorf("StaticMethods() = %d, want 1", got)
	}
	if got := len(u.InstanceAccessors()); got != 1 {
		t.Errorf("InstanceAccessors() = %d, want 1", got)
	}
	names := u.MemberNames()
	for _, n := range []string{"getX", "setX", "getY", "a", "b"} {
		if !names[n] {
			t.Errorf("MemberNames() missing %q", n)
		}
	}
	if names["setY"] {
		t.Error("MemberNames() has setter for final field")
	}
}

func TestDiagnosticsReport(t *testing.T) {
	var d Diagnostics
	d.Report(&UnresolvedTypeError{Type: "x.Missing", Owner: "a.B", Member: "get"})
	d.Report(fmt.Errorf("wrapped: %w", &OverloadConflictError{Owner: "a.B", Method: "f", Reason: "return type differs"}))
	d.Report(errors.New("plain"))
	d.Report(nil)

	all := d.All()
	if d.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", d.Count())
	}
	want := []struct {
		kind ErrorCode
		loc  string
	}{
		{CodeUnresolvedType, "a.B.get"},
		{CodeOverloadConflict, "a.B.f"},
		{CodeInvalidCatalog, ""},
	}
	for i, w := range want {
		if all[i].Kind != w.kind || all[i].Location != w.loc {
			t.Errorf("diagnostic %d = %+v, want kind %s at %q", i, all[i], w.kind, w.loc)
		}
	}
	if got := d.Summary(); got != "3 diagnostics" {
		t.Errorf("Summary() = %q, want %q", got, "3 diagnostics")
	}
	if got := d.CountKind(CodeUnresolvedType); got != 1 {
		t.Errorf("CountKind(unresolved_type) = %d, want 1", got)
	}
}

func TestDisambiguationErrorAs(t *testing.T) {
	err := fmt.Errorf("naming: %w", &DisambiguationError{Identifier: "a_Thing", Classes: []string{"x.a.Thing", "y.a.Thing"}})
	var de *DisambiguationError
	if !errors.As(err, &de) {
		t.Fatal("errors.As failed for DisambiguationError")
	}
	if !strings.Contains(err.Error(), "x.a.Thing, y.a.Thing") {
		t.Errorf("Error() = %q, want both classes", err.Error())
	}
}

func TestExprJSON(t *testing.T) {
	e := Array(&BoxedExpr{Element: &PrimitiveExpr{Java: catalog.Long, Target: TargetBigInt}})
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"kind":"array","element":{"kind":"boxed","element":{"kind":"primitive","java":"long","target":"bigint"}}}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
}
