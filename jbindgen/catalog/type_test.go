package catalog

import (
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input      string
		wantString string
		wantTag    Tag
		wantDesc   string
	}{
		{"int", "int", TagPrimitive, "I"},
		{"long", "long", TagPrimitive, "J"},
		{"java.lang.Integer", "java.lang.Integer", TagBoxed, "Ljava/lang/Integer;"},
		{"java.lang.Character", "java.lang.Character", TagBoxed, "Ljava/lang/Character;"},
		{"java.lang.String", "java.lang.String", TagObject, "Ljava/lang/String;"},
		{"int[]", "int[]", TagArray, "[I"},
		{"int[][]", "int[][]", TagArray, "[[I"},
		{"com.example.Thing[][]", "com.example.Thing[][]", TagArray, "[[Lcom/example/Thing;"},
		{"  double [] ", "double[]", TagArray, "[D"},
		{"com.example.Outer$Inner", "com.example.Outer$Inner", TagObject, "Lcom/example/Outer$Inner;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.wantString {
				t.Errorf("ParseType(%q).String() = %q, want %q", tt.input, got.String(), tt.wantString)
			}
			if got.Tag != tt.wantTag {
				t.Errorf("ParseType(%q).Tag = %v, want %v", tt.input, got.Tag, tt.wantTag)
			}
			if got.Descriptor() != tt.wantDesc {
				t.Errorf("ParseType(%q).Descriptor() = %q, want %q", tt.input, got.Descriptor(), tt.wantDesc)
			}
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, input := range []string{"", "void", "[]", "com..Thing", "1abc", "List<String>"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseType(input); err == nil {
				t.Errorf("ParseType(%q) expected error", input)
			}
		})
	}
}

func TestParseReturnType(t *testing.T) {
	got, err := ParseReturnType("void")
	if err != nil || got != nil {
		t.Errorf("ParseReturnType(void) = %v, %v, want nil, nil", got, err)
	}
	got, err = ParseReturnType("boolean")
	if err != nil {
		t.Fatalf("ParseReturnType(boolean) error = %v", err)
	}
	if got.String() != "boolean" {
		t.Errorf("ParseReturnType(boolean) = %q, want %q", got.String(), "boolean")
	}
}

func TestPrimitiveAndBoxedAreDistinct(t *testing.T) {
	kinds := []PrimitiveKind{Boolean, Byte, Char, Short, Int, Long, Float, Double}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			p, b := Primitive(k), Boxed(k)
			if p.Equal(b) {
				t.Errorf("Primitive(%s) equals Boxed(%s)", k, k)
			}
			if got := Object(k.BoxName()); !got.Equal(b) {
				t.Errorf("Object(%q) = %v, want boxed", k.BoxName(), got.Tag)
			}
		})
	}
}

func TestElementPeelsOneDimension(t *testing.T) {
	for dims := 1; dims <= 4; dims++ {
		typ := ArrayOf(Object("com.example.Thing"), dims)
		cur := typ
		for d := dims; d > 0; d-- {
			if !cur.IsArray() || cur.Dims != d {
				t.Fatalf("dims=%d: got Dims=%d at depth %d", dims, cur.Dims, d)
			}
			cur = cur.Element()
		}
		if cur.Tag != TagObject || cur.Name != "com.example.Thing" {
			t.Errorf("dims=%d: innermost = %v, want com.example.Thing", dims, cur)
		}
	}
}

func TestArrayOfFlattens(t *testing.T) {
	inner := ArrayOf(Primitive(Int), 2)
	got := ArrayOf(inner, 1)
	if got.Dims != 3 {
		t.Errorf("ArrayOf(int[][], 1).Dims = %d, want 3", got.Dims)
	}
	if got.Elem.IsArray() {
		t.Error("ArrayOf produced a nested array element")
	}
	if got.String() != "int[][][]" {
		t.Errorf("ArrayOf(int[][], 1) = %q, want %q", got.String(), "int[][][]")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		fqn        string
		wantPkg    string
		wantSimple string
	}{
		{"com.example.Thing", "com.example", "Thing"},
		{"com.example.Outer$Inner", "com.example", "Inner"},
		{"com.example.Outer$Mid$Inner", "com.example", "Inner"},
		{"Thing", "", "Thing"},
	}
	for _, tt := range tests {
		t.Run(tt.fqn, func(t *testing.T) {
			if got := PackageOf(tt.fqn); got != tt.wantPkg {
				t.Errorf("PackageOf(%q) = %q, want %q", tt.fqn, got, tt.wantPkg)
			}
			if got := SimpleNameOf(tt.fqn); got != tt.wantSimple {
				t.Errorf("SimpleNameOf(%q) = %q, want %q", tt.fqn, got, tt.wantSimple)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	varargs := Signature{
		Params:  []TypeDescriptor{ArrayOf(Object(StringClass), 1)},
		VarArgs: true,
	}
	fixed := Signature{
		Params: []TypeDescriptor{ArrayOf(Object(StringClass), 1)},
	}
	if varargs.Erased() != fixed.Erased() {
		t.Errorf("Erased() differs: %q vs %q", varargs.Erased(), fixed.Erased())
	}
	if got, want := varargs.String(), "(java.lang.String...) void"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := fixed.Descriptor(), "([Ljava/lang/String;)V"; got != want {
		t.Errorf("Descriptor() = %q, want %q", got, want)
	}
}
