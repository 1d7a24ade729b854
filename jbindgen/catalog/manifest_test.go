package catalog

import (
	"strings"
	"testing"
)

const sampleManifest = `
types:
  - name: com.example.Shape
    kind: interface
    methods:
      - name: area
        returns: double
      - name: describe
        returns: java.lang.String
        default: true
  - name: com.example.Base
    kind: abstract
    interfaces: [com.example.Shape]
    fields:
      - name: COUNT
        type: int
        static: true
        final: true
    staticInit:
      - field: COUNT
        value: "3"
  - name: com.example.Square
    super: com.example.Base
    constructors:
      - params: [double]
        paramNames: [side]
    methods:
      - name: area
        returns: double
      - name: setList
        params: ["java.lang.String..."]
      - name: grid
        descriptor: "()[[I"
  - name: com.example.Square$Corner
    enclosing: com.example.Square
    inner: true
`

func TestDecodeManifest(t *testing.T) {
	m, err := DecodeManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("DecodeManifest() error = %v", err)
	}
	snap, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	wantNames := []string{"com.example.Base", "com.example.Shape", "com.example.Square", "com.example.Square$Corner"}
	got := snap.ListTypes()
	if strings.Join(got, ",") != strings.Join(wantNames, ",") {
		t.Errorf("ListTypes() = %v, want %v", got, wantNames)
	}

	if kind, _ := snap.KindOf("com.example.Base"); kind != KindAbstractClass {
		t.Errorf("KindOf(Base) = %v, want abstract", kind)
	}
	if sup := snap.SupertypeOf("com.example.Square"); sup != "com.example.Base" {
		t.Errorf("SupertypeOf(Square) = %q, want com.example.Base", sup)
	}
	if enc := snap.EnclosingTypeOf("com.example.Square$Corner"); enc != "com.example.Square" {
		t.Errorf("EnclosingTypeOf(Corner) = %q, want com.example.Square", enc)
	}
	corner, _ := snap.Lookup("com.example.Square$Corner")
	if corner.Static {
		t.Error("Corner should be an inner (non-static) type")
	}

	shape := snap.MembersOf("com.example.Shape")
	if len(shape) != 2 {
		t.Fatalf("Shape members = %d, want 2", len(shape))
	}
	if !shape[0].Abstract || shape[1].Abstract || !shape[1].Default {
		t.Errorf("Shape abstract/default flags wrong: %+v", shape)
	}

	square := snap.MembersOf("com.example.Square")
	var setList, grid Member
	for _, m := range square {
		switch m.Name {
		case "setList":
			setList = m
		case "grid":
			grid = m
		}
		if m.Owner != "com.example.Square" {
			t.Errorf("member %s Owner = %q", m.Name, m.Owner)
		}
	}
	if !setList.Signature.VarArgs || setList.Signature.Params[0].String() != "java.lang.String[]" {
		t.Errorf("setList signature = %s", setList.Signature)
	}
	if grid.Signature.Return == nil || grid.Signature.Return.String() != "int[][]" {
		t.Errorf("grid return = %v, want int[][]", grid.Signature.Return)
	}
	if square[0].Kind != ConstructorMember || square[0].ParamNames[0] != "side" {
		t.Errorf("first Square member = %+v, want constructor(side)", square[0])
	}

	base, _ := snap.Lookup("com.example.Base")
	if len(base.StaticInit) != 1 || base.StaticInit[0].Value != "3" {
		t.Errorf("Base StaticInit = %+v", base.StaticInit)
	}
}

func TestDecodeManifestInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "types:\n  - kind: class\n"},
		{"bad kind", "types:\n  - name: a.B\n    kind: record\n"},
		{"bad visibility", "types:\n  - name: a.B\n    fields:\n      - name: x\n        type: int\n        visibility: friend\n"},
		{"unknown key", "types:\n  - name: a.B\n    colour: red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeManifest([]byte(tt.yaml)); err == nil {
				t.Error("DecodeManifest() expected error")
			}
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m, err := DecodeManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	snap, err := m.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	out, err := EncodeManifest(NewManifest(snap))
	if err != nil {
		t.Fatalf("EncodeManifest() error = %v", err)
	}
	m2, err := DecodeManifest(out)
	if err != nil {
		t.Fatalf("DecodeManifest(encoded) error = %v\n%s", err, out)
	}
	snap2, err := m2.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range snap.ListTypes() {
		a, b := snap.MembersOf(name), snap2.MembersOf(name)
		if len(a) != len(b) {
			t.Errorf("%s: %d members after round trip, want %d", name, len(b), len(a))
			continue
		}
		for i := range a {
			if a[i].Signature.String() != b[i].Signature.String() {
				t.Errorf("%s.%s: signature %s, want %s", name, a[i].Name, b[i].Signature, a[i].Signature)
			}
		}
	}
}

func TestDecodeManifestArrayParams(t *testing.T) {
	tests := []struct {
		name   string
		params string
	}{
		{"flow", `        params: ["int[][]", "java.lang.String..."]`},
		{"block", "        params:\n          - int[][]\n          - java.lang.String..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "types:\n  - name: a.B\n    methods:\n      - name: fill\n" + tt.params + "\n"
			m, err := DecodeManifest([]byte(data))
			if err != nil {
				t.Fatalf("DecodeManifest() error = %v", err)
			}
			snap, err := m.Snapshot()
			if err != nil {
				t.Fatalf("Snapshot() error = %v", err)
			}
			members := snap.MembersOf("a.B")
			if len(members) != 1 {
				t.Fatalf("MembersOf(a.B) = %d members, want 1", len(members))
			}
			sig := members[0].Signature
			if got, want := sig.Descriptor(), "([[I[Ljava/lang/String;)V"; got != want {
				t.Errorf("Descriptor() = %q, want %q", got, want)
			}
			if !sig.VarArgs {
				t.Error("VarArgs = false, want true")
			}
		})
	}
}
