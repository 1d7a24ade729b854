package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Manifest is the YAML form of a catalog. Parameter types use Java source
// syntax; a trailing "..." marks a variadic last parameter. Methods may give
// a JVM descriptor instead of params/returns.
type Manifest struct {
	Types []ManifestType `yaml:"types" json:"types" validate:"dive"`
}

// ManifestType is one class or interface in a Manifest.
type ManifestType struct {
	Name         string               `yaml:"name" json:"name" validate:"required"`
	Kind         string               `yaml:"kind,omitempty" json:"kind,omitempty" validate:"omitempty,oneof=class abstract interface"`
	Visibility   string               `yaml:"visibility,omitempty" json:"visibility,omitempty" validate:"omitempty,oneof=public protected package private"`
	Super        string               `yaml:"super,omitempty" json:"super,omitempty"`
	Interfaces   []string             `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Enclosing    string               `yaml:"enclosing,omitempty" json:"enclosing,omitempty"`
	Inner        bool                 `yaml:"inner,omitempty" json:"inner,omitempty"`
	Doc          string               `yaml:"doc,omitempty" json:"doc,omitempty"`
	Fields       []ManifestField      `yaml:"fields,omitempty" json:"fields,omitempty" validate:"dive"`
	Constructors []ManifestMethod     `yaml:"constructors,omitempty" json:"constructors,omitempty" validate:"dive"`
	Methods      []ManifestMethod     `yaml:"methods,omitempty" json:"methods,omitempty" validate:"dive"`
	StaticInit   []ManifestAssignment `yaml:"staticInit,omitempty" json:"staticInit,omitempty" validate:"dive"`
}

// ManifestField is a field declaration.
type ManifestField struct {
	Name       string `yaml:"name" json:"name" validate:"required"`
	Type       string `yaml:"type" json:"type" validate:"required"`
	Visibility string `yaml:"visibility,omitempty" json:"visibility,omitempty" validate:"omitempty,oneof=public protected package private"`
	Static     bool   `yaml:"static,omitempty" json:"static,omitempty"`
	Final      bool   `yaml:"final,omitempty" json:"final,omitempty"`
	Doc        string `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// ManifestMethod is a method or constructor declaration.
type ManifestMethod struct {
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Params     []string `yaml:"params,omitempty" json:"params,omitempty"`
	ParamNames []string `yaml:"paramNames,omitempty" json:"paramNames,omitempty"`
	Returns    string   `yaml:"returns,omitempty" json:"returns,omitempty"`
	Descriptor string   `yaml:"descriptor,omitempty" json:"descriptor,omitempty" validate:"omitempty,startswith=("`
	VarArgs    bool     `yaml:"varargs,omitempty" json:"varargs,omitempty"`
	Visibility string   `yaml:"visibility,omitempty" json:"visibility,omitempty" validate:"omitempty,oneof=public protected package private"`
	Static     bool     `yaml:"static,omitempty" json:"static,omitempty"`
	Abstract   bool     `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Default    bool     `yaml:"default,omitempty" json:"default,omitempty"`
	Doc        string   `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// ManifestAssignment is one static initialization step.
type ManifestAssignment struct {
	Field string `yaml:"field" json:"field" validate:"required"`
	Value string `yaml:"value" json:"value"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeManifest parses and validates a YAML manifest.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// EncodeManifest renders a manifest as YAML.
func EncodeManifest(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// AddTo converts every manifest type and adds it to b.
func (m *Manifest) AddTo(b *Builder) error {
	for _, mt := range m.Types {
		t, err := mt.typeInfo()
		if err != nil {
			return fmt.Errorf("type %s: %w", mt.Name, err)
		}
		b.Add(t)
	}
	return nil
}

// Snapshot converts the manifest into a catalog snapshot.
func (m *Manifest) Snapshot() (*Snapshot, error) {
	b := NewBuilder()
	if err := m.AddTo(b); err != nil {
		return nil, err
	}
	return b.Build()
}

func (mt ManifestType) typeInfo() (TypeInfo, error) {
	kind, err := ParseTypeKind(mt.Kind)
	if err != nil {
		return TypeInfo{}, err
	}
	t := TypeInfo{
		Name:       mt.Name,
		Kind:       kind,
		Visibility: manifestVisibility(mt.Visibility),
		Super:      mt.Super,
		Interfaces: mt.Interfaces,
		Enclosing:  mt.Enclosing,
		Static:     !mt.Inner,
		Doc:        mt.Doc,
	}
	if t.Super == ObjectClass {
		t.Super = ""
	}

	for _, f := range mt.Fields {
		typ, err := ParseType(f.Type)
		if err != nil {
			return TypeInfo{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		vis := manifestVisibility(f.Visibility)
		if kind == KindInterface {
			vis = Public
		}
		t.Members = append(t.Members, Member{
			Name:       f.Name,
			Kind:       FieldMember,
			Visibility: vis,
			Static:     f.Static || kind == KindInterface,
			Final:      f.Final || kind == KindInterface,
			Type:       typ,
			Doc:        f.Doc,
		})
	}
	for _, c := range mt.Constructors {
		sig, err := c.signature()
		if err != nil {
			return TypeInfo{}, fmt.Errorf("constructor: %w", err)
		}
		sig.Return = nil
		t.Members = append(t.Members, Member{
			Name:       "<init>",
			Kind:       ConstructorMember,
			Visibility: manifestVisibility(c.Visibility),
			Signature:  sig,
			ParamNames: c.ParamNames,
			Doc:        c.Doc,
		})
	}
	for _, mm := range mt.Methods {
		if mm.Name == "" {
			return TypeInfo{}, fmt.Errorf("method without a name")
		}
		sig, err := mm.signature()
		if err != nil {
			return TypeInfo{}, fmt.Errorf("method %s: %w", mm.Name, err)
		}
		vis := manifestVisibility(mm.Visibility)
		abstract := mm.Abstract
		if kind == KindInterface {
			if mm.Visibility == "" {
				vis = Public
			}
			abstract = !mm.Static && !mm.Default && vis != Private
		}
		t.Members = append(t.Members, Member{
			Name:       mm.Name,
			Kind:       MethodMember,
			Visibility: vis,
			Static:     mm.Static,
			Abstract:   abstract,
			Default:    mm.Default,
			Signature:  sig,
			ParamNames: mm.ParamNames,
			Doc:        mm.Doc,
		})
	}
	for _, a := range mt.StaticInit {
		t.StaticInit = append(t.StaticInit, Assignment{Field: a.Field, Value: a.Value})
	}
	return t, nil
}

func (mm ManifestMethod) signature() (Signature, error) {
	if mm.Descriptor != "" {
		params, ret, err := ParseMethodDescriptor(mm.Descriptor)
		if err != nil {
			return Signature{}, err
		}
		return Signature{Params: params, VarArgs: mm.VarArgs, Return: ret}, nil
	}

	sig := Signature{VarArgs: mm.VarArgs}
	for i, p := range mm.Params {
		p = strings.TrimSpace(p)
		if strings.HasSuffix(p, "...") {
			if i != len(mm.Params)-1 {
				return Signature{}, fmt.Errorf("only the last parameter may be variadic")
			}
			p = strings.TrimSuffix(p, "...") + "[]"
			sig.VarArgs = true
		}
		typ, err := ParseType(p)
		if err != nil {
			return Signature{}, err
		}
		sig.Params = append(sig.Params, typ)
	}
	ret, err := ParseReturnType(mm.Returns)
	if err != nil {
		return Signature{}, err
	}
	sig.Return = ret
	return sig, nil
}

// manifestVisibility defaults an omitted visibility to public.
func manifestVisibility(s string) Visibility {
	if s == "" {
		return Public
	}
	return ParseVisibility(s)
}

// NewManifest renders a snapshot in manifest form.
func NewManifest(s *Snapshot) *Manifest {
	m := &Manifest{}
	for _, t := range s.Types() {
		mt := ManifestType{
			Name:       t.Name,
			Kind:       t.Kind.String(),
			Visibility: t.Visibility.String(),
			Super:      t.Super,
			Interfaces: t.Interfaces,
			Enclosing:  t.Enclosing,
			Inner:      !t.Static,
			Doc:        t.Doc,
		}
		for _, mem := range t.Members {
			switch mem.Kind {
			case FieldMember:
				mt.Fields = append(mt.Fields, ManifestField{
					Name:       mem.Name,
					Type:       mem.Type.String(),
					Visibility: mem.Visibility.String(),
					Static:     mem.Static,
					Final:      mem.Final,
					Doc:        mem.Doc,
				})
			case ConstructorMember:
				mt.Constructors = append(mt.Constructors, manifestMethod(mem))
			case MethodMember:
				mt.Methods = append(mt.Methods, manifestMethod(mem))
			}
		}
		for _, a := range t.StaticInit {
			mt.StaticInit = append(mt.StaticInit, ManifestAssignment{Field: a.Field, Value: a.Value})
		}
		m.Types = append(m.Types, mt)
	}
	return m
}

func manifestMethod(mem Member) ManifestMethod {
	mm := ManifestMethod{
		ParamNames: mem.ParamNames,
		Visibility: mem.Visibility.String(),
		Static:     mem.Static,
		Abstract:   mem.Abstract,
		Default:    mem.Default,
		Doc:        mem.Doc,
	}
	if mem.Kind == MethodMember {
		mm.Name = mem.Name
		if mem.Signature.Return != nil {
			mm.Returns = mem.Signature.Return.String()
		}
	}
	sig := mem.Signature
	for i, p := range sig.Params {
		if sig.VarArgs && i == len(sig.Params)-1 && p.IsArray() {
			mm.Params = append(mm.Params, p.Element().String()+"...")
			continue
		}
		mm.Params = append(mm.Params, p.String())
	}
	return mm
}
