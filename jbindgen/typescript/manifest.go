package typescript

import (
	"encoding/json"

	"github.com/broady/jbind/jbindgen/binding"
	"github.com/broady/jbind/jbindgen/ir"
)

// ManifestVersion is the schema version of bindings.json.
const ManifestVersion = 1

// Manifest is the JSON description of a generated binding surface, read
// by the runtime bridge to route calls.
type Manifest struct {
	Version     int             `json:"version"`
	Units       []ManifestUnit  `json:"units"`
	Dispatch    []ManifestEntry `json:"dispatch"`
	Diagnostics []ir.Diagnostic `json:"diagnostics,omitempty"`
}

// ManifestUnit describes one binding unit.
type ManifestUnit struct {
	Class       string             `json:"class"`
	Identifier  string             `json:"identifier"`
	Kind        string             `json:"kind"`
	Super       string             `json:"super,omitempty"`
	Interfaces  []string           `json:"interfaces,omitempty"`
	Enclosing   string             `json:"enclosing,omitempty"`
	Accessors   []ManifestAccessor `json:"accessors,omitempty"`
	StaticState []ir.StaticEntry   `json:"staticState,omitempty"`
	Source      string             `json:"source,omitempty"`
}

// ManifestAccessor describes one field accessor pair.
type ManifestAccessor struct {
	Field  string  `json:"field"`
	Getter string  `json:"getter"`
	Setter string  `json:"setter,omitempty"`
	Static bool    `json:"static,omitempty"`
	Type   ir.Expr `json:"type"`
}

// ManifestEntry is one dispatch table entry.
type ManifestEntry struct {
	Kind       string   `json:"kind"`
	Class      string   `json:"class"`
	Member     string   `json:"member"`
	Descriptor string   `json:"descriptor"`
	Static     bool     `json:"static,omitempty"`
	Unit       string   `json:"unit"`
	Name       string   `json:"name"`
	Origin     string   `json:"origin,omitempty"`
	Shapes     []string `json:"shapes"`
}

// NewManifest describes res.
func NewManifest(res *binding.Result) *Manifest {
	m := &Manifest{
		Version:     ManifestVersion,
		Units:       []ManifestUnit{},
		Dispatch:    []ManifestEntry{},
		Diagnostics: res.Diagnostics,
	}
	for _, u := range res.Units {
		mu := ManifestUnit{
			Class:       u.Class,
			Identifier:  u.ID.Path(),
			Kind:        u.Kind.String(),
			StaticState: u.StaticState.Entries,
			Source:      u.Source.String(),
		}
		if u.Super != nil {
			mu.Super = u.Super.Path()
		}
		for _, i := range u.Interfaces {
			mu.Interfaces = append(mu.Interfaces, i.Path())
		}
		if u.Enclosing != nil {
			mu.Enclosing = u.Enclosing.Path()
		}
		for _, a := range u.Accessors {
			mu.Accessors = append(mu.Accessors, ManifestAccessor{
				Field:  a.Field,
				Getter: a.Getter,
				Setter: a.Setter,
				Static: a.Static,
				Type:   a.Type,
			})
		}
		m.Units = append(m.Units, mu)
	}
	if res.Dispatch != nil {
		for _, e := range res.Dispatch.Entries() {
			me := ManifestEntry{
				Kind:       string(e.Key.Kind),
				Class:      e.Key.Class,
				Member:     e.Key.Member,
				Descriptor: e.Key.Descriptor,
				Static:     e.Key.Static,
				Unit:       e.Unit.Path(),
				Name:       e.Name,
				Origin:     e.Origin,
			}
			for _, s := range e.Shapes {
				me.Shapes = append(me.Shapes, s.String())
			}
			m.Dispatch = append(m.Dispatch, me)
		}
	}
	return m
}

// Marshal renders the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
