package binding

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

// EntryKind classifies a dispatch entry.
type EntryKind string

const (
	EntryConstructor EntryKind = "constructor"
	EntryMethod      EntryKind = "method"
	EntryGetter      EntryKind = "getter"
	EntrySetter      EntryKind = "setter"
)

// DispatchKey identifies one runtime entry point. Methods and
// constructors carry a JVM method descriptor, e.g. "(I)V"; accessors
// carry the field descriptor of their field.
type DispatchKey struct {
	Kind       EntryKind
	Class      string
	Member     string
	Descriptor string
	Static     bool
}

// String renders the qualified form of the key, e.g.
// "method com.example.Thing.set(I)V".
func (k DispatchKey) String() string {
	s := string(k.Kind) + " "
	if k.Static {
		s += "static "
	}
	sep := ""
	if k.Kind == EntryGetter || k.Kind == EntrySetter {
		sep = ":"
	}
	return s + k.Class + "." + k.Member + sep + k.Descriptor
}

// Arity returns the number of arguments the entry point takes.
func (k DispatchKey) Arity() (int, error) {
	switch k.Kind {
	case EntryGetter:
		return 0, nil
	case EntrySetter:
		return 1, nil
	}
	params, _, err := catalog.ParseMethodDescriptor(k.Descriptor)
	if err != nil {
		return 0, err
	}
	return len(params), nil
}

// DispatchEntry describes how a bound name reaches a JVM member.
type DispatchEntry struct {
	Key    DispatchKey
	Unit   ir.BindingIdentifier
	Name   string // name on the binding side
	Origin string // declaring type
	Shapes []ir.CallShape
}

// DispatchTable indexes every callable exposed by a set of units.
type DispatchTable struct {
	entries map[DispatchKey]DispatchEntry
	keys    []DispatchKey
}

// NewDispatchTable builds the table for units.
func NewDispatchTable(units []*ir.TypeBindingUnit) *DispatchTable {
	t := &DispatchTable{entries: make(map[DispatchKey]DispatchEntry)}
	fixed := []ir.CallShape{ir.ShapeFixed}
	for _, u := range units {
		for _, c := range u.Constructors {
			key := DispatchKey{Kind: EntryConstructor, Class: u.Class, Member: "<init>",
				Descriptor: catalog.MethodDescriptor(c.Signature.Params, nil)}
			t.register(u, key, c.Name, c.Origin, c.Shapes())
		}
		for _, m := range u.Methods {
			key := DispatchKey{Kind: EntryMethod, Class: u.Class, Member: m.Name,
				Descriptor: m.Signature.Descriptor(), Static: m.Static}
			t.register(u, key, m.Name, m.Origin, m.Shapes())
		}
		for _, a := range u.Accessors {
			key := DispatchKey{Kind: EntryGetter, Class: u.Class, Member: a.Field,
				Descriptor: a.Java.Descriptor(), Static: a.Static}
			t.register(u, key, a.Getter, a.Origin, fixed)
			if a.Setter != "" {
				key.Kind = EntrySetter
				t.register(u, key, a.Setter, a.Origin, fixed)
			}
		}
	}
	sort.Slice(t.keys, func(i, j int) bool {
		return t.keys[i].String() < t.keys[j].String()
	})
	return t
}

func (t *DispatchTable) register(u *ir.TypeBindingUnit, key DispatchKey, name, origin string, shapes []ir.CallShape) {
	if _, ok := t.entries[key]; ok {
		return
	}
	t.entries[key] = DispatchEntry{
		Key:    key,
		Unit:   u.ID,
		Name:   name,
		Origin: origin,
		Shapes: shapes,
	}
	t.keys = append(t.keys, key)
}

// Lookup returns the entry registered under key.
func (t *DispatchTable) Lookup(key DispatchKey) (DispatchEntry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (t *DispatchTable) Len() int {
	return len(t.keys)
}

// Entries returns every entry ordered by key.
func (t *DispatchTable) Entries() []DispatchEntry {
	out := make([]DispatchEntry, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.entries[k])
	}
	return out
}

// Value is an argument or result crossing the binding boundary.
type Value any

// Invoker performs calls into the runtime hosting the catalog's classes.
type Invoker interface {
	Invoke(ctx context.Context, key DispatchKey, args []Value) (Value, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, key DispatchKey, args []Value) (Value, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
	return f(ctx, key, args)
}

// ErrUnknownCallable is returned for keys the table does not contain.
var ErrUnknownCallable = errors.New("unknown callable")

// InvocationError wraps a failed call with the entry point it targeted.
type InvocationError struct {
	Key DispatchKey
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Key, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Guard returns an Invoker that only forwards calls registered in table
// and checks argument counts against the descriptor. Variadic entries
// accept the fixed arity only; spreading is the caller's job.
func Guard(inv Invoker, table *DispatchTable) Invoker {
	return InvokerFunc(func(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
		if _, ok := table.Lookup(key); !ok {
			return nil, &InvocationError{Key: key, Err: ErrUnknownCallable}
		}
		n, err := key.Arity()
		if err != nil {
			return nil, &InvocationError{Key: key, Err: err}
		}
		if len(args) != n {
			return nil, &InvocationError{Key: key, Err: fmt.Errorf("got %d arguments, want %d", len(args), n)}
		}
		if err := ctx.Err(); err != nil {
			return nil, &InvocationError{Key: key, Err: err}
		}
		v, err := inv.Invoke(ctx, key, args)
		if err != nil {
			return nil, &InvocationError{Key: key, Err: err}
		}
		return v, nil
	})
}
