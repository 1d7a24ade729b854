// Package testfixtures provides catalogs used for testing the jbindgen packages.
package testfixtures

import (
	_ "embed"
	"testing"

	"github.com/broady/jbind/jbindgen/catalog"
)

//go:embed featureset.yaml
var featuresetYAML []byte

// Class names in the featureset catalog.
const (
	Named             = "com.redseal.featureset.Named"
	SomeInterface     = "com.redseal.featureset.SomeInterface"
	SomeAbstractClass = "com.redseal.featureset.SomeAbstractClass"
	SomeClass         = "com.redseal.featureset.SomeClass"
	Thing             = "com.redseal.featureset.Thing"
	AmbiguousThing    = "com.redseal.featureset.ambiguous.Thing"
	Nested            = "com.redseal.featureset.ambiguous.Thing$Nested"
	Overloading       = "com.redseal.featureset.overloading.Overloading"
	Bar               = "com.redseal.featureset.overloading.Overloading$Bar"
	Foo               = "com.redseal.featureset.overloading.Overloading$Foo"
)

// FeaturesetYAML returns the raw manifest.
func FeaturesetYAML() []byte {
	return featuresetYAML
}

// Featureset returns a fresh snapshot of the featureset catalog.
func Featureset(tb testing.TB) *catalog.Snapshot {
	tb.Helper()
	m, err := catalog.DecodeManifest(featuresetYAML)
	if err != nil {
		tb.Fatalf("decode featureset: %v", err)
	}
	s, err := m.Snapshot()
	if err != nil {
		tb.Fatalf("build featureset: %v", err)
	}
	return s
}

// Build returns a snapshot of the given types.
func Build(tb testing.TB, types ...catalog.TypeInfo) *catalog.Snapshot {
	tb.Helper()
	b := catalog.NewBuilder()
	for _, t := range types {
		b.Add(t)
	}
	s, err := b.Build()
	if err != nil {
		tb.Fatalf("build catalog: %v", err)
	}
	return s
}
