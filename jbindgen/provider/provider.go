// Package provider builds class catalogs from catalog inputs: Java source
// files, YAML catalog manifests and txtar bundles holding either.
package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

// Result is a loaded catalog and the warnings collected while reading it.
type Result struct {
	Catalog *catalog.Snapshot

	// Diagnostics are provider warnings in report order. Declarations a
	// provider could not read are left out of the catalog.
	Diagnostics []ir.Diagnostic
}

// ManifestProvider loads YAML catalog manifests.
type ManifestProvider struct{}

// ManifestInputOptions configures manifest loading.
type ManifestInputOptions struct {
	// Paths are the manifest files to read. Types from all files are
	// merged; a type declared twice is an error.
	Paths []string
}

// BuildCatalog reads and merges the manifests.
func (p *ManifestProvider) BuildCatalog(ctx context.Context, opts ManifestInputOptions) (*Result, error) {
	if len(opts.Paths) == 0 {
		return nil, fmt.Errorf("no manifests specified")
	}
	b := catalog.NewBuilder()
	for _, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		if err := addManifest(b, path, data); err != nil {
			return nil, err
		}
	}
	snap, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Result{Catalog: snap}, nil
}

func addManifest(b *catalog.Builder, name string, data []byte) error {
	m, err := catalog.DecodeManifest(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := m.AddTo(b); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
