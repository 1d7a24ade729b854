package provider

import (
	"context"
	"fmt"
	"path"

	"golang.org/x/tools/txtar"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
)

// ArchiveProvider loads a txtar bundle of Java sources and catalog
// manifests. Sources may refer to types declared in the manifests.
type ArchiveProvider struct{}

// ArchiveInputOptions configures archive loading.
type ArchiveInputOptions struct {
	// Path is the archive file. Ignored when Data is set.
	Path string

	// Data is the archive contents.
	Data []byte
}

// BuildCatalog reads the archive. Members ending in .java are parsed as
// sources and members ending in .yaml or .yml as manifests; anything else
// is reported and ignored.
func (p *ArchiveProvider) BuildCatalog(ctx context.Context, opts ArchiveInputOptions) (*Result, error) {
	var ar *txtar.Archive
	switch {
	case opts.Data != nil:
		ar = txtar.Parse(opts.Data)
	case opts.Path != "":
		var err error
		ar, err = txtar.ParseFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
	default:
		return nil, fmt.Errorf("no archive specified")
	}
	return buildArchive(ctx, ar)
}

func buildArchive(ctx context.Context, ar *txtar.Archive) (*Result, error) {
	var (
		diags     ir.Diagnostics
		sources   []SourceFile
		manifests []*catalog.Manifest
		extern    []string
	)
	for _, f := range ar.Files {
		switch path.Ext(f.Name) {
		case ".java":
			sources = append(sources, SourceFile{Name: f.Name, Data: f.Data})
		case ".yaml", ".yml":
			m, err := catalog.DecodeManifest(f.Data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
			manifests = append(manifests, m)
			for _, t := range m.Types {
				extern = append(extern, t.Name)
			}
		default:
			diags.Addf(ir.CodeProviderWarning, f.Name, "ignoring archive member with unknown extension")
		}
	}
	if len(sources) == 0 && len(manifests) == 0 {
		return nil, fmt.Errorf("archive has no .java or manifest members")
	}

	b := catalog.NewBuilder()
	for _, m := range manifests {
		if err := m.AddTo(b); err != nil {
			return nil, err
		}
	}
	if len(sources) > 0 {
		sb := newSourceBuilder(extern)
		defer sb.close()
		if err := sb.parse(ctx, sources); err != nil {
			return nil, err
		}
		sb.addTo(b)
		for _, d := range sb.diags.All() {
			diags.Add(d.Kind, d.Location, d.Message)
		}
	}
	snap, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Result{Catalog: snap, Diagnostics: diags.All()}, nil
}
