package jbindgen

import (
	"context"
	"log/slog"

	"github.com/broady/jbind/jbindgen/sink"
)

// Generator provides a fluent API for binding generation.
// Create with FromSources, FromManifest or FromArchive and configure with
// method chaining.
//
// Example:
//
//	jbindgen.FromSources("./src/main/java").
//	    Packages("com.example.**").
//	    WithPromises("P").
//	    ToDir("./types")
type Generator struct {
	ctx context.Context
	cfg Config
}

// FromSources creates a Generator that parses Java source files and
// directories.
func FromSources(paths ...string) *Generator {
	return &Generator{cfg: Config{Provider: "source", Sources: paths}}
}

// FromManifest creates a Generator that reads YAML catalog manifests.
func FromManifest(paths ...string) *Generator {
	return &Generator{cfg: Config{Provider: "manifest", Sources: paths}}
}

// FromArchive creates a Generator that reads a txtar bundle.
func FromArchive(path string) *Generator {
	return &Generator{cfg: Config{Provider: "archive", Sources: []string{path}}}
}

// FromConfig creates a Generator starting from a copy of cfg.
func FromConfig(cfg *Config) *Generator {
	return &Generator{cfg: *cfg}
}

// WithContext sets the context for provider parsing and sink writes.
func (g *Generator) WithContext(ctx context.Context) *Generator {
	g.ctx = ctx
	return g
}

// Packages restricts the catalog to package expressions such as
// "com.example.*" or "com.example.**".
func (g *Generator) Packages(exprs ...string) *Generator {
	g.cfg.Packages = append(g.cfg.Packages, exprs...)
	return g
}

// Classes restricts the catalog to the named classes.
func (g *Generator) Classes(names ...string) *Generator {
	g.cfg.Classes = append(g.cfg.Classes, names...)
	return g
}

// WithSync declares the blocking form of each method with the suffix.
func (g *Generator) WithSync(suffix string) *Generator {
	g.cfg.SyncSuffix = &suffix
	return g
}

// WithAsync declares the callback form of each method with the suffix.
func (g *Generator) WithAsync(suffix string) *Generator {
	g.cfg.AsyncSuffix = &suffix
	return g
}

// WithPromises declares the promise form of each method with the suffix.
func (g *Generator) WithPromises(suffix string) *Generator {
	g.cfg.PromiseSuffix = &suffix
	return g
}

// UnknownType sets the rendering of java.lang.Object: "unknown" or "any".
func (g *Generator) UnknownType(t string) *Generator {
	g.cfg.UnknownType = t
	return g
}

// Frontmatter adds content to the top of the declaration file.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// DeclarationFile sets the declaration file name.
func (g *Generator) DeclarationFile(name string) *Generator {
	g.cfg.DeclarationFile = name
	return g
}

// WithoutManifest disables bindings.json output.
func (g *Generator) WithoutManifest() *Generator {
	g.cfg.EmitManifest = ptr(false)
	return g
}

// WithoutImportMap disables the ImportMap interface.
func (g *Generator) WithoutImportMap() *Generator {
	g.cfg.ImportMap = ptr(false)
	return g
}

// WithoutComments drops Java doc comments from the output.
func (g *Generator) WithoutComments() *Generator {
	g.cfg.PreserveComments = ptr(false)
	return g
}

// Logger sets the logger for progress and diagnostics.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// ToDir generates files to the specified directory.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	g.cfg.OutDir = dir
	g.cfg.Sink = nil
	return Generate(g.context(), &g.cfg)
}

// ToSink generates files into s, for example a sink.MemorySink.
func (g *Generator) ToSink(s sink.OutputSink) (*Result, error) {
	g.cfg.Sink = s
	return Generate(g.context(), &g.cfg)
}

func (g *Generator) context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}
	return g.ctx
}
