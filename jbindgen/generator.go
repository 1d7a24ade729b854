// Package jbindgen generates TypeScript bindings for a Java class catalog.
//
// Generation runs in one batch: a provider reads the catalog, the binding
// emitter resolves types, overloads and identifiers, and the TypeScript
// generator writes java.d.ts and the bindings.json dispatch manifest.
// Problems that do not stop generation are returned as diagnostics.
package jbindgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/broady/jbind/jbindgen/binding"
	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/provider"
	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typescript"
)

// Result describes one generation run.
type Result struct {
	Files []typescript.OutputFile

	// Units is the number of binding units declared.
	Units int

	// Diagnostics from every phase, in report order: provider, filter,
	// then binding.
	Diagnostics []ir.Diagnostic
}

// Summary returns a one-line count of the diagnostics.
func (r *Result) Summary() string {
	var d ir.Diagnostics
	for _, x := range r.Diagnostics {
		d.Add(x.Kind, x.Location, x.Message)
	}
	return d.Summary()
}

// Generate reads the catalog and writes the bindings.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	start := time.Now()

	snap, diags, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "binding catalog", slog.Int("types", snap.Len()))
	res, err := binding.Emit(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to bind catalog: %w", err)
	}
	diags = append(diags, res.Diagnostics...)

	out := cfg.Sink
	if out == nil {
		out = sink.NewFilesystemSink(cfg.OutDir)
	}
	gen := &typescript.Generator{}
	tsResult, err := gen.Generate(ctx, res, typescript.GenerateOptions{
		Sink:   out,
		Config: typescriptConfig(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TypeScript: %w", err)
	}

	result := &Result{
		Files:       tsResult.Files,
		Units:       tsResult.UnitsGenerated,
		Diagnostics: diags,
	}
	for _, d := range diags {
		log.WarnContext(ctx, d.Message,
			slog.String("kind", string(d.Kind)),
			slog.String("location", d.Location),
		)
	}
	log.InfoContext(ctx, "generated bindings",
		slog.Int("units", result.Units),
		slog.Int("files", len(result.Files)),
		slog.String("diagnostics", result.Summary()),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// CheckResult describes a check run.
type CheckResult struct {
	*Result

	// Stale lists generated paths that are missing from OutDir or differ
	// from what generation would write.
	Stale []string
}

// Check runs generation against OutDir without writing and reports
// stale files.
func Check(ctx context.Context, cfg *Config) (*CheckResult, error) {
	if cfg.OutDir == "" {
		return nil, &ConfigError{Field: "outDir", Message: "required"}
	}
	c := *cfg
	cmp := sink.NewCompareSink(cfg.OutDir)
	c.Sink = cmp
	res, err := Generate(ctx, &c)
	if err != nil {
		return nil, err
	}
	return &CheckResult{Result: res, Stale: cmp.Stale()}, nil
}

// LoadCatalog reads and filters the catalog without binding it.
func LoadCatalog(ctx context.Context, cfg *Config) (*catalog.Snapshot, []ir.Diagnostic, error) {
	cfg = applyConfigDefaults(cfg)
	if err := validate.StructPartial(cfg, "Provider", "Sources", "Packages", "Classes"); err != nil {
		return nil, nil, configError(err)
	}
	return loadCatalog(ctx, cfg)
}

func loadCatalog(ctx context.Context, cfg *Config) (*catalog.Snapshot, []ir.Diagnostic, error) {
	log := cfg.Logger
	log.DebugContext(ctx, "loading catalog",
		slog.String("provider", cfg.Provider),
		slog.Any("sources", cfg.Sources),
	)

	var (
		res *provider.Result
		err error
	)
	switch cfg.Provider {
	case "source":
		p := &provider.SourceProvider{}
		res, err = p.BuildCatalog(ctx, provider.SourceInputOptions{Paths: cfg.Sources})
	case "manifest":
		p := &provider.ManifestProvider{}
		res, err = p.BuildCatalog(ctx, provider.ManifestInputOptions{Paths: cfg.Sources})
	case "archive":
		if len(cfg.Sources) != 1 {
			return nil, nil, fmt.Errorf("archive provider takes exactly one source, got %d", len(cfg.Sources))
		}
		p := &provider.ArchiveProvider{}
		res, err = p.BuildCatalog(ctx, provider.ArchiveInputOptions{Path: cfg.Sources[0]})
	default:
		return nil, nil, fmt.Errorf("unknown provider: %q (expected \"source\", \"manifest\" or \"archive\")", cfg.Provider)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	diags := res.Diagnostics
	snap, filterDiags, err := filterCatalog(res.Catalog, cfg)
	if err != nil {
		return nil, nil, err
	}
	diags = append(diags, filterDiags...)
	log.DebugContext(ctx, "loaded catalog", slog.Int("types", snap.Len()))
	return snap, diags, nil
}

// filterCatalog applies the Packages and Classes selectors.
func filterCatalog(s *catalog.Snapshot, cfg *Config) (*catalog.Snapshot, []ir.Diagnostic, error) {
	exprs := make([]catalog.PackageExpr, 0, len(cfg.Packages))
	for _, p := range cfg.Packages {
		e, err := catalog.ParsePackageExpr(p)
		if err != nil {
			return nil, nil, &ConfigError{Field: "packages", Message: err.Error()}
		}
		exprs = append(exprs, e)
	}
	filtered, fr := catalog.Filter(s, exprs, cfg.Classes)

	var diags ir.Diagnostics
	for _, e := range fr.UnusedExprs {
		diags.Addf(ir.CodeUnusedPackage, e, "package expression matched no types")
	}
	for _, c := range fr.UnknownClasses {
		diags.Addf(ir.CodeUnknownClass, c, "class is not in the catalog")
	}
	return filtered, diags.All(), nil
}
