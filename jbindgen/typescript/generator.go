package typescript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/broady/jbind/jbindgen/binding"
	"github.com/broady/jbind/jbindgen/naming"
)

// Generator writes the declaration file and dispatch manifest for a
// binding result.
type Generator struct{}

// Name returns the generator's identifier.
func (g *Generator) Name() string {
	return "typescript"
}

// Generate renders res and writes the output files to opts.Sink.
func (g *Generator) Generate(ctx context.Context, res *binding.Result, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Sink == nil {
		return nil, errors.New("no output sink")
	}
	cfg := opts.Config
	if cfg.DeclarationFile == "" {
		cfg.DeclarationFile = "java.d.ts"
	}

	decl, err := Render(res, cfg)
	if err != nil {
		return nil, err
	}
	result := &GenerateResult{
		UnitsGenerated: len(res.Units),
		Diagnostics:    res.Diagnostics,
	}

	write := func(p string, content []byte) error {
		if err := opts.Sink.WriteFile(ctx, p, content); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
		result.Files = append(result.Files, OutputFile{Path: p, Size: int64(len(content))})
		return nil
	}
	if err := write(cfg.DeclarationFile, decl); err != nil {
		return nil, err
	}
	if cfg.ManifestFile != "" {
		data, err := NewManifest(res).Marshal()
		if err != nil {
			return nil, fmt.Errorf("encode manifest: %w", err)
		}
		if err := write(cfg.ManifestFile, finish(data, cfg)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Render returns the declaration file for res.
func Render(res *binding.Result, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	name := cfg.DeclarationFile
	if name == "" {
		name = "java.d.ts"
	}
	fmt.Fprintf(&buf, "// %s\n", path.Base(name))
	buf.WriteString("// Code generated by jbind. DO NOT EDIT.\n\n")
	if fm := strings.TrimSpace(cfg.Frontmatter); fm != "" {
		buf.WriteString(fm)
		buf.WriteString("\n\n")
	}
	if cfg.Async.AsyncSuffix != nil {
		fmt.Fprintf(&buf, "export type %s<T> = (err?: Error, result?: T) => void;\n\n", naming.CallbackType)
	}

	e := NewEmitter(cfg, res.Units)
	for _, u := range res.Units {
		if u.Enclosing != nil {
			continue
		}
		if err := e.EmitUnit(&buf, u, 0); err != nil {
			return nil, fmt.Errorf("emit %s: %w", u.Class, err)
		}
		buf.WriteString("\n")
	}
	if cfg.ImportMap {
		e.EmitImportMap(&buf, res.Units)
	}
	return finish(buf.Bytes(), cfg), nil
}

// finish applies the line ending and trailing newline settings.
func finish(data []byte, cfg Config) []byte {
	data = bytes.TrimRight(data, "\n")
	if cfg.TrailingNewline {
		data = append(data, '\n')
	}
	if cfg.LineEnding == "crlf" {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n"))
	}
	return data
}
