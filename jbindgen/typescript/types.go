// Package typescript renders binding units as TypeScript declarations.
package typescript

import (
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/sink"
)

// GenerateOptions configures one generation run.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	Config Config
}

// GenerateResult describes the files a run produced.
type GenerateResult struct {
	Files []OutputFile

	// UnitsGenerated is the number of binding units declared.
	UnitsGenerated int

	// Diagnostics carried over from binding, in report order.
	Diagnostics []ir.Diagnostic
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// Config controls the rendered output.
type Config struct {
	// DeclarationFile is the path of the declaration file (default "java.d.ts").
	DeclarationFile string

	// ManifestFile is the path of the JSON dispatch manifest. Empty disables it.
	ManifestFile string

	// Formatting
	IndentStyle     string // "space" or "tab"
	IndentSize      int    // spaces per level when IndentStyle is "space"
	LineEnding      string // "lf" or "crlf"
	TrailingNewline bool

	// EmitComments includes documentation comments.
	EmitComments bool

	// UnknownType is the rendering of java.lang.Object: "unknown" or "any".
	UnknownType string

	// Frontmatter is copied verbatim after the file header.
	Frontmatter string

	// ImportMap emits the ImportMap interface and importClass declaration.
	ImportMap bool

	Async AsyncOptions
}

// AsyncOptions selects the call flavours declared for each method.
// A nil suffix disables the flavour; an empty one uses the bare name.
type AsyncOptions struct {
	// SyncSuffix names the blocking form: name(args): R.
	SyncSuffix *string

	// AsyncSuffix names the callback form: name(args, cb: Callback<R>): void.
	AsyncSuffix *string

	// PromiseSuffix names the promise form: name(args): Promise<R>.
	PromiseSuffix *string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	sync := ""
	return Config{
		DeclarationFile: "java.d.ts",
		ManifestFile:    "bindings.json",
		IndentStyle:     "space",
		IndentSize:      2,
		LineEnding:      "lf",
		TrailingNewline: true,
		EmitComments:    true,
		UnknownType:     "unknown",
		ImportMap:       true,
		Async:           AsyncOptions{SyncSuffix: &sync},
	}
}
