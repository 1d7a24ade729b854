package jbindgen

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/gorilla/schema"

	"github.com/broady/jbind/jbindgen/catalog"
	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typescript"
)

var (
	validate      = validator.New(validator.WithRequiredStructEnabled())
	schemaDecoder = schema.NewDecoder()
)

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation only fails for an empty or reserved tag.
	_ = validate.RegisterValidation("pkgexpr", func(fl validator.FieldLevel) bool {
		_, err := catalog.ParsePackageExpr(fl.Field().String())
		return err == nil
	})
	schemaDecoder.SetAliasTag("yaml")
}

// Config holds the configuration for binding generation.
type Config struct {
	// OutDir is the directory where generated files are written.
	// Ignored when Sink is set.
	OutDir string `yaml:"outDir,omitempty"`

	// Provider selects how the class catalog is read.
	// "source" - Java source files and directories
	// "manifest" - YAML catalog manifests
	// "archive" - a txtar bundle of sources and manifests
	// Default: inferred from Sources (.txtar → archive, all .yaml/.yml →
	// manifest, otherwise source).
	Provider string `yaml:"provider,omitempty" validate:"omitempty,oneof=source manifest archive"`

	// Sources are the provider inputs.
	Sources []string `yaml:"sources,omitempty" validate:"required,min=1"`

	// Packages restrict the catalog to matching types and their
	// dependencies. "com.example.*" matches one package, "com.example.**"
	// also matches its subpackages.
	Packages []string `yaml:"packages,omitempty" validate:"dive,pkgexpr"`

	// Classes restrict the catalog to these binary class names and their
	// dependencies, in addition to Packages.
	Classes []string `yaml:"classes,omitempty" validate:"dive,required"`

	// DeclarationFile is the TypeScript output path within OutDir.
	// Default: "java.d.ts"
	DeclarationFile string `yaml:"declarationFile,omitempty" validate:"omitempty,endswith=.ts"`

	// ManifestFile is the dispatch manifest path within OutDir.
	// Default: "bindings.json"
	ManifestFile string `yaml:"manifestFile,omitempty"`

	// EmitManifest controls whether the dispatch manifest is written.
	// Default: true
	EmitManifest *bool `yaml:"emitManifest,omitempty"`

	// Method flavour suffixes. A nil suffix disables the flavour, an
	// empty one declares it under the bare method name. When all three
	// are nil only the sync flavour is declared, unsuffixed.
	SyncSuffix    *string `yaml:"syncSuffix,omitempty"`
	AsyncSuffix   *string `yaml:"asyncSuffix,omitempty"`
	PromiseSuffix *string `yaml:"promiseSuffix,omitempty"`

	// UnknownType is the rendering of java.lang.Object.
	// Default: "unknown"
	UnknownType string `yaml:"unknownType,omitempty" validate:"omitempty,oneof=unknown any"`

	// Frontmatter is content added after the header of the declaration file.
	Frontmatter string `yaml:"frontmatter,omitempty"`

	// PreserveComments copies Java doc comments into the declarations.
	// Default: true
	PreserveComments *bool `yaml:"preserveComments,omitempty"`

	// ImportMap emits the ImportMap interface and importClass declaration.
	// Default: true
	ImportMap *bool `yaml:"importMap,omitempty"`

	IndentStyle string `yaml:"indentStyle,omitempty" validate:"omitempty,oneof=space tab"`
	IndentSize  int    `yaml:"indentSize,omitempty" validate:"gte=0,lte=8"`
	LineEnding  string `yaml:"lineEnding,omitempty" validate:"omitempty,oneof=lf crlf"`

	// Sink receives the generated files instead of OutDir.
	Sink sink.OutputSink `yaml:"-" validate:"-"`

	// Logger receives progress and diagnostics. Default: slog.Default().
	Logger *slog.Logger `yaml:"-" validate:"-"`
}

// LoadConfig reads a YAML config file. Relative source paths are resolved
// against the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, s := range cfg.Sources {
		if !filepath.IsAbs(s) {
			cfg.Sources[i] = filepath.Join(dir, s)
		}
	}
	if cfg.OutDir != "" && !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(dir, cfg.OutDir)
	}
	return &cfg, nil
}

// ApplyOverrides sets config fields from "key=value" pairs, where key is
// the YAML field name. Repeating a list key sets several values.
func ApplyOverrides(cfg *Config, pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	values := url.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return &ConfigError{Field: p, Message: "override must have the form key=value"}
		}
		values.Add(k, v)
	}
	if err := schemaDecoder.Decode(cfg, values); err != nil {
		return overrideError(err)
	}
	return nil
}

// Validate checks the config after defaults are applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return configError(err)
	}
	if c.Sink == nil && c.OutDir == "" {
		return &ConfigError{Field: "outDir", Message: "required"}
	}
	return nil
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Provider == "" {
		result.Provider = inferProvider(result.Sources)
	}
	if result.DeclarationFile == "" {
		result.DeclarationFile = "java.d.ts"
	}
	if result.ManifestFile == "" {
		result.ManifestFile = "bindings.json"
	}
	if result.EmitManifest == nil {
		result.EmitManifest = ptr(true)
	}
	if result.SyncSuffix == nil && result.AsyncSuffix == nil && result.PromiseSuffix == nil {
		result.SyncSuffix = ptr("")
	}
	if result.UnknownType == "" {
		result.UnknownType = "unknown"
	}
	if result.PreserveComments == nil {
		result.PreserveComments = ptr(true)
	}
	if result.ImportMap == nil {
		result.ImportMap = ptr(true)
	}
	if result.IndentStyle == "" {
		result.IndentStyle = "space"
	}
	if result.IndentSize == 0 {
		result.IndentSize = 2
	}
	if result.LineEnding == "" {
		result.LineEnding = "lf"
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}

	return &result
}

func inferProvider(sources []string) string {
	manifests := 0
	for _, s := range sources {
		switch filepath.Ext(s) {
		case ".txtar":
			return "archive"
		case ".yaml", ".yml":
			manifests++
		}
	}
	if manifests > 0 && manifests == len(sources) {
		return "manifest"
	}
	return "source"
}

// typescriptConfig converts a defaulted Config to renderer settings.
func typescriptConfig(cfg *Config) typescript.Config {
	tc := typescript.Config{
		DeclarationFile: cfg.DeclarationFile,
		IndentStyle:     cfg.IndentStyle,
		IndentSize:      cfg.IndentSize,
		LineEnding:      cfg.LineEnding,
		TrailingNewline: true,
		EmitComments:    *cfg.PreserveComments,
		UnknownType:     cfg.UnknownType,
		Frontmatter:     cfg.Frontmatter,
		ImportMap:       *cfg.ImportMap,
		Async: typescript.AsyncOptions{
			SyncSuffix:    cfg.SyncSuffix,
			AsyncSuffix:   cfg.AsyncSuffix,
			PromiseSuffix: cfg.PromiseSuffix,
		},
	}
	if *cfg.EmitManifest {
		tc.ManifestFile = cfg.ManifestFile
	}
	return tc
}

func ptr[T any](v T) *T {
	return &v
}
