// Package options holds the catalog input flags shared by jbind commands.
package options

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/broady/jbind/jbindgen"
)

// DefaultConfigFile is read from the working directory when --config is
// not given.
const DefaultConfigFile = "jbind.yaml"

type Inputs struct {
	Sources  []string `arg:"" optional:"" help:"Java source files or directories, catalog manifests, or one .txtar bundle."`
	Config   string   `help:"YAML config file (default: ./jbind.yaml if present)." short:"c"`
	NoConfig bool     `help:"Ignore ./jbind.yaml."`
	Provider string   `help:"Catalog provider: source, manifest or archive (default: inferred from sources)."`
	Packages []string `help:"Package expressions to include, e.g. com.example.* or com.example.**." short:"p"`
	Classes  []string `help:"Classes to include, by binary name."`
	Set      []string `help:"Override a config field, e.g. --set promiseSuffix=P." short:"s"`
}

// Load builds the generator config: the config file first, then
// positional sources and flags, then --set overrides.
func (in *Inputs) Load(logger *slog.Logger) (*jbindgen.Config, error) {
	cfg := &jbindgen.Config{}
	path := in.Config
	if path == "" && !in.NoConfig {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", DefaultConfigFile, err)
		}
	}
	if path != "" {
		loaded, err := jbindgen.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded config", slog.String("path", path))
	}

	if len(in.Sources) > 0 {
		cfg.Sources = in.Sources
	}
	if in.Provider != "" {
		cfg.Provider = in.Provider
	}
	cfg.Packages = append(cfg.Packages, in.Packages...)
	cfg.Classes = append(cfg.Classes, in.Classes...)
	if err := jbindgen.ApplyOverrides(cfg, in.Set); err != nil {
		return nil, err
	}
	cfg.Logger = logger
	return cfg, nil
}
