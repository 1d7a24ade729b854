package gen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/broady/jbind/cmd/jbind/internal/options"
	"github.com/broady/jbind/jbindgen"
)

type Cmd struct {
	options.Inputs `embed:""`

	Out    string `help:"Output directory for generated files (default: outDir from the config file)." short:"o"`
	Strict bool   `help:"Fail when any diagnostic is reported."`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := c.Load(logger)
	if err != nil {
		return err
	}
	if c.Out != "" {
		cfg.OutDir = c.Out
	}
	if cfg.OutDir != "" {
		if cfg.OutDir, err = filepath.Abs(cfg.OutDir); err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
	}

	res, err := jbindgen.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		fmt.Printf("✓ Wrote %s (%d bytes)\n", filepath.Join(cfg.OutDir, f.Path), f.Size)
	}
	fmt.Printf("✓ Generated %d binding units, %s\n", res.Units, res.Summary())

	if c.Strict && len(res.Diagnostics) > 0 {
		return fmt.Errorf("strict mode: %s", res.Summary())
	}
	return nil
}
