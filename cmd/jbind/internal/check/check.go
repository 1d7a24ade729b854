package check

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/broady/jbind/cmd/jbind/internal/options"
	"github.com/broady/jbind/jbindgen"
)

type Cmd struct {
	options.Inputs `embed:""`

	Out    string `help:"Directory holding the generated files (default: outDir from the config file)." short:"o"`
	Strict bool   `help:"Also fail when any diagnostic is reported."`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := c.Load(logger)
	if err != nil {
		return err
	}
	if c.Out != "" {
		cfg.OutDir = c.Out
	}

	res, err := jbindgen.Check(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Loaded %d binding units, %s\n", res.Units, res.Summary())

	if len(res.Stale) > 0 {
		return fmt.Errorf("generated files are out of date: %s\n\nRun 'jbind gen' to regenerate them.", strings.Join(res.Stale, ", "))
	}
	fmt.Printf("✓ Generated files in %s are up to date\n", cfg.OutDir)

	if c.Strict && len(res.Diagnostics) > 0 {
		return fmt.Errorf("strict mode: %s", res.Summary())
	}
	return nil
}
