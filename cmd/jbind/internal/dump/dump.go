package dump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/jbind/cmd/jbind/internal/options"
	"github.com/broady/jbind/jbindgen"
	"github.com/broady/jbind/jbindgen/catalog"
)

type Cmd struct {
	options.Inputs `embed:""`

	JSON bool `help:"Print JSON instead of YAML."`

	// stdout is replaced in tests.
	stdout io.Writer `kong:"-"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := c.Load(logger)
	if err != nil {
		return err
	}
	snap, diags, err := jbindgen.LoadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	for _, d := range diags {
		logger.WarnContext(ctx, d.Message, slog.String("kind", string(d.Kind)), slog.String("location", d.Location))
	}

	m := catalog.NewManifest(snap)
	var data []byte
	if c.JSON {
		data, err = json.MarshalIndent(m, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = catalog.EncodeManifest(m)
	}
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	w := c.stdout
	if w == nil {
		w = os.Stdout
	}
	_, err = w.Write(data)
	return err
}
