package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/broady/jbind/cmd/jbind/internal/check"
	"github.com/broady/jbind/cmd/jbind/internal/dump"
	"github.com/broady/jbind/cmd/jbind/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Log debug output." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate java.d.ts and bindings.json from a class catalog."`
	Check   check.Cmd  `cmd:"" help:"Verify that generated bindings are up to date."`
	Dump    dump.Cmd   `cmd:"" help:"Print the loaded class catalog as YAML or JSON."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("jbind"),
		kong.Description("Generate TypeScript declarations for Java classes."),
		kong.UsageOnError(),
	)

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx.BindTo(sigctx, (*context.Context)(nil))

	err := ctx.Run(newLogger(cli.Verbose))
	ctx.FatalIfErrorf(err)
}
