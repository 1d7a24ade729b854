package check

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/jbind/cmd/jbind/internal/options"
	"github.com/broady/jbind/internal/testfixtures"
	"github.com/broady/jbind/jbindgen"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	src := filepath.Join(dir, "featureset.yaml")
	if err := os.WriteFile(src, testfixtures.FeaturesetYAML(), 0o644); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := filepath.Join(dir, "out")
	if _, err := jbindgen.FromManifest(src).Logger(logger).ToDir(out); err != nil {
		t.Fatal(err)
	}

	cmd := &Cmd{Inputs: options.Inputs{Sources: []string{src}}, Out: out}
	if err := cmd.Run(context.Background(), logger); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if err := os.Remove(filepath.Join(out, "bindings.json")); err != nil {
		t.Fatal(err)
	}
	err := cmd.Run(context.Background(), logger)
	if err == nil || !strings.Contains(err.Error(), "bindings.json") {
		t.Errorf("Run() error = %v, want stale bindings.json", err)
	}
}
