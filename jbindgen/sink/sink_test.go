package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path   string
		errMsg string // empty means valid
	}{
		{"java.d.ts", ""},
		{"bindings/java.d.ts", ""},
		{"a/b/c/bindings.json", ""},
		{"", "empty"},
		{"/abs/java.d.ts", "absolute paths not allowed"},
		{"C:/java.d.ts", "absolute paths not allowed"},
		{"a/../java.d.ts", "path traversal not allowed"},
		{"..", "path traversal not allowed"},
		{"./java.d.ts", "not clean"},
		{"a//java.d.ts", "not clean"},
		{"a/", "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("ValidatePath(%q) error = %v", tt.path, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath(%q) error = %v, want %q", tt.path, err, tt.errMsg)
			}
		})
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	content := []byte("export {}")
	if err := s.WriteFile(ctx, "java.d.ts", content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	content[0] = 'X'
	if got := string(s.Get("java.d.ts")); got != "export {}" {
		t.Errorf("Get() = %q, want stored copy", got)
	}
	if got := s.Get("missing.ts"); got != nil {
		t.Errorf("Get(missing) = %q, want nil", got)
	}

	if err := s.WriteFile(ctx, "bindings.json", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Paths(), []string{"bindings.json", "java.d.ts"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}

	files := s.Files()
	files["java.d.ts"][0] = 'Y'
	if got := string(s.Get("java.d.ts")); got != "export {}" {
		t.Errorf("Files() leaked internal storage: %q", got)
	}

	if err := s.WriteFile(ctx, "../x", nil); err == nil {
		t.Error("WriteFile(../x) succeeded")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.WriteFile(cancelled, "late.ts", nil); err == nil {
		t.Error("WriteFile() with cancelled context succeeded")
	}

	s.Reset()
	if len(s.Paths()) != 0 {
		t.Errorf("Paths() after Reset = %v", s.Paths())
	}
}

func TestMemorySinkConcurrent(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.WriteFile(ctx, fmt.Sprintf("f%02d.ts", i), []byte("x")); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if got := len(s.Paths()); got != 20 {
		t.Errorf("stored %d files, want 20", got)
	}
}

func TestFilesystemSink(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "out/java.d.ts", []byte("one")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "out", "java.d.ts"))
	if err != nil || string(got) != "one" {
		t.Fatalf("ReadFile() = %q, %v", got, err)
	}
	info, err := os.Stat(filepath.Join(dir, "out", "java.d.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}

	if err := s.WriteFile(ctx, "out/java.d.ts", []byte("two")); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	got, _ = os.ReadFile(filepath.Join(dir, "out", "java.d.ts"))
	if string(got) != "two" {
		t.Errorf("after overwrite = %q, want two", got)
	}

	s.Overwrite = false
	if err := s.WriteFile(ctx, "out/java.d.ts", []byte("three")); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("WriteFile() without overwrite error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".jbind-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	if err := s.WriteFile(ctx, "/etc/passwd", nil); err == nil {
		t.Error("WriteFile(absolute) succeeded")
	}
}

func TestCompareSink(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	fsys := NewFilesystemSink(dir)
	if err := fsys.WriteFile(ctx, "java.d.ts", []byte("same")); err != nil {
		t.Fatal(err)
	}
	if err := fsys.WriteFile(ctx, "bindings.json", []byte("old")); err != nil {
		t.Fatal(err)
	}

	c := NewCompareSink(dir)
	for path, content := range map[string]string{
		"java.d.ts":     "same",
		"bindings.json": "new",
		"extra.d.ts":    "missing",
	} {
		if err := c.WriteFile(ctx, path, []byte(content)); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}
	if got, want := c.Stale(), []string{"bindings.json", "extra.d.ts"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Stale() = %v, want %v", got, want)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "bindings.json"))
	if string(got) != "old" {
		t.Errorf("CompareSink modified a file: %q", got)
	}
}
