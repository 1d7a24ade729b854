package binding

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/broady/jbind/internal/testfixtures"
)

var setKey = DispatchKey{Kind: EntryMethod, Class: testfixtures.Thing, Member: "set", Descriptor: "(I)V"}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Invoker) Invoker {
			return InvokerFunc(func(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
				order = append(order, name)
				return next.Invoke(ctx, key, args)
			})
		}
	}
	inner := InvokerFunc(func(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
		order = append(order, "inner")
		return nil, nil
	})

	inv := Chain(inner, tag("a"), tag("b"))
	if _, err := inv.Invoke(context.Background(), setKey, []Value{1}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(order, ","); got != "a,b,inner" {
		t.Errorf("call order = %s, want a,b,inner", got)
	}

	if Chain(inner) == nil {
		t.Error("Chain() with no middleware returned nil")
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	testErr := errors.New("boom")

	inv := Chain(InvokerFunc(func(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, testErr
		}
		return args[0], nil
	}), Logging(logger))

	v, err := inv.Invoke(context.Background(), setKey, []Value{7})
	if err != nil || v != 7 {
		t.Errorf("Invoke() = %v, %v, want 7", v, err)
	}
	out := buf.String()
	for _, want := range []string{"invoke started", "invoke completed", setKey.String()} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}

	buf.Reset()
	if _, err := inv.Invoke(context.Background(), setKey, nil); !errors.Is(err, testErr) {
		t.Errorf("Invoke() error = %v, want %v", err, testErr)
	}
	out = buf.String()
	if !strings.Contains(out, "invoke failed") || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("log output = %s, want a failure entry", out)
	}
}
