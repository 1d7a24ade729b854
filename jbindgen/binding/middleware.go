package binding

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps an Invoker, for example to log or meter calls.
type Middleware func(next Invoker) Invoker

// Chain applies middleware to inv. The first middleware is the outermost
// and sees each call first.
func Chain(inv Invoker, mw ...Middleware) Invoker {
	for i := len(mw) - 1; i >= 0; i-- {
		inv = mw[i](inv)
	}
	return inv
}

// Logging returns middleware that logs each call with its duration and
// error status.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Invoker) Invoker {
		return InvokerFunc(func(ctx context.Context, key DispatchKey, args []Value) (Value, error) {
			start := time.Now()
			logger.DebugContext(ctx, "invoke started",
				slog.String("callable", key.String()),
				slog.Int("args", len(args)),
			)

			v, err := next.Invoke(ctx, key, args)
			duration := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "invoke failed",
					slog.String("callable", key.String()),
					slog.Duration("duration", duration),
					slog.Any("error", err),
				)
			} else {
				logger.InfoContext(ctx, "invoke completed",
					slog.String("callable", key.String()),
					slog.Duration("duration", duration),
				)
			}
			return v, err
		})
	}
}
