package goCred

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrEthical07/goCred/denylist"
)

type contextAdder interface {
	Add(ctx context.Context, words ...string) error
}

// ExtendDenylist adds words to the active denylist. It works with the built-in
// Memory and RedisStore checkers and any checker exposing
// Add(ctx, words...) error.
func (e *Engine) ExtendDenylist(ctx context.Context, words ...string) error {
	if err := e.ready(); err != nil {
		return err
	}

	switch d := e.denylist.(type) {
	case nil:
		return ErrDenylistReadOnly
	case *denylist.Memory:
		d.Add(words...)
	case contextAdder:
		if err := d.Add(ctx, words...); err != nil {
			e.metricInc(MetricDenylistUnavailable)
			return fmt.Errorf("%w: %v", ErrDenylistUnavailable, err)
		}
	default:
		return ErrDenylistReadOnly
	}

	e.logger.Info("denylist extended", append(logAttrs(ctx), slog.Int("words", len(words)))...)
	return nil
}
