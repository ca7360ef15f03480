package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Ticks stops the runner after N steps (0 = run until ctx is done or ErrStop).
	Ticks  uint64
	Width  int
	Height int
	// Snapshot, when set, is a PNG path the framebuffer is written to on exit.
	Snapshot string
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(cfg.Width, cfg.Height)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	err := func() error {
		var tick uint64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				if step != nil {
					if err := step(); err != nil {
						if errors.Is(err, ErrStop) {
							return nil
						}
						return err
					}
				}
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return nil
				}
			}
		}
	}()
	if cfg.Snapshot != "" && (err == nil || errors.Is(err, context.Canceled)) {
		if serr := SavePNG(cfg.Snapshot, h.fb); serr != nil {
			return serr
		}
	}
	return err
}
