// Package lookup finds one event of an LHE file by its 1-based number and
// prints it together with the line its record opens on.
package lookup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sbinet-staging/lhetools/pkg/lhe"
	"github.com/sbinet-staging/lhetools/pkg/printer"
	"github.com/sbinet-staging/lhetools/pkg/selector"
)

// Config is the configuration of a Finder.
type Config struct {
	// Printer renders found and missing events. Required.
	Printer *printer.Printer

	// Selector filters the listed particles. Optional.
	Selector *selector.Selector

	// Logger is the provided zap logger. Optional.
	Logger *zap.Logger
}

// Finder looks events up and prints them.
type Finder struct {
	printer  *printer.Printer
	selector *selector.Selector
	logger   *zap.Logger
}

func New(c *Config) *Finder {
	l := c.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Finder{
		printer:  c.Printer,
		selector: c.Selector,
		logger:   l,
	}
}

// Show prints event n of the file at path, or the not-found message when the
// file holds fewer than n events. Every other failure is returned.
func (f *Finder) Show(ctx context.Context, path string, n int) error {
	f.logger.Debug("looking up event",
		zap.String("path", path),
		zap.Int("event", n),
	)

	evt, found, err := lhe.ReadEvent(ctx, path, n)
	if err != nil {
		return err
	}
	if !found {
		f.logger.Debug("event not found", zap.Int("event", n))
		return f.printer.NotFound(n)
	}

	line, err := lhe.LocateEventLineInFile(path, n)
	if err != nil {
		return fmt.Errorf("locating event %d: %w", n, err)
	}
	if line == lhe.NoLine {
		f.logger.Warn("decoded event has no matching opening tag in the raw file",
			zap.String("path", path),
			zap.Int("event", n),
		)
	}

	particles, err := f.selector.Filter(evt.Particles)
	if err != nil {
		return err
	}

	f.logger.Debug("event located",
		zap.Int("event", n),
		zap.Int("line", line),
		zap.Int("particles", len(evt.Particles)),
		zap.Int("selected", len(particles)),
	)

	return f.printer.Event(&printer.Record{
		Number:    n,
		Line:      line,
		Selection: f.selector.String(),
		Event:     evt,
		Particles: particles,
	})
}
