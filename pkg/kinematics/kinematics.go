// Package kinematics fills pseudorapidity and transverse momentum
// histograms of selected particles over a set of LHE files and plots them.
package kinematics

import (
	"context"
	"fmt"
	"os"

	"go-hep.org/x/hep/hbook"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sbinet-staging/lhetools/pkg/lhe"
	"github.com/sbinet-staging/lhetools/pkg/selector"
)

const (
	defaultBins    = 50
	defaultWorkers = 2
	valueQueueSize = 1024
)

// Config holds the histogram binning and the particle selection.
type Config struct {
	Bins   int
	EtaMin float64
	EtaMax float64
	PtMax  float64

	// MinPt is the pT cut applied before filling.
	MinPt float64

	// Status is the LHE status code of the histogrammed particles.
	Status int32

	// Workers bounds the number of files decoded at once.
	Workers int

	// Selector is an optional extra selection.
	Selector *selector.Selector

	Logger *zap.Logger
}

// Histograms are the filled distributions of one run.
type Histograms struct {
	Eta *hbook.H1D
	Pt  *hbook.H1D

	Files     int
	Events    int
	Particles int
}

type value struct {
	eta, pt float64
}

type fileResult struct {
	events    int
	particles int
}

// Analyze decodes every file of paths concurrently and fills the histograms.
// The first failing file cancels the others and its error is returned.
func Analyze(ctx context.Context, paths []string, c Config) (*Histograms, error) {
	if c.Bins <= 0 {
		c.Bins = defaultBins
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.EtaMax <= c.EtaMin {
		return nil, fmt.Errorf("invalid eta range [%g, %g]", c.EtaMin, c.EtaMax)
	}
	if c.PtMax <= 0 {
		return nil, fmt.Errorf("invalid pT upper edge %g", c.PtMax)
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Histograms{
		Eta:   hbook.NewH1D(c.Bins, c.EtaMin, c.EtaMax),
		Pt:    hbook.NewH1D(c.Bins, 0, c.PtMax),
		Files: len(paths),
	}

	values := make(chan value, valueQueueSize)
	results := make(chan fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)

	// histograms are not safe for concurrent use: one collector fills them.
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for v := range values {
			h.Eta.Fill(v.eta, 1)
			h.Pt.Fill(v.pt, 1)
		}
	}()

	for _, path := range paths {
		g.Go(func() error {
			res, err := analyzeFile(gctx, path, &c, values, logger)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", path, err)
			}
			results <- res
			return nil
		})
	}

	err := g.Wait()
	close(values)
	close(results)
	<-collected

	if err != nil {
		return nil, err
	}

	for res := range results {
		h.Events += res.events
		h.Particles += res.particles
	}

	logger.Info("kinematics filled",
		zap.Int("files", h.Files),
		zap.Int("events", h.Events),
		zap.Int("particles", h.Particles),
	)

	return h, nil
}

func analyzeFile(ctx context.Context, path string, c *Config, out chan<- value, logger *zap.Logger) (fileResult, error) {
	var res fileResult

	r, err := lhe.Open(path)
	if err != nil {
		return res, err
	}
	defer r.Close()

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		event := r.Event()
		res.events++

		for i := range event.Particles {
			p := &event.Particles[i]
			if p.Status != c.Status {
				continue
			}

			p4 := p.P4()
			pt := p4.Pt()
			if pt == 0 || pt <= c.MinPt {
				continue
			}

			ok, err := c.Selector.Match(p)
			if err != nil {
				return res, err
			}
			if !ok {
				continue
			}

			select {
			case out <- value{eta: p4.Eta(), pt: pt}:
				res.particles++
			case <-ctx.Done():
				return res, ctx.Err()
			}
		}
	}
	if err := r.Err(); err != nil {
		return res, err
	}

	checkTags(path, res.events, logger)

	logger.Debug("file analyzed",
		zap.String("path", path),
		zap.Int("events", res.events),
		zap.Int("particles", res.particles),
	)
	return res, nil
}

// checkTags warns when the raw opening tags of path disagree with the
// number of decoded events.
func checkTags(path string, events int, logger *zap.Logger) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("could not re-open file to count event tags", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	tags, err := lhe.CountEventTags(f)
	if err != nil {
		logger.Warn("could not count event tags", zap.String("path", path), zap.Error(err))
		return
	}
	if tags != events {
		logger.Warn("raw event tags disagree with decoded events",
			zap.String("path", path),
			zap.Int("tags", tags),
			zap.Int("events", events),
		)
	}
}

// Normalize scales both histograms to unit area. Empty histograms are left
// untouched.
func (h *Histograms) Normalize() {
	for _, hist := range []*hbook.H1D{h.Eta, h.Pt} {
		if sumw := hist.SumW(); sumw != 0 {
			hist.Scale(1 / sumw)
		}
	}
}
