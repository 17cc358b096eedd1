package kinematics

import (
	"fmt"
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// Variable selects the distribution to plot.
type Variable string

const (
	VariableEta Variable = "eta"
	VariablePt  Variable = "pt"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// Plot draws the distribution of v and saves it to path. The image format
// follows the file extension.
func (h *Histograms) Plot(v Variable, path string) error {
	p := hplot.New()
	p.Y.Label.Text = "count"

	var hist *hbook.H1D
	switch v {
	case VariableEta:
		p.X.Label.Text = "eta"
		hist = h.Eta
	case VariablePt:
		p.X.Label.Text = "pT [GeV]"
		hist = h.Pt
	default:
		return fmt.Errorf("unknown variable %q", v)
	}

	hh := hplot.NewH1D(hist)
	hh.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(hh)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
