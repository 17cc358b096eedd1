// Package lhe reads Les Houches Event files into plain Go values and locates
// events in the raw text of a file.
package lhe

import (
	"go-hep.org/x/hep/fmom"
	"go-hep.org/x/hep/lhef"
)

// Particle is one entry of an event record.
type Particle struct {
	PID      int64    `json:"pid" yaml:"pid"`
	Status   int32    `json:"status" yaml:"status"`
	Mothers  [2]int32 `json:"mothers" yaml:"mothers,flow"`
	Colors   [2]int32 `json:"colors" yaml:"colors,flow"`
	Px       float64  `json:"px" yaml:"px"`
	Py       float64  `json:"py" yaml:"py"`
	Pz       float64  `json:"pz" yaml:"pz"`
	E        float64  `json:"e" yaml:"e"`
	M        float64  `json:"m" yaml:"m"`
	Lifetime float64  `json:"lifetime" yaml:"lifetime"`
	Spin     float64  `json:"spin" yaml:"spin"`
}

// P4 returns the four-momentum of the particle.
func (p *Particle) P4() fmom.PxPyPzE {
	return fmom.NewPxPyPzE(p.Px, p.Py, p.Pz, p.E)
}

// Event is a decoded <event> block.
type Event struct {
	ProcessID int32      `json:"process_id" yaml:"process_id"`
	Weight    float64    `json:"weight" yaml:"weight"`
	Scale     float64    `json:"scale" yaml:"scale"`
	AlphaQED  float64    `json:"alpha_qed" yaml:"alpha_qed"`
	AlphaQCD  float64    `json:"alpha_qcd" yaml:"alpha_qcd"`
	Particles []Particle `json:"particles" yaml:"particles"`
}

// Run holds the <init> block of a file.
type Run struct {
	BeamPIDs      [2]int64   `json:"beam_pids" yaml:"beam_pids,flow"`
	BeamEnergies  [2]float64 `json:"beam_energies" yaml:"beam_energies,flow"`
	WeightingMode int32      `json:"weighting_mode" yaml:"weighting_mode"`
	CrossSections []float64  `json:"cross_sections" yaml:"cross_sections,flow"`
	CrossErrors   []float64  `json:"cross_errors" yaml:"cross_errors,flow"`
	ProcessIDs    []int32    `json:"process_ids" yaml:"process_ids,flow"`
}

// newEvent copies a decoder record. The decoder reuses its HEPEUP between
// calls, so nothing from evt may be retained.
func newEvent(evt *lhef.HEPEUP) *Event {
	n := min(int(evt.NUP), len(evt.IDUP), len(evt.ISTUP))
	out := &Event{
		ProcessID: evt.IDPRUP,
		Weight:    evt.XWGTUP,
		Scale:     evt.SCALUP,
		AlphaQED:  evt.AQEDUP,
		AlphaQCD:  evt.AQCDUP,
		Particles: make([]Particle, 0, n),
	}

	for i := 0; i < n; i++ {
		p := Particle{
			PID:    evt.IDUP[i],
			Status: evt.ISTUP[i],
		}
		if i < len(evt.MOTHUP) {
			p.Mothers = evt.MOTHUP[i]
		}
		if i < len(evt.ICOLUP) {
			p.Colors = evt.ICOLUP[i]
		}
		if i < len(evt.PUP) {
			pup := evt.PUP[i]
			p.Px, p.Py, p.Pz, p.E, p.M = pup[0], pup[1], pup[2], pup[3], pup[4]
		}
		if i < len(evt.VTIMUP) {
			p.Lifetime = evt.VTIMUP[i]
		}
		if i < len(evt.SPINUP) {
			p.Spin = evt.SPINUP[i]
		}
		out.Particles = append(out.Particles, p)
	}

	return out
}

func newRun(r *lhef.HEPRUP) Run {
	run := Run{
		BeamPIDs:      r.IDBMUP,
		BeamEnergies:  r.EBMUP,
		WeightingMode: r.IDWTUP,
	}
	run.CrossSections = append(run.CrossSections, r.XSECUP...)
	run.CrossErrors = append(run.CrossErrors, r.XERRUP...)
	run.ProcessIDs = append(run.ProcessIDs, r.LPRUP...)
	return run
}
