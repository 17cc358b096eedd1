// Package printer renders a located event for the terminal or as structured
// YAML or JSON documents.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sbinet-staging/lhetools/pkg/lhe"
)

// Record is one event ready to print.
type Record struct {
	// Number is the 1-based event number that was requested.
	Number int

	// Line is the 1-based line of the event's opening tag, or lhe.NoLine.
	Line int

	// Selection is the expression used to filter Particles, if any.
	Selection string

	Event *lhe.Event

	// Particles are the listed particles, a subset of Event.Particles when
	// Selection is set.
	Particles []lhe.Particle
}

// Total is the number of particles of the event before selection.
func (r *Record) Total() int {
	if r.Event == nil {
		return len(r.Particles)
	}
	return len(r.Event.Particles)
}

// Printer writes records in a single format.
type Printer struct {
	out    io.Writer
	format Format
}

func New(out io.Writer, format Format) *Printer {
	if format == "" {
		format = FormatText
	}
	return &Printer{out: out, format: format}
}

// Event prints rec.
func (p *Printer) Event(rec *Record) error {
	switch p.format {
	case FormatYAML:
		return p.printYAML(rec)
	case FormatJSON:
		return p.printJSON(rec)
	default:
		return p.text(rec)
	}
}

// NotFound prints the message for an event number past the end of the file.
func (p *Printer) NotFound(n int) error {
	switch p.format {
	case FormatYAML:
		return p.yamlDoc(map[string]any{"number": n, "found": false})
	case FormatJSON:
		return p.jsonDoc(map[string]any{"number": n, "found": false})
	}
	_, err := fmt.Fprintf(p.out, "Event %d not found. Total events may be fewer than %d.\n", n, n)
	return err
}

// Error prints err the way every unexpected failure is reported.
func (p *Printer) Error(err error) error {
	_, werr := fmt.Fprintf(p.out, "An error occurred: %v\n", err)
	return werr
}

func (p *Printer) text(rec *Record) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Details of Event %d (Line %d):\n\n", rec.Number, rec.Line)
	fmt.Fprintf(&b, "Number of particles: %d\n\n", rec.Total())
	if rec.Selection != "" {
		fmt.Fprintf(&b, "Selected particles: %d (%s)\n\n", len(rec.Particles), rec.Selection)
	}
	b.WriteString("Particles:\n")
	for _, part := range rec.Particles {
		fmt.Fprintf(&b, "  PID: %d, Px: %s, Py: %s, Pz: %s, E: %s, Status: %d\n",
			part.PID,
			FormatFloat(part.Px),
			FormatFloat(part.Py),
			FormatFloat(part.Pz),
			FormatFloat(part.E),
			part.Status,
		)
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

// structured is the document layout of the yaml and json formats.
type structured struct {
	Number    int            `json:"number" yaml:"number"`
	Found     bool           `json:"found" yaml:"found"`
	Line      int            `json:"line" yaml:"line"`
	Total     int            `json:"total_particles" yaml:"total_particles"`
	Selection string         `json:"selection,omitempty" yaml:"selection,omitempty"`
	ProcessID int32          `json:"process_id" yaml:"process_id"`
	Weight    float64        `json:"weight" yaml:"weight"`
	Scale     float64        `json:"scale" yaml:"scale"`
	AlphaQED  float64        `json:"alpha_qed" yaml:"alpha_qed"`
	AlphaQCD  float64        `json:"alpha_qcd" yaml:"alpha_qcd"`
	Particles []lhe.Particle `json:"particles" yaml:"particles"`
}

func newStructured(rec *Record) structured {
	doc := structured{
		Number:    rec.Number,
		Found:     true,
		Line:      rec.Line,
		Total:     rec.Total(),
		Selection: rec.Selection,
		Particles: rec.Particles,
	}
	if doc.Particles == nil {
		doc.Particles = []lhe.Particle{}
	}
	if evt := rec.Event; evt != nil {
		doc.ProcessID = evt.ProcessID
		doc.Weight = evt.Weight
		doc.Scale = evt.Scale
		doc.AlphaQED = evt.AlphaQED
		doc.AlphaQCD = evt.AlphaQCD
	}
	return doc
}

func (p *Printer) printYAML(rec *Record) error {
	return p.yamlDoc(newStructured(rec))
}

func (p *Printer) printJSON(rec *Record) error {
	return p.jsonDoc(newStructured(rec))
}

func (p *Printer) yamlDoc(doc any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func (p *Printer) jsonDoc(doc any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
