// Package project provides routing problem file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
	"github.com/ShiboSoftwareDev/hypergraph/internal/solver"
)

// File represents a routing problem file (.hgproj): a serialized
// hypergraph, the connections to route, and optional solver tuning.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// Variant selects the routing policy: "jumper" or "via".
	Variant string `json:"variant"`

	Graph       mesh.SerializedGraph        `json:"graph"`
	Connections []mesh.SerializedConnection `json:"connections"`

	// Knob overrides; zero values fall back to the variant defaults.
	Knobs solver.Knobs `json:"knobs,omitempty"`

	// Iteration budget overrides; zero values fall back to the solver
	// defaults.
	BaseMaxIterations                    int `json:"base_max_iterations,omitempty"`
	AdditionalMaxIterationsPerConnection int `json:"additional_max_iterations_per_connection,omitempty"`
	AdditionalMaxIterationsPerCrossing   int `json:"additional_max_iterations_per_crossing,omitempty"`

	RippingDisabled bool `json:"ripping_disabled,omitempty"`
}

// New creates a new problem file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Variant:  "jumper",
	}
}

// Load loads a problem from a .hgproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("cannot parse problem file: %w", err)
	}

	return &proj, nil
}

// Save saves the problem to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize problem file: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// SolverOptions translates the file's tuning into solver options.
func (p *File) SolverOptions() (solver.Options, error) {
	opts := solver.DefaultOptions()

	switch p.Variant {
	case "", "jumper":
		knobs := DefaultedKnobs(p.Knobs, solver.DefaultJumperKnobs())
		opts.Variant = solver.NewJumperVariant(knobs)
	case "via":
		knobs := DefaultedKnobs(p.Knobs, solver.DefaultViaKnobs())
		opts.Variant = solver.NewViaVariant(knobs)
	default:
		return solver.Options{}, fmt.Errorf("unknown variant %q", p.Variant)
	}

	if p.BaseMaxIterations > 0 {
		opts.BaseMaxIterations = p.BaseMaxIterations
	}
	if p.AdditionalMaxIterationsPerConnection > 0 {
		opts.AdditionalMaxIterationsPerConnection = p.AdditionalMaxIterationsPerConnection
	}
	if p.AdditionalMaxIterationsPerCrossing > 0 {
		opts.AdditionalMaxIterationsPerCrossing = p.AdditionalMaxIterationsPerCrossing
	}
	opts.RippingEnabled = !p.RippingDisabled

	return opts, nil
}

// DefaultedKnobs overlays explicit knob values onto a variant's defaults.
func DefaultedKnobs(overrides, defaults solver.Knobs) solver.Knobs {
	out := defaults
	if overrides.GreedyMultiplier != 0 {
		out.GreedyMultiplier = overrides.GreedyMultiplier
	}
	if overrides.RipCost != 0 {
		out.RipCost = overrides.RipCost
	}
	if overrides.CrossingPenalty != 0 {
		out.CrossingPenalty = overrides.CrossingPenalty
	}
	if overrides.CrossingPenaltySq != 0 {
		out.CrossingPenaltySq = overrides.CrossingPenaltySq
	}
	if overrides.PortUsagePenalty != 0 {
		out.PortUsagePenalty = overrides.PortUsagePenalty
	}
	if overrides.PortUsagePenaltySq != 0 {
		out.PortUsagePenaltySq = overrides.PortUsagePenaltySq
	}
	return out
}
