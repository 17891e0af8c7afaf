package fetch

import (
	"fmt"

	"windfetch/geometry"
)

const (
	MinMaxDistKm = 1.0
	MaxMaxDistKm = 500.0

	// Layers at least this large get a grid index instead of a linear bound scan per site.
	gridIndexThreshold = 256
)

// Stage labels the phases of one per-site fetch invocation, in order. Reported through the
// progress hook.
type Stage string

const (
	StageValidated           Stage = "Validated"
	StageDirectionsSampled   Stage = "DirectionsSampled"
	StageCandidatesGenerated Stage = "CandidatesGenerated"
	StageObstructionsSubset  Stage = "ObstructionsSubset"
	StageIntersected         Stage = "Intersected"
	StageAggregated          Stage = "Aggregated"
)

// ProgressFunc is an optional diagnostic hook, called once per site and stage. It must not
// block for long, the engine calls it synchronously.
type ProgressFunc func(site string, stage Stage)

// Parameters configures one fetch run.
type Parameters struct {
	// MaxDistKm is the maximum search distance in kilometers, between 1 and 500. Internally the
	// engine works in the layer's linear unit, assumed meters.
	MaxDistKm float64

	// DirectionsPerQuadrant is the angular sampling resolution, between 1 and 20. The run
	// evaluates 4 times this many directions.
	DirectionsPerQuadrant int

	// CircleSegmentsPerQuadrant controls how finely the max-distance circle is approximated.
	// Zero selects a default; any value is rounded up to a multiple of DirectionsPerQuadrant so
	// that every sampled bearing lies exactly on a circle vertex.
	CircleSegmentsPerQuadrant int

	// Workers is the number of sites processed in parallel. Zero or one means sequential.
	Workers int

	// Quiet suppresses all diagnostic logging. Computed results are unaffected.
	Quiet bool

	// Progress, when set, receives per-site stage notifications.
	Progress ProgressFunc
}

func (p Parameters) validate() error {
	if p.MaxDistKm < MinMaxDistKm || p.MaxDistKm > MaxMaxDistKm {
		return &geometry.InvalidParameterError{
			Parameter: "max dist",
			Message:   fmt.Sprintf("must be between %.0f and %.0f km but was %v", MinMaxDistKm, MaxMaxDistKm, p.MaxDistKm),
		}
	}
	if p.DirectionsPerQuadrant < geometry.MinDirectionsPerQuadrant || p.DirectionsPerQuadrant > geometry.MaxDirectionsPerQuadrant {
		return &geometry.InvalidParameterError{
			Parameter: "directions per quadrant",
			Message:   fmt.Sprintf("must be an integer between %d and %d but was %d", geometry.MinDirectionsPerQuadrant, geometry.MaxDirectionsPerQuadrant, p.DirectionsPerQuadrant),
		}
	}
	return nil
}

func (p Parameters) maxDistM() float64 {
	return p.MaxDistKm * 1000
}

func (p Parameters) report(site string, stage Stage) {
	if p.Progress != nil {
		p.Progress(site, stage)
	}
}
