package geometry

import (
	"fmt"
	"math"
)

const (
	MinDirectionsPerQuadrant = 1
	MaxDirectionsPerQuadrant = 20
)

// Quadrant is one of the four 90°-wide compass sectors used to group directions.
type Quadrant int

const (
	QuadrantNorth Quadrant = iota
	QuadrantEast
	QuadrantSouth
	QuadrantWest
)

func (q Quadrant) String() string {
	switch q {
	case QuadrantNorth:
		return "North"
	case QuadrantEast:
		return "East"
	case QuadrantSouth:
		return "South"
	case QuadrantWest:
		return "West"
	}
	return fmt.Sprintf("[!UNKNOWN Quadrant %d]", q)
}

// QuadrantOf assigns a bearing to its compass quadrant. The intervals are half-open with North
// anchored at 315: North=[315,45), East=[45,135), South=[135,225), West=[225,315). A bearing of
// exactly 45° is therefore East, not North.
func QuadrantOf(bearing float64) Quadrant {
	b := NormalizeBearing(bearing)
	switch {
	case b >= 315 || b < 45:
		return QuadrantNorth
	case b < 135:
		return QuadrantEast
	case b < 225:
		return QuadrantSouth
	default:
		return QuadrantWest
	}
}

// NormalizeBearing maps any angle in degrees into [0, 360).
func NormalizeBearing(bearing float64) float64 {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	return b
}

// DirectionSet is an ordered list of compass bearings in degrees, sorted ascending starting at
// 0° (North) and increasing clockwise.
type DirectionSet struct {
	Bearings    []float64
	PerQuadrant int
}

// NewDirectionSet samples 4*perQuadrant bearings, evenly spaced by 90/perQuadrant degrees.
func NewDirectionSet(perQuadrant int) (DirectionSet, error) {
	if perQuadrant < MinDirectionsPerQuadrant || perQuadrant > MaxDirectionsPerQuadrant {
		return DirectionSet{}, &InvalidParameterError{
			Parameter: "directions per quadrant",
			Message:   fmt.Sprintf("must be an integer between %d and %d but was %d", MinDirectionsPerQuadrant, MaxDirectionsPerQuadrant, perQuadrant),
		}
	}

	count := 4 * perQuadrant
	step := 90.0 / float64(perQuadrant)

	bearings := make([]float64, count)
	for i := 0; i < count; i++ {
		bearings[i] = float64(i) * step
	}

	return DirectionSet{
		Bearings:    bearings,
		PerQuadrant: perQuadrant,
	}, nil
}

// Step returns the angular spacing between two adjacent bearings in degrees.
func (d DirectionSet) Step() float64 {
	return 90.0 / float64(d.PerQuadrant)
}

func (d DirectionSet) Len() int {
	return len(d.Bearings)
}
