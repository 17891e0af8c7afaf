package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// DefaultSegmentsPerQuadrant is the fallback circle fidelity. It has many small divisors, so it
// is compatible with most directions-per-quadrant values without adjustment.
const DefaultSegmentsPerQuadrant = 36

// Destination returns the point reached from origin by travelling the given planar distance
// along a compass bearing (0° = North, clockwise). Coordinates must be in a projected system
// with linear units.
func Destination(origin orb.Point, bearing float64, distance float64) orb.Point {
	rad := NormalizeBearing(bearing) * math.Pi / 180
	return orb.Point{
		origin[0] + distance*math.Sin(rad),
		origin[1] + distance*math.Cos(rad),
	}
}

// CircleRing approximates a circle of the given radius around center as a closed regular
// polygon ring with 4*segmentsPerQuadrant vertices. Vertex 0 lies due East of the center
// (bearing 90°) and subsequent vertices proceed clockwise.
func CircleRing(center orb.Point, radius float64, segmentsPerQuadrant int) orb.Ring {
	count := 4 * segmentsPerQuadrant
	step := 360.0 / float64(count)

	ring := make(orb.Ring, count+1)
	for i := 0; i < count; i++ {
		ring[i] = Destination(center, 90+float64(i)*step, radius)
	}
	ring[count] = ring[0]

	return ring
}

// CandidateEndpoints extracts, for every bearing of the direction set, the vertex of the
// max-distance circle polygon lying exactly on that bearing. The fidelity must be a multiple of
// the direction set's per-quadrant count so that each bearing maps onto a vertex without
// interpolation. The circle's vertex ordering starts at 90°, so bearings below 90° wrap around
// the ring; the modular index arithmetic here absorbs that rotation so that endpoint[i] always
// corresponds to directions.Bearings[i].
func CandidateEndpoints(center orb.Point, radius float64, directions DirectionSet, segmentsPerQuadrant int) ([]orb.Point, error) {
	if segmentsPerQuadrant <= 0 {
		return nil, &InvalidParameterError{
			Parameter: "circle segments per quadrant",
			Message:   fmt.Sprintf("must be positive but was %d", segmentsPerQuadrant),
		}
	}
	if segmentsPerQuadrant%directions.PerQuadrant != 0 {
		return nil, &InvalidParameterError{
			Parameter: "circle segments per quadrant",
			Message:   fmt.Sprintf("must be a multiple of the %d directions per quadrant but was %d", directions.PerQuadrant, segmentsPerQuadrant),
		}
	}

	ring := CircleRing(center, radius, segmentsPerQuadrant)
	vertexStep := 360.0 / float64(4*segmentsPerQuadrant)

	endpoints := make([]orb.Point, directions.Len())
	for i, bearing := range directions.Bearings {
		vertexIndex := int(math.Round(NormalizeBearing(bearing-90) / vertexStep))
		endpoints[i] = ring[vertexIndex%(4*segmentsPerQuadrant)]
	}

	return endpoints, nil
}

// AlignSegmentsPerQuadrant rounds the requested fidelity up to the next multiple of the
// per-quadrant direction count. A zero or negative request falls back to the default fidelity.
func AlignSegmentsPerQuadrant(requested int, perQuadrant int) int {
	if requested <= 0 {
		requested = DefaultSegmentsPerQuadrant
	}
	if requested < perQuadrant {
		return perQuadrant
	}
	if remainder := requested % perQuadrant; remainder != 0 {
		return requested + perQuadrant - remainder
	}
	return requested
}
