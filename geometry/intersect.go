package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// epsilon for the near-parallel and collinearity checks below. Coordinates are meters, so this
// is far below any physically meaningful distance.
const epsilon = 1e-12

// SegmentIntersection computes the crossing of the directed segment (rayStart, rayEnd) with the
// segment (edgeStart, edgeEnd). It returns the crossing point, the parameter t in [0,1] along
// the ray at which the crossing occurs, and whether the segments intersect at all. Touching
// endpoints count as intersections. Collinear overlapping segments resolve to the overlap point
// nearest to rayStart.
func SegmentIntersection(rayStart, rayEnd, edgeStart, edgeEnd orb.Point) (orb.Point, float64, bool) {
	rx := rayEnd[0] - rayStart[0]
	ry := rayEnd[1] - rayStart[1]
	ex := edgeEnd[0] - edgeStart[0]
	ey := edgeEnd[1] - edgeStart[1]

	denominator := rx*ey - ry*ex

	if math.Abs(denominator) < epsilon {
		return collinearOverlap(rayStart, rayEnd, edgeStart, edgeEnd)
	}

	dx := edgeStart[0] - rayStart[0]
	dy := edgeStart[1] - rayStart[1]

	t := (dx*ey - dy*ex) / denominator
	u := (dx*ry - dy*rx) / denominator

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return orb.Point{}, 0, false
	}

	return orb.Point{rayStart[0] + t*rx, rayStart[1] + t*ry}, t, true
}

// collinearOverlap handles the parallel case: when the edge lies on the ray's carrier line and
// the ranges overlap, the overlap point with the smallest ray parameter wins.
func collinearOverlap(rayStart, rayEnd, edgeStart, edgeEnd orb.Point) (orb.Point, float64, bool) {
	rx := rayEnd[0] - rayStart[0]
	ry := rayEnd[1] - rayStart[1]

	// Parallel but not on the same line: the cross product of the ray direction and the offset
	// to the edge start is non-zero.
	offsetCross := rx*(edgeStart[1]-rayStart[1]) - ry*(edgeStart[0]-rayStart[0])
	if math.Abs(offsetCross) > epsilon {
		return orb.Point{}, 0, false
	}

	lengthSquared := rx*rx + ry*ry
	if lengthSquared < epsilon {
		return orb.Point{}, 0, false
	}

	project := func(p orb.Point) float64 {
		return ((p[0]-rayStart[0])*rx + (p[1]-rayStart[1])*ry) / lengthSquared
	}

	t1 := project(edgeStart)
	t2 := project(edgeEnd)
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	if t2 < 0 || t1 > 1 {
		return orb.Point{}, 0, false
	}

	t := math.Max(t1, 0)
	return orb.Point{rayStart[0] + t*rx, rayStart[1] + t*ry}, t, true
}

// RingSegments enumerates the edges of a ring as (start, end) pairs, handling both closed rings
// (first point repeated at the end) and open ones.
func RingSegments(ring orb.Ring, visit func(start, end orb.Point) bool) {
	if len(ring) < 2 {
		return
	}

	for i := 0; i < len(ring)-1; i++ {
		if !visit(ring[i], ring[i+1]) {
			return
		}
	}

	first := ring[0]
	last := ring[len(ring)-1]
	if first != last {
		visit(last, first)
	}
}
