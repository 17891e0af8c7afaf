package geometry

import (
	"testing"

	"github.com/paulmach/orb"

	"windfetch/util"
)

func TestDestination(t *testing.T) {
	origin := orb.Point{10, 20}

	util.AssertPointApprox(t, orb.Point{10, 120}, Destination(origin, 0, 100), 1e-9)
	util.AssertPointApprox(t, orb.Point{110, 20}, Destination(origin, 90, 100), 1e-9)
	util.AssertPointApprox(t, orb.Point{10, -80}, Destination(origin, 180, 100), 1e-9)
	util.AssertPointApprox(t, orb.Point{-90, 20}, Destination(origin, 270, 100), 1e-9)
}

func TestCircleRing(t *testing.T) {
	// Arrange
	center := orb.Point{0, 0}

	// Act
	ring := CircleRing(center, 100, 1)

	// Assert
	util.AssertEqual(t, 5, len(ring))
	util.AssertEqual(t, ring[0], ring[4])

	// Vertex ordering starts due East and proceeds clockwise.
	util.AssertPointApprox(t, orb.Point{100, 0}, ring[0], 1e-9)
	util.AssertPointApprox(t, orb.Point{0, -100}, ring[1], 1e-9)
	util.AssertPointApprox(t, orb.Point{-100, 0}, ring[2], 1e-9)
	util.AssertPointApprox(t, orb.Point{0, 100}, ring[3], 1e-9)
}

func TestCandidateEndpoints_matchDirectionOrder(t *testing.T) {
	// Arrange
	center := orb.Point{10, 20}
	directions, err := NewDirectionSet(3)
	util.AssertNil(t, err)

	// Act
	endpoints, err := CandidateEndpoints(center, 1000, directions, 9)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, directions.Len(), len(endpoints))

	for i, bearing := range directions.Bearings {
		util.AssertPointApprox(t, Destination(center, bearing, 1000), endpoints[i], 1e-6)
	}
}

func TestCandidateEndpoints_misalignedFidelity(t *testing.T) {
	// Arrange
	directions, err := NewDirectionSet(3)
	util.AssertNil(t, err)

	// Act
	_, err = CandidateEndpoints(orb.Point{0, 0}, 1000, directions, 4)

	// Assert
	util.AssertNotNil(t, err)
	_, isInvalidParameter := err.(*InvalidParameterError)
	util.AssertTrue(t, isInvalidParameter)
}

func TestAlignSegmentsPerQuadrant(t *testing.T) {
	util.AssertEqual(t, DefaultSegmentsPerQuadrant, AlignSegmentsPerQuadrant(0, 3))
	util.AssertEqual(t, 42, AlignSegmentsPerQuadrant(0, 7))
	util.AssertEqual(t, 12, AlignSegmentsPerQuadrant(10, 3))
	util.AssertEqual(t, 36, AlignSegmentsPerQuadrant(36, 9))
	util.AssertEqual(t, 20, AlignSegmentsPerQuadrant(5, 20))
	util.AssertEqual(t, 40, AlignSegmentsPerQuadrant(21, 20))
}
