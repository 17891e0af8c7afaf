package fetch

import (
	"testing"

	"github.com/paulmach/orb"

	"windfetch/geometry"
	"windfetch/layer"
	"windfetch/util"
)

func vector(direction float64, distance float64) FetchVector {
	return FetchVector{
		DirectionDeg: direction,
		DistanceM:    distance,
		Endpoint:     orb.Point{},
		Quadrant:     geometry.QuadrantOf(direction),
	}
}

func resultWith(vectors ...FetchVector) *FetchResult {
	return &FetchResult{
		Site:     layer.Site{Point: orb.Point{0, 0}, Name: "Site 1"},
		MaxDistM: 1000,
		Vectors:  vectors,
	}
}

func TestStats_meanAndMedian(t *testing.T) {
	// Arrange
	result := resultWith(
		vector(0, 100),
		vector(90, 200),
		vector(180, 300),
		vector(270, 600),
	)

	// Act
	stats := result.Stats()

	// Assert
	util.AssertApprox(t, 300.0, stats.MeanM, 1e-9)
	util.AssertApprox(t, 250.0, stats.MedianM, 1e-9)
}

func TestStats_medianOddCount(t *testing.T) {
	// Act
	stats := resultWith(vector(0, 100), vector(90, 500), vector(180, 200)).Stats()

	// Assert
	util.AssertApprox(t, 200.0, stats.MedianM, 1e-9)
}

func TestStats_quadrantMeans(t *testing.T) {
	// Arrange: 45° counts towards East and 315° towards North.
	result := resultWith(
		vector(0, 100),
		vector(45, 200),
		vector(90, 300),
		vector(135, 400),
		vector(225, 500),
		vector(315, 600),
	)

	// Act
	stats := result.Stats()

	// Assert
	util.AssertApprox(t, 350.0, stats.QuadrantMeanM[geometry.QuadrantNorth], 1e-9)
	util.AssertApprox(t, 250.0, stats.QuadrantMeanM[geometry.QuadrantEast], 1e-9)
	util.AssertApprox(t, 400.0, stats.QuadrantMeanM[geometry.QuadrantSouth], 1e-9)
	util.AssertApprox(t, 500.0, stats.QuadrantMeanM[geometry.QuadrantWest], 1e-9)
}

func TestStats_mostExposedKeepsTies(t *testing.T) {
	// Act
	stats := resultWith(
		vector(270, 1000),
		vector(0, 1000),
		vector(90, 500),
	).Stats()

	// Assert: ascending direction order, both tied maxima kept.
	util.AssertEqual(t, []float64{0, 270}, stats.MostExposedDeg)
}

func TestStats_orderIndependence(t *testing.T) {
	// Arrange
	vectors := []FetchVector{
		vector(0, 400),
		vector(90, 100),
		vector(180, 900),
		vector(270, 900),
	}
	shuffled := []FetchVector{vectors[2], vectors[0], vectors[3], vectors[1]}

	// Act
	original := resultWith(vectors...).Stats()
	reordered := resultWith(shuffled...).Stats()

	// Assert
	util.AssertEqual(t, original, reordered)
}

func TestStats_emptyResult(t *testing.T) {
	// Act
	stats := resultWith().Stats()

	// Assert
	util.AssertEqual(t, 0.0, stats.MeanM)
	util.AssertEqual(t, 0, len(stats.MostExposedDeg))
}
