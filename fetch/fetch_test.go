package fetch

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"windfetch/geometry"
	"windfetch/layer"
	"windfetch/util"
)

var meterCrs = layer.CRS{Name: "EPSG:32632", Projected: true, Unit: layer.UnitMeters}

func square(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}
}

func newLayers(t *testing.T, sitePoints []orb.Point, geometries ...orb.Geometry) (*layer.SiteLayer, *layer.ObstructionLayer) {
	obstructionLayer, err := layer.NewObstructionLayer(meterCrs, geometries)
	util.AssertNil(t, err)
	siteLayer, _ := layer.NewSiteLayer(meterCrs, sitePoints, nil)
	return siteLayer, obstructionLayer
}

func TestCompute_openWaterAtMinimumBounds(t *testing.T) {
	// Arrange: no obstruction within range, minimum max dist and direction count.
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}})
	params := Parameters{MaxDistKm: 1, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert: all four vectors reach the full search distance.
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, len(collection.Results))

	result := collection.Results[0]
	util.AssertEqual(t, 4, len(result.Vectors))
	for i, vector := range result.Vectors {
		util.AssertEqual(t, float64(i*90), vector.DirectionDeg)
		util.AssertApprox(t, 1000.0, vector.DistanceM, 1e-6)
		util.AssertPointApprox(t, geometry.Destination(orb.Point{0, 0}, vector.DirectionDeg, 1000), vector.Endpoint, 1e-6)
	}
}

func TestCompute_singleWall(t *testing.T) {
	// Arrange: a wall 500 m east of the site, far enough north and south to only block the
	// eastern ray.
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}},
		orb.Polygon{square(500, -1000, 600, 1000)},
	)
	params := Parameters{MaxDistKm: 2, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert
	util.AssertNil(t, err)
	result := collection.Results[0]

	util.AssertApprox(t, 2000.0, result.Vectors[0].DistanceM, 1e-6) // North
	util.AssertApprox(t, 500.0, result.Vectors[1].DistanceM, 1e-3)  // East
	util.AssertApprox(t, 2000.0, result.Vectors[2].DistanceM, 1e-6) // South
	util.AssertApprox(t, 2000.0, result.Vectors[3].DistanceM, 1e-6) // West

	util.AssertPointApprox(t, orb.Point{500, 0}, result.Vectors[1].Endpoint, 1e-3)
}

func TestCompute_nearestOfMultipleCrossings(t *testing.T) {
	// Arrange: the eastern ray enters the island at x=300 and leaves it at x=400. Only the
	// first crossing blocks the wind.
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}},
		orb.Polygon{square(300, -50, 400, 50)},
	)
	params := Parameters{MaxDistKm: 2, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert
	util.AssertNil(t, err)
	util.AssertApprox(t, 300.0, collection.Results[0].Vectors[1].DistanceM, 1e-3)
}

func TestCompute_siteInLagoon(t *testing.T) {
	// Arrange: solid land from -200 km to 200 km with a square lagoon of 50 km half-width
	// around the site. Every direction must hit the lagoon edge, not the search limit.
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}},
		orb.Polygon{
			square(-200_000, -200_000, 200_000, 200_000),
			square(-50_000, -50_000, 50_000, 50_000),
		},
	)
	params := Parameters{MaxDistKm: 300, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert
	util.AssertNil(t, err)
	result := collection.Results[0]
	util.AssertEqual(t, 4, len(result.Vectors))
	for _, vector := range result.Vectors {
		util.AssertApprox(t, 50_000.0, vector.DistanceM, 1e-3)
	}
}

func TestCompute_siteOnLand(t *testing.T) {
	// Arrange
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}},
		orb.Polygon{square(-100, -100, 100, 100)},
	)
	params := Parameters{MaxDistKm: 1, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert
	util.AssertNotNil(t, err)
	util.AssertTrue(t, collection == nil)

	var siteOnLand *SiteOnLandError
	util.AssertTrue(t, errors.As(err, &siteOnLand))
	util.AssertEqual(t, "Site 1", siteOnLand.Site)
}

func TestCompute_failsFastOnFirstFailingSite(t *testing.T) {
	// Arrange: the second of three sites lies on land.
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 5000}, {0, 0}, {5000, 0}},
		orb.Polygon{square(-100, -100, 100, 100)},
	)
	params := Parameters{MaxDistKm: 1, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	_, err := Compute(siteLayer, obstructionLayer, params)

	// Assert
	util.AssertNotNil(t, err)

	var siteOnLand *SiteOnLandError
	util.AssertTrue(t, errors.As(err, &siteOnLand))
	util.AssertEqual(t, "Site 2", siteOnLand.Site)
}

func TestCompute_idempotence(t *testing.T) {
	// Arrange
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}},
		orb.Polygon{square(500, -1000, 600, 1000)},
		orb.Polygon{square(-2000, -100, -1500, 100)},
	)
	params := Parameters{MaxDistKm: 3, DirectionsPerQuadrant: 5, Quiet: true}

	// Act
	first, err := Compute(siteLayer, obstructionLayer, params)
	util.AssertNil(t, err)
	second, err := Compute(siteLayer, obstructionLayer, params)
	util.AssertNil(t, err)

	// Assert
	util.AssertEqual(t, first, second)
}

func TestCompute_parallelMatchesSequential(t *testing.T) {
	// Arrange
	sitePoints := []orb.Point{{0, 0}, {1000, 1000}, {-3000, 200}, {0, -4000}}
	siteLayer, obstructionLayer := newLayers(t, sitePoints,
		orb.Polygon{square(500, -1000, 600, 1000)},
	)
	sequential := Parameters{MaxDistKm: 3, DirectionsPerQuadrant: 4, Quiet: true}
	parallel := Parameters{MaxDistKm: 3, DirectionsPerQuadrant: 4, Quiet: true, Workers: 3}

	// Act
	sequentialResult, err := Compute(siteLayer, obstructionLayer, sequential)
	util.AssertNil(t, err)
	parallelResult, err := Compute(siteLayer, obstructionLayer, parallel)
	util.AssertNil(t, err)

	// Assert
	util.AssertEqual(t, sequentialResult, parallelResult)
}

func TestCompute_gridIndexedLayerMatchesLinearScan(t *testing.T) {
	// Arrange: enough features to trigger the grid index, plus the one wall that matters.
	geometries := []orb.Geometry{orb.Polygon{square(500, -1000, 600, 1000)}}
	for i := 0; i < gridIndexThreshold; i++ {
		x := 100_000 + float64(i)*500
		geometries = append(geometries, orb.Polygon{square(x, 0, x+100, 100)})
	}

	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}}, geometries...)
	util.AssertTrue(t, obstructionLayer.Size() >= gridIndexThreshold)
	params := Parameters{MaxDistKm: 2, DirectionsPerQuadrant: 1, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert: pruning through the index changes nothing about the distances.
	util.AssertNil(t, err)
	util.AssertApprox(t, 500.0, collection.Results[0].Vectors[1].DistanceM, 1e-3)
	util.AssertApprox(t, 2000.0, collection.Results[0].Vectors[0].DistanceM, 1e-6)
}

func TestCompute_invalidParameters(t *testing.T) {
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}})

	for _, params := range []Parameters{
		{MaxDistKm: 0, DirectionsPerQuadrant: 1},
		{MaxDistKm: 501, DirectionsPerQuadrant: 1},
		{MaxDistKm: 100, DirectionsPerQuadrant: 0},
		{MaxDistKm: 100, DirectionsPerQuadrant: 21},
	} {
		// Act
		_, err := Compute(siteLayer, obstructionLayer, params)

		// Assert
		util.AssertNotNil(t, err)
		var invalidParameter *geometry.InvalidParameterError
		util.AssertTrue(t, errors.As(err, &invalidParameter))
	}
}

func TestCompute_reportsStages(t *testing.T) {
	// Arrange
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}})
	var stages []Stage
	params := Parameters{
		MaxDistKm:             1,
		DirectionsPerQuadrant: 1,
		Quiet:                 true,
		Progress: func(site string, stage Stage) {
			util.AssertEqual(t, "Site 1", site)
			stages = append(stages, stage)
		},
	}

	// Act
	_, err := Compute(siteLayer, obstructionLayer, params)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, []Stage{StageValidated, StageDirectionsSampled, StageCandidatesGenerated, StageObstructionsSubset, StageIntersected, StageAggregated}, stages)
}

func TestCompute_quadrantLabels(t *testing.T) {
	// Arrange
	siteLayer, obstructionLayer := newLayers(t, []orb.Point{{0, 0}})
	params := Parameters{MaxDistKm: 1, DirectionsPerQuadrant: 2, Quiet: true}

	// Act
	collection, err := Compute(siteLayer, obstructionLayer, params)

	// Assert: 45° is East, 315° is North.
	util.AssertNil(t, err)
	for _, vector := range collection.Results[0].Vectors {
		expected := geometry.QuadrantOf(vector.DirectionDeg)
		util.AssertEqual(t, expected, vector.Quadrant)
		if vector.DirectionDeg == 45 {
			util.AssertEqual(t, geometry.QuadrantEast, vector.Quadrant)
		}
		if vector.DirectionDeg == 315 {
			util.AssertEqual(t, geometry.QuadrantNorth, vector.Quadrant)
		}
	}
}
