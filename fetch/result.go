package fetch

import (
	"github.com/paulmach/orb"

	"windfetch/geometry"
	"windfetch/layer"
)

// FetchVector is the fetch in one compass direction: the distance from the site to the first
// obstruction (or the maximum search distance when open water extends that far) and the point
// where the ray ended.
type FetchVector struct {
	DirectionDeg float64
	DistanceM    float64
	Endpoint     orb.Point
	Quadrant     geometry.Quadrant
}

// FetchResult is the completed computation for one site: one vector per sampled direction,
// ordered by ascending bearing. Results are immutable once built.
type FetchResult struct {
	Site     layer.Site
	MaxDistM float64
	Vectors  []FetchVector
}

// FetchCollection groups the results of one run. All contained results share the coordinate
// system and maximum search distance.
type FetchCollection struct {
	CRS      layer.CRS
	MaxDistM float64
	Results  []FetchResult
	Warnings []Warning
}
