package fetch

import (
	"math"
	"sync"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"

	"windfetch/geometry"
	"windfetch/index"
	"windfetch/layer"
)

// Compute runs the full fetch computation for every site against the obstruction layer. Both
// layers must already share one projected coordinate system; use ComputeWithReprojector when
// the site layer might differ.
func Compute(sites *layer.SiteLayer, obstructions *layer.ObstructionLayer, params Parameters) (*FetchCollection, error) {
	return ComputeWithReprojector(sites, obstructions, params, nil)
}

// ComputeWithReprojector is Compute with a reprojector to recover from a site layer in a
// different coordinate system than the obstruction layer. The whole run fails on the first
// failing site, reporting which site failed and why.
func ComputeWithReprojector(sites *layer.SiteLayer, obstructions *layer.ObstructionLayer, params Parameters, reproject layer.ReprojectFunc) (*FetchCollection, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	sites, warnings, err := alignLayers(sites, obstructions, reproject)
	if err != nil {
		return nil, err
	}

	directions, err := geometry.NewDirectionSet(params.DirectionsPerQuadrant)
	if err != nil {
		return nil, err
	}
	segmentsPerQuadrant := geometry.AlignSegmentsPerQuadrant(params.CircleSegmentsPerQuadrant, params.DirectionsPerQuadrant)

	maxDistM := params.maxDistM()
	subset := newSubsetter(obstructions, maxDistM, params.Quiet)

	if !params.Quiet {
		sigolo.Debugf("Computing fetch for %d sites, %d directions, max dist %.0f m", sites.Size(), directions.Len(), maxDistM)
	}
	computeStartTime := time.Now()

	siteList := sites.Sites()
	results := make([]FetchResult, len(siteList))

	worker := func(siteIndex int) error {
		site := siteList[siteIndex]
		params.report(site.Name, StageValidated)

		result, err := computeSite(site, directions, segmentsPerQuadrant, maxDistM, subset, params)
		if err != nil {
			return errors.Wrapf(err, "Fetch computation failed for site '%s'", site.Name)
		}

		results[siteIndex] = result
		return nil
	}

	if params.Workers > 1 {
		err = forEachSiteParallel(len(siteList), params.Workers, worker)
	} else {
		for i := range siteList {
			if err = worker(i); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if !params.Quiet {
		sigolo.Debugf("Finished fetch computation in %s", time.Since(computeStartTime))
	}

	return &FetchCollection{
		CRS:      obstructions.CRS(),
		MaxDistM: maxDistM,
		Results:  results,
		Warnings: warnings,
	}, nil
}

// newSubsetter returns the per-site obstruction pruning function. Small layers use a linear
// bound scan, larger ones go through a grid index. Both return the same subset, the index is
// only faster.
func newSubsetter(obstructions *layer.ObstructionLayer, maxDistM float64, quiet bool) func(orb.Bound) *layer.ObstructionLayer {
	if obstructions.Size() < gridIndexThreshold {
		return obstructions.Subset
	}

	if !quiet {
		sigolo.Debugf("Obstruction layer has %d features, building grid index", obstructions.Size())
	}
	gridIndex := index.NewGridIndex(obstructions, maxDistM, maxDistM)
	return gridIndex.Query
}

func computeSite(site layer.Site, directions geometry.DirectionSet, segmentsPerQuadrant int, maxDistM float64, subset func(orb.Bound) *layer.ObstructionLayer, params Parameters) (FetchResult, error) {
	params.report(site.Name, StageDirectionsSampled)

	endpoints, err := geometry.CandidateEndpoints(site.Point, maxDistM, directions, segmentsPerQuadrant)
	if err != nil {
		return FetchResult{}, err
	}
	params.report(site.Name, StageCandidatesGenerated)

	searchBound := geometry.CircleRing(site.Point, maxDistM, segmentsPerQuadrant).Bound()
	obstructions := subset(searchBound)
	params.report(site.Name, StageObstructionsSubset)

	// Cheap check before the expensive intersection work: a site on land has no fetch.
	if obstructions.Contains(site.Point) {
		return FetchResult{}, &SiteOnLandError{Site: site.Name, Point: site.Point}
	}

	if !params.Quiet {
		sigolo.Tracef("Site '%s': %d obstruction features within search bound", site.Name, obstructions.Size())
	}

	vectors := make([]FetchVector, directions.Len())
	for i, bearing := range directions.Bearings {
		endpoint := endpoints[i]
		distance := maxDistM

		if crossing, found := nearestCrossing(site.Point, endpoint, obstructions); found {
			endpoint = crossing
			distance = planar.Distance(site.Point, crossing)
		}

		vectors[i] = FetchVector{
			DirectionDeg: bearing,
			DistanceM:    distance,
			Endpoint:     endpoint,
			Quadrant:     geometry.QuadrantOf(bearing),
		}
	}
	params.report(site.Name, StageIntersected)

	result := FetchResult{
		Site:     site,
		MaxDistM: maxDistM,
		Vectors:  vectors,
	}
	params.report(site.Name, StageAggregated)

	return result, nil
}

// nearestCrossing finds the intersection of the ray (origin, end) with any obstruction polygon
// boundary that lies nearest to the origin. A ray may cross a boundary several times, e.g. when
// clipping the corner of an island, but only the first crossing blocks the wind.
func nearestCrossing(origin orb.Point, end orb.Point, obstructions *layer.ObstructionLayer) (orb.Point, bool) {
	rayBound := orb.MultiPoint{origin, end}.Bound()

	bestT := math.Inf(1)
	var bestPoint orb.Point
	found := false

	visitRing := func(ring orb.Ring) {
		geometry.RingSegments(ring, func(start, edgeEnd orb.Point) bool {
			if point, t, ok := geometry.SegmentIntersection(origin, end, start, edgeEnd); ok && t < bestT {
				bestT = t
				bestPoint = point
				found = true
			}
			return true
		})
	}

	for _, feature := range obstructions.Features() {
		if !feature.Bound.Intersects(rayBound) {
			continue
		}

		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			for _, ring := range geom {
				visitRing(ring)
			}
		case orb.MultiPolygon:
			for _, polygon := range geom {
				for _, ring := range polygon {
					visitRing(ring)
				}
			}
		}
	}

	return bestPoint, found
}

func forEachSiteParallel(siteCount int, workers int, worker func(siteIndex int) error) error {
	jobs := make(chan int, siteCount)
	for i := 0; i < siteCount; i++ {
		jobs <- i
	}
	close(jobs)

	errs := make([]error, siteCount)
	var waitGroup sync.WaitGroup

	for w := 0; w < workers; w++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for siteIndex := range jobs {
				errs[siteIndex] = worker(siteIndex)
			}
		}()
	}

	waitGroup.Wait()

	// Report the first failing site in input order, independent of scheduling.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
