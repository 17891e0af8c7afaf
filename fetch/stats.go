package fetch

import (
	"math"
	"sort"

	"windfetch/geometry"
)

// Stats summarizes the fetch vectors of one site. All values derive from an order-independent
// reduction over the vectors, so shuffling the input changes nothing.
type Stats struct {
	MeanM          float64
	MedianM        float64
	QuadrantMeanM  map[geometry.Quadrant]float64
	MostExposedDeg []float64
}

// Stats computes the summary statistics for this result.
func (r *FetchResult) Stats() Stats {
	stats := Stats{
		QuadrantMeanM: map[geometry.Quadrant]float64{},
	}
	if len(r.Vectors) == 0 {
		return stats
	}

	distances := make([]float64, len(r.Vectors))
	quadrantSums := map[geometry.Quadrant]float64{}
	quadrantCounts := map[geometry.Quadrant]int{}

	sum := 0.0
	maxDistance := math.Inf(-1)
	for i, vector := range r.Vectors {
		distances[i] = vector.DistanceM
		sum += vector.DistanceM
		quadrantSums[vector.Quadrant] += vector.DistanceM
		quadrantCounts[vector.Quadrant]++
		if vector.DistanceM > maxDistance {
			maxDistance = vector.DistanceM
		}
	}

	stats.MeanM = sum / float64(len(r.Vectors))
	stats.MedianM = median(distances)

	for quadrant, quadrantSum := range quadrantSums {
		stats.QuadrantMeanM[quadrant] = quadrantSum / float64(quadrantCounts[quadrant])
	}

	// All directions reaching the maximum are kept, ties included.
	var mostExposed []float64
	for _, vector := range r.Vectors {
		if vector.DistanceM == maxDistance {
			mostExposed = append(mostExposed, vector.DirectionDeg)
		}
	}
	sort.Float64s(mostExposed)
	stats.MostExposedDeg = mostExposed

	return stats
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[middle]
	}
	return (sorted[middle-1] + sorted[middle]) / 2
}
