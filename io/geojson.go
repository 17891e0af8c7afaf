package io

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"windfetch/fetch"
	"windfetch/layer"
)

// ReadObstructionLayer reads polygon features from a GeoJSON file. GeoJSON carries no CRS
// metadata, so the coordinate system must be declared by the caller (usually from the run
// config).
func ReadObstructionLayer(filename string, crs layer.CRS) (*layer.ObstructionLayer, error) {
	featureCollection, err := readFeatureCollection(filename)
	if err != nil {
		return nil, err
	}

	var geometries []orb.Geometry
	for _, feature := range featureCollection.Features {
		geometries = append(geometries, feature.Geometry)
	}

	obstructionLayer, err := layer.NewObstructionLayer(crs, geometries)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to build obstruction layer from %s", filename)
	}

	sigolo.Debugf("Read %d obstruction features from %s", obstructionLayer.Size(), filename)
	return obstructionLayer, nil
}

// ReadSiteLayer reads point features from a GeoJSON file. A "name" property, when present,
// becomes the site name.
func ReadSiteLayer(filename string, crs layer.CRS) (*layer.SiteLayer, string, error) {
	featureCollection, err := readFeatureCollection(filename)
	if err != nil {
		return nil, "", err
	}

	var points []orb.Point
	var names []string
	namedSites := 0

	for _, feature := range featureCollection.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			return nil, "", errors.Errorf("Site feature in %s has non-point geometry type %s", filename, feature.Geometry.GeoJSONType())
		}
		points = append(points, point)

		name, _ := feature.Properties["name"].(string)
		if name != "" {
			namedSites++
		}
		names = append(names, name)
	}

	// Only pass the names along when every site carries one, otherwise the default naming with
	// its warning applies.
	if namedSites != len(points) {
		names = nil
	}

	siteLayer, warning := layer.NewSiteLayer(crs, points, names)
	return siteLayer, warning, nil
}

func readFeatureCollection(filename string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read GeoJSON file %s", filename)
	}

	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse GeoJSON file %s", filename)
	}

	return featureCollection, nil
}

// WriteFetchCollectionAsGeoJsonFile writes the collection to the given file.
func WriteFetchCollectionAsGeoJsonFile(collection *fetch.FetchCollection, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create GeoJSON file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for GeoJSON file %s", file.Name()))
	}()

	return WriteFetchCollectionAsGeoJson(collection, file)
}

// WriteFetchCollectionAsGeoJson writes one point feature per site, carrying the summary
// statistics, and one line-string feature per fetch vector.
func WriteFetchCollectionAsGeoJson(collection *fetch.FetchCollection, writer io.Writer) error {
	sigolo.Debug("Write fetch collection as GeoJSON")
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()

	for _, result := range collection.Results {
		stats := result.Stats()

		siteFeature := geojson.NewFeature(result.Site.Point)
		siteFeature.Properties["site"] = result.Site.Name
		siteFeature.Properties["max_dist_km"] = result.MaxDistM / 1000
		siteFeature.Properties["mean_fetch_km"] = stats.MeanM / 1000
		siteFeature.Properties["median_fetch_km"] = stats.MedianM / 1000
		siteFeature.Properties["most_exposed_deg"] = stats.MostExposedDeg
		for quadrant, mean := range stats.QuadrantMeanM {
			siteFeature.Properties[fmt.Sprintf("mean_fetch_km_%s", quadrant)] = mean / 1000
		}
		featureCollection.Features = append(featureCollection.Features, siteFeature)

		for _, vector := range result.Vectors {
			vectorFeature := geojson.NewFeature(orb.LineString{result.Site.Point, vector.Endpoint})
			vectorFeature.Properties["site"] = result.Site.Name
			vectorFeature.Properties["direction_deg"] = vector.DirectionDeg
			vectorFeature.Properties["quadrant"] = vector.Quadrant.String()
			vectorFeature.Properties["fetch_km"] = vector.DistanceM / 1000
			featureCollection.Features = append(featureCollection.Features, vectorFeature)
		}
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal fetch collection to GeoJSON")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON output")
	}

	sigolo.Debugf("Finished writing GeoJSON in %s", time.Since(writeStartTime))
	return nil
}
