package io

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"

	"windfetch/layer"
)

var osmCrs = layer.CRS{Name: "EPSG:4326", Projected: false, Unit: layer.UnitUnknown}

// ReadOsmObstructionLayer builds an obstruction layer from the closed land/coastline ways of an
// .osm or .osm.pbf file. OSM coordinates are geographic, so a reprojector and a projected
// target system are required to get a layer the engine accepts; passing a nil reprojector
// yields a geographic layer that the engine will reject during validation.
func ReadOsmObstructionLayer(inputFile string, target layer.CRS, reproject layer.ReprojectFunc) (*layer.ObstructionLayer, error) {
	if !strings.HasSuffix(inputFile, ".osm") && !strings.HasSuffix(inputFile, ".pbf") {
		return nil, errors.Errorf("Input file %s must be an .osm or .pbf file", inputFile)
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open OSM file %s", inputFile)
	}
	defer f.Close()

	var scanner osm.Scanner
	if strings.HasSuffix(inputFile, ".osm") {
		scanner = osmxml.New(context.Background(), f)
	} else {
		scanner = osmpbf.New(context.Background(), f, 1)
	}
	defer scanner.Close()

	sigolo.Debug("Start reading obstruction polygons from OSM data")
	readStartTime := time.Now()

	// Nodes precede ways in OSM files, so one pass suffices.
	nodePoints := map[osm.NodeID]orb.Point{}
	var geometries []orb.Geometry

	for scanner.Scan() {
		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			nodePoints[osmObj.ID] = orb.Point{osmObj.Lon, osmObj.Lat}
		case *osm.Way:
			if !isLandWay(osmObj) || !isClosed(osmObj) {
				continue
			}

			ring := make(orb.Ring, 0, len(osmObj.Nodes))
			complete := true
			for _, wayNode := range osmObj.Nodes {
				point, ok := nodePoints[wayNode.ID]
				if !ok {
					sigolo.Tracef("Way %d references unknown node %d, skipping way", osmObj.ID, wayNode.ID)
					complete = false
					break
				}
				if reproject != nil {
					point, err = reproject(point, osmCrs, target)
					if err != nil {
						return nil, errors.Wrapf(err, "Unable to reproject node %d of way %d", wayNode.ID, osmObj.ID)
					}
				}
				ring = append(ring, point)
			}

			if complete {
				geometries = append(geometries, orb.Polygon{ring})
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "Error while scanning OSM file %s", inputFile)
	}

	crs := osmCrs
	if reproject != nil {
		crs = target
	}

	obstructionLayer, err := layer.NewObstructionLayer(crs, geometries)
	if err != nil {
		return nil, err
	}

	sigolo.Debugf("Read %d obstruction polygons from OSM data in %s", obstructionLayer.Size(), time.Since(readStartTime))
	return obstructionLayer, nil
}

func isLandWay(way *osm.Way) bool {
	for _, tag := range way.Tags {
		if tag.Key == "natural" && (tag.Value == "coastline" || tag.Value == "land") {
			return true
		}
		if tag.Key == "place" && tag.Value == "island" {
			return true
		}
	}
	return false
}

func isClosed(way *osm.Way) bool {
	return len(way.Nodes) >= 4 && way.Nodes[0].ID == way.Nodes[len(way.Nodes)-1].ID
}
