package io

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"

	"windfetch/fetch"
)

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description"`
	LineString  *kmlLineString `xml:"LineString,omitempty"`
}

type kmlLineString struct {
	Coordinates string `xml:"coordinates"`
}

// WriteFetchCollectionAsKmlFile writes the collection to the given file.
func WriteFetchCollectionAsKmlFile(collection *fetch.FetchCollection, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create KML file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for KML file %s", file.Name()))
	}()

	return WriteFetchCollectionAsKml(collection, file)
}

// WriteFetchCollectionAsKml writes one line placemark per fetch vector. Coordinates are written
// as-is; KML viewers expect geographic coordinates, so callers should reproject the collection
// before exporting when they want the result on a globe.
func WriteFetchCollectionAsKml(collection *fetch.FetchCollection, writer io.Writer) error {
	document := kmlDocument{Name: "Wind fetch vectors"}

	for _, result := range collection.Results {
		for _, vector := range result.Vectors {
			document.Placemarks = append(document.Placemarks, kmlPlacemark{
				Name:        fmt.Sprintf("%s %.1f°", result.Site.Name, vector.DirectionDeg),
				Description: fmt.Sprintf("Fetch %.3f km towards %.1f° (%s)", vector.DistanceM/1000, vector.DirectionDeg, vector.Quadrant),
				LineString: &kmlLineString{
					Coordinates: fmt.Sprintf("%f,%f %f,%f", result.Site.Point[0], result.Site.Point[1], vector.Endpoint[0], vector.Endpoint[1]),
				},
			})
		}
	}

	_, err := writer.Write([]byte(xml.Header))
	if err != nil {
		return errors.Wrap(err, "Unable to write KML header")
	}

	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "  ")
	err = encoder.Encode(kmlRoot{
		Xmlns:    "http://www.opengis.net/kml/2.2",
		Document: document,
	})
	return errors.Wrap(err, "Unable to encode KML document")
}
