package io

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"

	"windfetch/fetch"
)

// WriteFetchCollectionAsCsvFile writes the collection to the given file.
func WriteFetchCollectionAsCsvFile(collection *fetch.FetchCollection, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create CSV file %s", filename)
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for CSV file %s", file.Name()))
	}()

	return WriteFetchCollectionAsCsv(collection, file)
}

// WriteFetchCollectionAsCsv writes one row per direction per site.
func WriteFetchCollectionAsCsv(collection *fetch.FetchCollection, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	err := csvWriter.Write([]string{"site", "direction_deg", "quadrant", "fetch_km", "endpoint_x", "endpoint_y"})
	if err != nil {
		return errors.Wrap(err, "Unable to write CSV header")
	}

	for _, result := range collection.Results {
		for _, vector := range result.Vectors {
			record := []string{
				result.Site.Name,
				strconv.FormatFloat(vector.DirectionDeg, 'f', -1, 64),
				vector.Quadrant.String(),
				strconv.FormatFloat(vector.DistanceM/1000, 'f', 3, 64),
				strconv.FormatFloat(vector.Endpoint[0], 'f', -1, 64),
				strconv.FormatFloat(vector.Endpoint[1], 'f', -1, 64),
			}
			if err = csvWriter.Write(record); err != nil {
				return errors.Wrapf(err, "Unable to write CSV row for site '%s'", result.Site.Name)
			}
		}
	}

	csvWriter.Flush()
	return errors.Wrap(csvWriter.Error(), "Unable to flush CSV output")
}
