package fetch

import (
	"fmt"

	"github.com/pkg/errors"

	"windfetch/layer"
)

// alignLayers runs the cheap up-front input checks: both layers projected, same coordinate
// system, linear unit known. It returns the site layer to actually compute with, which is a
// reprojected copy when the systems differed and a reprojector was available.
func alignLayers(sites *layer.SiteLayer, obstructions *layer.ObstructionLayer, reproject layer.ReprojectFunc) (*layer.SiteLayer, []Warning, error) {
	obstructionCrs := obstructions.CRS()
	siteCrs := sites.CRS()

	if !obstructionCrs.Projected {
		layerName := "obstruction"
		if !siteCrs.Projected {
			layerName = "obstruction and site"
		}
		return nil, nil, &UnprojectedInputError{Layer: layerName}
	}
	if !siteCrs.Projected {
		return nil, nil, &UnprojectedInputError{Layer: "site"}
	}

	var warnings []Warning

	if !siteCrs.Equal(obstructionCrs) {
		if reproject == nil {
			return nil, nil, &CrsMismatchError{
				SiteCrs:        siteCrs.Name,
				ObstructionCrs: obstructionCrs.Name,
			}
		}

		reprojected, err := sites.Reproject(obstructionCrs, reproject)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Unable to reproject site layer from '%s' to '%s'", siteCrs.Name, obstructionCrs.Name)
		}
		sites = reprojected

		warnings = append(warnings, Warning{
			Code:    WarningCrsMismatch,
			Message: fmt.Sprintf("Site layer CRS '%s' did not match obstruction layer CRS '%s', the site layer was reprojected", siteCrs.Name, obstructionCrs.Name),
		})
	}

	switch obstructionCrs.Unit {
	case layer.UnitMeters:
		// Distances come out in meters, reporting divides by 1000 for kilometers.
	case layer.UnitOtherLinear:
		warnings = append(warnings, Warning{
			Code:    WarningNonLinearUnit,
			Message: fmt.Sprintf("Coordinate system '%s' uses a linear unit other than meters, distances are reported in that unit scaled by 1/1000", obstructionCrs.Name),
		})
	default:
		warnings = append(warnings, Warning{
			Code:    WarningNonLinearUnit,
			Message: fmt.Sprintf("The linear unit of coordinate system '%s' could not be determined, distances assume meters", obstructionCrs.Name),
		})
	}

	return sites, warnings, nil
}
