package layer

import (
	"strings"

	"github.com/paulmach/orb"
)

// Unit classifies the linear unit of a projected coordinate system. Detection is deliberately
// three-valued: assuming meters whenever a unit string cannot be parsed silently corrupts every
// reported distance.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitMeters
	UnitOtherLinear
)

func (u Unit) String() string {
	switch u {
	case UnitMeters:
		return "meters"
	case UnitOtherLinear:
		return "other-linear"
	}
	return "unknown"
}

// CRS describes the coordinate reference system of a layer. The engine itself never transforms
// coordinates, it only checks that inputs are consistent and projected.
type CRS struct {
	Name      string
	Projected bool
	Unit      Unit
}

// ParseUnit classifies a unit string from CRS metadata. Unrecognized strings map to
// UnitUnknown, never to meters.
func ParseUnit(unit string) Unit {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "m", "meter", "meters", "metre", "metres":
		return UnitMeters
	case "ft", "foot", "feet", "us-ft", "us survey foot", "km", "kilometer", "kilometers", "yard", "yards":
		return UnitOtherLinear
	case "":
		return UnitUnknown
	default:
		return UnitUnknown
	}
}

// Equal compares two CRS by name, ignoring unit metadata: two layers with the same named system
// share coordinates regardless of how well the unit was detected.
func (c CRS) Equal(other CRS) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(other.Name))
}

// ReprojectFunc transforms a single point from one coordinate system into another. Reprojection
// semantics live outside the engine; callers inject an implementation when their site layer does
// not already match the obstruction layer.
type ReprojectFunc func(point orb.Point, from CRS, to CRS) (orb.Point, error)
