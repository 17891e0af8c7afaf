package fetch

import (
	"fmt"

	"github.com/paulmach/orb"
)

// UnprojectedInputError is fatal: fetch distances are Euclidean, so both layers must be in a
// projected coordinate system with linear units.
type UnprojectedInputError struct {
	Layer string
}

func (e *UnprojectedInputError) Error() string {
	return fmt.Sprintf("%s layer has no projected coordinate system, distances cannot be computed", e.Layer)
}

// CrsMismatchError is returned when the site layer uses a different coordinate system than the
// obstruction layer and no reprojector was injected to recover.
type CrsMismatchError struct {
	SiteCrs        string
	ObstructionCrs string
}

func (e *CrsMismatchError) Error() string {
	return fmt.Sprintf("site layer CRS '%s' does not match obstruction layer CRS '%s' and no reprojector is available", e.SiteCrs, e.ObstructionCrs)
}

// SiteOnLandError is raised before any ray casting when a site coordinate lies within an
// obstruction polygon. Computing fetch for such a site would silently return zero-length
// vectors, so it fails instead.
type SiteOnLandError struct {
	Site  string
	Point orb.Point
}

func (e *SiteOnLandError) Error() string {
	return fmt.Sprintf("site '%s' at (%f, %f) lies within an obstruction polygon", e.Site, e.Point[0], e.Point[1])
}

// WarningCode identifies a non-fatal diagnostic.
type WarningCode string

const (
	WarningCrsMismatch   WarningCode = "CrsMismatch"
	WarningNonLinearUnit WarningCode = "NonLinearUnit"
	WarningSiteNames     WarningCode = "SiteNames"
)

// Warning is a recovered or advisory condition surfaced to the caller alongside the result.
// Warnings never alter computed distances.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
