package layer

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Site is one marine location for which fetch vectors are computed.
type Site struct {
	Point orb.Point
	Name  string
}

// SiteLayer is a list of sites sharing one coordinate system.
type SiteLayer struct {
	crs   CRS
	sites []Site
}

// NewSiteLayer builds a site layer, assigning the given names to the points in order. When the
// names list is empty or its length does not match the point count, all sites get default names
// ("Site 1", "Site 2", ...) and the mismatch is reported back to the caller as a warning string.
// A mismatch is deliberately not fatal.
func NewSiteLayer(crs CRS, points []orb.Point, names []string) (*SiteLayer, string) {
	warning := ""
	if len(names) != len(points) {
		if len(names) != 0 {
			warning = fmt.Sprintf("Got %d site names for %d sites, using default names instead", len(names), len(points))
		}
		names = make([]string, len(points))
		for i := range names {
			names[i] = fmt.Sprintf("Site %d", i+1)
		}
	}

	sites := make([]Site, len(points))
	for i, point := range points {
		sites[i] = Site{Point: point, Name: names[i]}
	}

	return &SiteLayer{crs: crs, sites: sites}, warning
}

func (l *SiteLayer) CRS() CRS {
	return l.crs
}

func (l *SiteLayer) Size() int {
	return len(l.sites)
}

func (l *SiteLayer) Sites() []Site {
	return l.sites
}

// Reproject returns a new site layer with every point transformed into the target system. The
// receiver is left untouched.
func (l *SiteLayer) Reproject(target CRS, reproject ReprojectFunc) (*SiteLayer, error) {
	sites := make([]Site, len(l.sites))
	for i, site := range l.sites {
		point, err := reproject(site.Point, l.crs, target)
		if err != nil {
			return nil, err
		}
		sites[i] = Site{Point: point, Name: site.Name}
	}

	return &SiteLayer{crs: target, sites: sites}, nil
}
