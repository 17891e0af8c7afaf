package io

import (
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"windfetch/layer"
)

// CrsConfig declares the coordinate system of an input file, since neither GeoJSON nor OSM
// files carry usable CRS metadata.
type CrsConfig struct {
	Name      string `yaml:"name"`
	Projected bool   `yaml:"projected"`
	Unit      string `yaml:"unit"`
}

func (c CrsConfig) ToCrs() layer.CRS {
	return layer.CRS{
		Name:      c.Name,
		Projected: c.Projected,
		Unit:      layer.ParseUnit(c.Unit),
	}
}

type SitePointConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Name string  `yaml:"name"`
}

type RunConfig struct {
	Obstructions struct {
		File string    `yaml:"file"`
		Crs  CrsConfig `yaml:"crs"`
	} `yaml:"obstructions"`

	Sites struct {
		File   string            `yaml:"file"`
		Crs    CrsConfig         `yaml:"crs"`
		Points []SitePointConfig `yaml:"points"`
	} `yaml:"sites"`

	MaxDistKm                 float64 `yaml:"maxDistKm"`
	DirectionsPerQuadrant     int     `yaml:"directionsPerQuadrant"`
	CircleSegmentsPerQuadrant int     `yaml:"circleSegmentsPerQuadrant"`
	Workers                   int     `yaml:"workers"`

	Output struct {
		Csv     string `yaml:"csv"`
		Kml     string `yaml:"kml"`
		GeoJson string `yaml:"geojson"`
	} `yaml:"output"`
}

// ReadRunConfig reads and structurally validates a YAML run configuration. Parameter ranges are
// validated later by the engine itself.
func ReadRunConfig(filename string) (*RunConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read run config %s", filename)
	}

	config := &RunConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse run config %s", filename)
	}

	if config.Obstructions.File == "" {
		return nil, errors.Errorf("Run config %s declares no obstruction file", filename)
	}
	if config.Sites.File == "" && len(config.Sites.Points) == 0 {
		return nil, errors.Errorf("Run config %s declares neither a site file nor inline site points", filename)
	}
	if config.Sites.File != "" && len(config.Sites.Points) > 0 {
		return nil, errors.Errorf("Run config %s declares both a site file and inline site points, use one of them", filename)
	}

	return config, nil
}

// LoadSiteLayer builds the site layer from the config, either from the referenced file or from
// the inline point list. The returned warning is non-empty when site names were dropped.
func (c *RunConfig) LoadSiteLayer() (*layer.SiteLayer, string, error) {
	if c.Sites.File != "" {
		return ReadSiteLayer(c.Sites.File, c.Sites.Crs.ToCrs())
	}

	points := make([]orb.Point, len(c.Sites.Points))
	names := make([]string, len(c.Sites.Points))
	namedSites := 0
	for i, point := range c.Sites.Points {
		points[i] = orb.Point{point.X, point.Y}
		names[i] = point.Name
		if point.Name != "" {
			namedSites++
		}
	}
	if namedSites != len(points) {
		names = nil
	}

	siteLayer, warning := layer.NewSiteLayer(c.Sites.Crs.ToCrs(), points, names)
	return siteLayer, warning, nil
}

// LoadObstructionLayer builds the obstruction layer from the config. GeoJSON files are read
// directly, .osm/.pbf files go through the OSM reader.
func (c *RunConfig) LoadObstructionLayer(reproject layer.ReprojectFunc) (*layer.ObstructionLayer, error) {
	file := c.Obstructions.File
	if isOsmFile(file) {
		return ReadOsmObstructionLayer(file, c.Obstructions.Crs.ToCrs(), reproject)
	}
	return ReadObstructionLayer(file, c.Obstructions.Crs.ToCrs())
}

func isOsmFile(filename string) bool {
	return strings.HasSuffix(filename, ".osm") || strings.HasSuffix(filename, ".pbf")
}
