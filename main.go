package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"

	"windfetch/fetch"
	ownIo "windfetch/io"
	"windfetch/web"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Quiet   bool        `help:"Suppress all diagnostic output." short:"q"`
	Version VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Compute struct {
		Config string `help:"The YAML run configuration." placeholder:"<config-file>" arg:"" type:"existingfile"`
	} `cmd:"" help:"Computes wind fetch vectors for the sites of the given run configuration."`
	Serve struct {
		Config string `help:"The YAML run configuration declaring the obstruction layer." placeholder:"<config-file>" arg:"" type:"existingfile"`
		Port   string `help:"The port to listen on." default:"8080"`
	} `cmd:"" help:"Serves the fetch API against the configured obstruction layer."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("windfetch"),
		kong.Description("Computes wind fetch vectors for marine sites against a coastline obstruction layer."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if cli.Quiet {
		sigolo.SetDefaultLogLevel(sigolo.LOG_ERROR)
	} else if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "compute <config>":
		compute(cli.Compute.Config)
	case "serve <config>":
		serve(cli.Serve.Config, cli.Serve.Port)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

func compute(configFile string) {
	config, err := ownIo.ReadRunConfig(configFile)
	sigolo.FatalCheck(err)

	obstructionLayer, err := config.LoadObstructionLayer(nil)
	sigolo.FatalCheck(err)

	siteLayer, nameWarning, err := config.LoadSiteLayer()
	sigolo.FatalCheck(err)
	if nameWarning != "" {
		sigolo.Warn(nameWarning)
	}

	collection, err := fetch.Compute(siteLayer, obstructionLayer, fetch.Parameters{
		MaxDistKm:                 config.MaxDistKm,
		DirectionsPerQuadrant:     config.DirectionsPerQuadrant,
		CircleSegmentsPerQuadrant: config.CircleSegmentsPerQuadrant,
		Workers:                   config.Workers,
		Quiet:                     cli.Quiet,
		Progress: func(site string, stage fetch.Stage) {
			sigolo.Debugf("Site '%s': %s", site, stage)
		},
	})
	sigolo.FatalCheck(err)

	for _, warning := range collection.Warnings {
		sigolo.Warnf("%s", warning)
	}

	for _, result := range collection.Results {
		stats := result.Stats()
		sigolo.Infof("Site '%s': mean fetch %.3f km, median %.3f km, most exposed towards %v°", result.Site.Name, stats.MeanM/1000, stats.MedianM/1000, stats.MostExposedDeg)
	}

	if config.Output.Csv != "" {
		err = ownIo.WriteFetchCollectionAsCsvFile(collection, config.Output.Csv)
		sigolo.FatalCheck(err)
		sigolo.Infof("Wrote CSV output to %s", config.Output.Csv)
	}
	if config.Output.Kml != "" {
		err = ownIo.WriteFetchCollectionAsKmlFile(collection, config.Output.Kml)
		sigolo.FatalCheck(err)
		sigolo.Infof("Wrote KML output to %s", config.Output.Kml)
	}
	if config.Output.GeoJson != "" {
		err = ownIo.WriteFetchCollectionAsGeoJsonFile(collection, config.Output.GeoJson)
		sigolo.FatalCheck(err)
		sigolo.Infof("Wrote GeoJSON output to %s", config.Output.GeoJson)
	}
}

func serve(configFile string, port string) {
	config, err := ownIo.ReadRunConfig(configFile)
	sigolo.FatalCheck(err)

	obstructionLayer, err := config.LoadObstructionLayer(nil)
	sigolo.FatalCheck(err)

	web.StartServer(port, obstructionLayer)
}
