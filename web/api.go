package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"

	"windfetch/fetch"
	ownIo "windfetch/io"
	"windfetch/layer"
)

// fetchRequest is the JSON body of a /fetch call. Site coordinates must be in the coordinate
// system of the preloaded obstruction layer.
type fetchRequest struct {
	Sites []struct {
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
		Name string  `json:"name"`
	} `json:"sites"`
	MaxDistKm                 float64 `json:"maxDistKm"`
	DirectionsPerQuadrant     int     `json:"directionsPerQuadrant"`
	CircleSegmentsPerQuadrant int     `json:"circleSegmentsPerQuadrant"`
}

// StartServer serves the fetch API against one preloaded obstruction layer.
func StartServer(port string, obstructions *layer.ObstructionLayer) {
	r := initRouter(obstructions)
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

// StartServerTls is StartServer with TLS support.
func StartServerTls(port string, certFile string, keyFile string, obstructions *layer.ObstructionLayer) {
	r := initRouter(obstructions)
	sigolo.Infof("Start server with TLS support on port %s", port)
	err := http.ListenAndServeTLS(":"+port, certFile, keyFile, r)
	sigolo.FatalCheck(err)
}

func initRouter(obstructions *layer.ObstructionLayer) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/fetch", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		bodyBytes, err := io.ReadAll(request.Body)
		if err != nil {
			sigolo.Errorf("Error reading HTTP body of request to '/fetch': %+v", err)
			writer.WriteHeader(http.StatusInternalServerError)
			writeErrorResponse(writer, "Error reading HTTP body.")
			return
		}

		requestBody := fetchRequest{}
		err = json.Unmarshal(bodyBytes, &requestBody)
		if err != nil {
			sigolo.Errorf("Error parsing request: %+v", err)
			writer.WriteHeader(http.StatusBadRequest)
			writeErrorResponse(writer, fmt.Sprintf("Error parsing request: %+v", err))
			return
		}

		points := make([]orb.Point, len(requestBody.Sites))
		names := make([]string, len(requestBody.Sites))
		namedSites := 0
		for i, site := range requestBody.Sites {
			points[i] = orb.Point{site.X, site.Y}
			names[i] = site.Name
			if site.Name != "" {
				namedSites++
			}
		}
		if namedSites != len(points) {
			names = nil
		}

		siteLayer, nameWarning := layer.NewSiteLayer(obstructions.CRS(), points, names)
		if nameWarning != "" {
			sigolo.Warnf("Request to '/fetch': %s", nameWarning)
		}

		collection, err := fetch.Compute(siteLayer, obstructions, fetch.Parameters{
			MaxDistKm:                 requestBody.MaxDistKm,
			DirectionsPerQuadrant:     requestBody.DirectionsPerQuadrant,
			CircleSegmentsPerQuadrant: requestBody.CircleSegmentsPerQuadrant,
		})
		if err != nil {
			sigolo.Errorf("Error computing fetch: %+v", err)
			writer.WriteHeader(http.StatusBadRequest)
			writeErrorResponse(writer, fmt.Sprintf("Error computing fetch: %+v", err))
			return
		}

		writer.Header().Set("Content-Type", "application/geo+json")
		err = ownIo.WriteFetchCollectionAsGeoJson(collection, writer)
		if err != nil {
			sigolo.Errorf("Error writing fetch response: %+v", err)
		}
	}).Methods(http.MethodPost)

	return r
}

func writeErrorResponse(writer http.ResponseWriter, message string) {
	_, err := writer.Write([]byte(message))
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
