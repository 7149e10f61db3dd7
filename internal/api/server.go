package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/intermernet/battery-registry/internal/auth"
	"github.com/intermernet/battery-registry/internal/config"
	"github.com/intermernet/battery-registry/internal/database"
	"github.com/intermernet/battery-registry/internal/fleet"
)

// Server is the main struct for the API. It holds all dependencies required
// by the HTTP handlers, injected at startup so handlers are easy to test.
type Server struct {
	config     *config.Config
	db         *database.Service
	gate       *auth.Gate
	groups     *fleet.GroupService
	batteries  *fleet.BatteryService
	aggregates *fleet.AggregateService
	metrics    *metrics
	log        logrus.FieldLogger
}

// Deps groups the dependencies NewServer wires together.
type Deps struct {
	Config *config.Config
	DB     *database.Service
	Gate   *auth.Gate
	Logger logrus.FieldLogger
}

// NewServer creates the API server and the entity services it routes to.
func NewServer(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		config:     deps.Config,
		db:         deps.DB,
		gate:       deps.Gate,
		groups:     fleet.NewGroupService(deps.DB, log),
		batteries:  fleet.NewBatteryService(deps.DB, log),
		aggregates: fleet.NewAggregateService(deps.DB),
		metrics:    newMetrics(),
		log:        log,
	}
}

// writeJSON is a helper method for sending JSON responses. It marshals the
// data, applies any extra headers and sets the 'Content-Type' header.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}, headers ...http.Header) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		// We can't be sure the JSON error format would marshal either.
		http.Error(w, "Internal Server Error: Failed to marshal JSON", http.StatusInternalServerError)
		return
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}
