package api

import "net/http"

// healthResponse mirrors the database pool statistics alongside the status.
type healthResponse struct {
	Status   string         `json:"status"`
	Database databaseHealth `json:"database"`
}

type databaseHealth struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

// handleHealth reports whether the database answers a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.WithError(err).Warn("health check: database ping failed")
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	stats := s.db.Stats()
	s.writeJSON(w, code, healthResponse{
		Status: status,
		Database: databaseHealth{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
		},
	})
}
