package api

import (
	"fmt"
	"net/http"
)

// handleCreateBattery creates a battery and returns it as stored.
func (s *Server) handleCreateBattery(w http.ResponseWriter, r *http.Request) {
	in, err := decodeBatteryInput(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	battery, err := s.batteries.Create(r.Context(), in)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBatteryResponse(battery))
}

// handleGetBattery fetches a single battery.
func (s *Server) handleGetBattery(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	battery, err := s.batteries.Get(r.Context(), id)
	if err != nil {
		s.errorJSON(w, r, fmt.Errorf("battery %d: %w", id, err))
		return
	}

	s.writeJSON(w, http.StatusOK, toBatteryResponse(battery))
}

// handleListBatteries returns every battery.
func (s *Server) handleListBatteries(w http.ResponseWriter, r *http.Request) {
	batteries, err := s.batteries.List(r.Context())
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBatteryResponseList(batteries))
}

// handleFilterBatteries lists batteries with an exact setup_date match.
// The level parameter is coerced for compatibility but does not filter.
func (s *Server) handleFilterBatteries(w http.ResponseWriter, r *http.Request) {
	f, err := newFormReader(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}
	if !f.has("setup_date") {
		s.errorJSON(w, r, invalid("setup_date is required"))
		return
	}
	if f.has("level") {
		f.int("level")
	}
	if f.err != nil {
		s.errorJSON(w, r, f.err)
		return
	}

	batteries, err := s.batteries.ListBySetupDate(r.Context(), f.str("setup_date"))
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBatteryResponseList(batteries))
}

// handleUpdateBattery replaces a battery's fields, except its group.
func (s *Server) handleUpdateBattery(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	in, err := decodeBatteryInput(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	battery, err := s.batteries.Update(r.Context(), id, in)
	if err != nil {
		s.errorJSON(w, r, fmt.Errorf("battery %d: %w", id, err))
		return
	}

	s.writeJSON(w, http.StatusOK, toBatteryResponse(battery))
}

// handleDeleteBattery deletes a battery. Missing batteries are a successful no-op.
func (s *Server) handleDeleteBattery(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	if err := s.batteries.Delete(r.Context(), id); err != nil {
		s.errorJSON(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
