package api

import (
	"fmt"
	"net/http"
)

// handleCreateGroup creates a group and returns it as stored.
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	in, err := decodeGroupInput(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	group, err := s.groups.Create(r.Context(), in)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// handleGetGroup fetches a single group.
func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	group, err := s.groups.Get(r.Context(), id)
	if err != nil {
		s.errorJSON(w, r, fmt.Errorf("group %d: %w", id, err))
		return
	}

	s.writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// handleListGroups returns every group. This will be an empty array if none exist.
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toGroupResponseList(groups))
}

// handleUpdateGroup replaces a group's fields.
func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	in, err := decodeGroupInput(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	group, err := s.groups.Update(r.Context(), id, in)
	if err != nil {
		s.errorJSON(w, r, fmt.Errorf("group %d: %w", id, err))
		return
	}

	s.writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// handleDeleteGroup deletes a group. Missing groups are a successful no-op.
func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	if err := s.groups.Delete(r.Context(), id); err != nil {
		s.errorJSON(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExtremeGroups reports the groups with the lowest and highest total capacity.
func (s *Server) handleExtremeGroups(w http.ResponseWriter, r *http.Request) {
	ext, err := s.aggregates.ExtremeGroupCapacities(r.Context())
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, extremesResponse{Min: ext.Min, Max: ext.Max})
}

// handleGroupBatteries lists the batteries in a group.
func (s *Server) handleGroupBatteries(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	batteries, err := s.aggregates.BatteriesInGroup(r.Context(), id)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toBatteryResponseList(batteries))
}
