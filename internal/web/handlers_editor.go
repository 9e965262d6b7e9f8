package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// handleGetCompany returns the caller's company, creating it on first use.
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.service.EnsureCompany(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	var patch core.CompanyPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.badRequest(w, r, "Invalid company update", err)
		return
	}

	c, err := s.service.UpdateCompany(r.Context(), patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.service.ListSections(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	section, err := s.service.AddSection(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var patch core.SectionPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.badRequest(w, r, "Invalid section update", err)
		return
	}

	section, err := s.service.UpdateSection(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSection(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMoveSection swaps a section with its neighbour and returns the
// reordered list.
func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	dir := core.MoveDirection(r.URL.Query().Get("dir"))
	sections, err := s.service.MoveSection(r.Context(), chi.URLParam(r, "id"), dir)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.ListJobs(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleAddJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.service.AddJob(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var patch core.JobPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.badRequest(w, r, "Invalid job update", err)
		return
	}

	job, err := s.service.UpdateJob(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetJobActive shows or hides a job on the public page.
func (s *Server) handleSetJobActive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active *bool `json:"active"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		s.badRequest(w, r, "Invalid request", err)
		return
	}
	if body.Active == nil {
		s.badRequest(w, r, "active is required", nil)
		return
	}

	job, err := s.service.SetJobActive(r.Context(), chi.URLParam(r, "id"), *body.Active)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
