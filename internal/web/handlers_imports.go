package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// multipartOverhead is allowed on top of the file size limit for the form
// boundaries and headers of an upload request.
const multipartOverhead = 1 << 20

// handleStartImport opens an import session and runs the uploaded file
// through it. Import failures are part of the returned session, so the
// response is 201 whether or not the file was accepted.
func (s *Server) handleStartImport(w http.ResponseWriter, r *http.Request) {
	f, cleanup, ok := s.readFile(w, r)
	if !ok {
		return
	}
	defer cleanup()

	view, err := s.service.StartImport(r.Context(), f)
	s.writeImport(w, r, http.StatusCreated, view, err)
}

// handleSelectFile runs another file through an idle session, as after
// a retry.
func (s *Server) handleSelectFile(w http.ResponseWriter, r *http.Request) {
	f, cleanup, ok := s.readFile(w, r)
	if !ok {
		return
	}
	defer cleanup()

	view, err := s.service.SelectFile(r.Context(), chi.URLParam(r, "id"), f)
	s.writeImport(w, r, http.StatusOK, view, err)
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Import(r.Context(), chi.URLParam(r, "id"))
	s.writeImport(w, r, http.StatusOK, view, err)
}

// ConfirmResponse is returned when a batch has been stored.
type ConfirmResponse struct {
	Import   core.ImportView `json:"import"`
	Imported int             `json:"imported"`
}

func (s *Server) handleConfirmImport(w http.ResponseWriter, r *http.Request) {
	view, n, err := s.service.ConfirmImport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ConfirmResponse{Import: view, Imported: n})
}

func (s *Server) handleDiscardImport(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.DiscardImport(r.Context(), chi.URLParam(r, "id"))
	s.writeImport(w, r, http.StatusOK, view, err)
}

func (s *Server) handleRetryImport(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.RetryImport(r.Context(), chi.URLParam(r, "id"))
	s.writeImport(w, r, http.StatusOK, view, err)
}

// writeImport writes view unless err is a request error rather than an
// import failure recorded in the session.
func (s *Server) writeImport(w http.ResponseWriter, r *http.Request, status int, view core.ImportView, err error) {
	if err != nil && !core.IsImportFailure(err) {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, status, view)
}

// readFile extracts the "file" part of a multipart upload. On failure it
// has already written the response.
func (s *Server) readFile(w http.ResponseWriter, r *http.Request) (core.FileInput, func(), bool) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.respondErrorStatus(w, r, &core.Error{
				Kind:    core.KindInputRejected,
				Message: fmt.Sprintf("File size must be less than %dMB", maxSize/(1024*1024)),
				Err:     err,
			}, http.StatusRequestEntityTooLarge)
		case errors.Is(err, http.ErrMissingFile):
			s.badRequest(w, r, "Please select a CSV file to upload", err)
		default:
			s.badRequest(w, r, "Invalid upload", err)
		}
		return core.FileInput{}, nil, false
	}

	cleanup := func() {
		file.Close()
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}
	return core.FileInput{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, cleanup, true
}

// csvImportRequest is the body of POST /api/csv-import.
type csvImportRequest struct {
	CompanyID string          `json:"companyId"`
	Jobs      json.RawMessage `json:"jobs"`
}

// handleCSVImport stores rows that were parsed client-side. The body is
// checked before the caller: a malformed request is 400 even when the
// caller is not signed in.
func (s *Server) handleCSVImport(w http.ResponseWriter, r *http.Request) {
	var req csvImportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(&req); err != nil || req.CompanyID == "" || !isJSONArray(req.Jobs) {
		s.badRequest(w, r, "companyId and jobs[] are required", err)
		return
	}

	var rows []core.RawCsvRow
	if err := json.Unmarshal(req.Jobs, &rows); err != nil {
		s.badRequest(w, r, "jobs[] must hold objects of text fields", err)
		return
	}

	n, err := s.service.ImportJobs(r.Context(), req.CompanyID, rows)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"accepted": n})
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
