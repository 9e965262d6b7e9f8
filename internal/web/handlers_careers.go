package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/web/templates"
)

// handleCareersPage serves a published careers page as HTML, or as JSON
// when the client asks for it.
func (s *Server) handleCareersPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.service.CareersPage(r.Context(), chi.URLParam(r, "slug"), parseJobQuery(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderPage(w, r, page)
}

// handlePreviewPage serves any company's page to holders of a preview
// token for it.
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	page, err := s.service.PreviewPage(r.Context(), chi.URLParam(r, "slug"), token, parseJobQuery(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Robots-Tag", "noindex")
	s.renderPage(w, r, page)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page core.CareersPage) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, page)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Careers(page, pageURL(r)).Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render careers page", "slug", page.Company.Slug, "error", err)
	}
}

// pageURL links to another page of the current listing, keeping filters
// and the preview token.
func pageURL(r *http.Request) templates.PageURL {
	base := *r.URL
	return func(n int) string {
		q := base.Query()
		q.Set("page", strconv.Itoa(n))
		u := url.URL{Path: base.Path, RawQuery: q.Encode()}
		return u.String()
	}
}

// handlePreviewToken issues a preview link token for one of the caller's
// companies. Like csv-import, the body is checked before the caller.
func (s *Server) handlePreviewToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyID string `json:"companyId"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(&req); err != nil || req.CompanyID == "" {
		s.badRequest(w, r, "companyId is required", err)
		return
	}

	tok, err := s.service.IssuePreviewToken(r.Context(), req.CompanyID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}
