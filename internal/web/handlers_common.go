package web

// This file contains shared utilities and helper functions used across handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// maxJSONBody caps JSON request bodies (1MB). CSV files go through the
// multipart import routes instead.
const maxJSONBody = 1 << 20

// decodeJSON reads one JSON value from the request body into v.
// Unknown fields are rejected so typos in patch bodies are not silently
// ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseJobQuery reads the careers page filters. Paging values are clamped
// later by core.Paginate.
func parseJobQuery(r *http.Request) core.JobQuery {
	q := r.URL.Query()
	return core.JobQuery{
		Q:          strings.TrimSpace(q.Get("q")),
		Location:   strings.TrimSpace(q.Get("location")),
		Type:       strings.TrimSpace(q.Get("type")),
		Department: strings.TrimSpace(q.Get("department")),
		Page:       parseIntParam(r, "page", 1),
		PageSize:   parseIntParam(r, "page_size", 0),
	}
}
