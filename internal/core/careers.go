package core

import (
	"net/url"
	"sort"
	"strings"
)

// Page size bounds for the public job list.
const (
	DefaultPageSize = 10
	MinPageSize     = 5
	MaxPageSize     = 100
)

// JobQuery filters and pages the public job list.
type JobQuery struct {
	Q          string // title contains, case-insensitive
	Location   string // location contains, case-insensitive
	Type       string // exact job type
	Department string // exact department
	Page       int
	PageSize   int
}

// Facets are the distinct filter values offered for a job list.
type Facets struct {
	Locations   []string `json:"locations"`
	JobTypes    []string `json:"job_types"`
	Departments []string `json:"departments"`
}

// JobPage is one page of filtered jobs.
type JobPage struct {
	Jobs       []Job `json:"jobs"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// CareersPage is everything a careers page renders.
type CareersPage struct {
	Company  Company          `json:"company"`
	Sections []ContentSection `json:"sections"`
	Jobs     JobPage          `json:"jobs"`
	Facets   Facets           `json:"facets"`
	Query    JobQuery         `json:"-"`
	Preview  bool             `json:"preview"`
	EmbedURL string           `json:"embed_url,omitempty"`
	// PreviewToken is the verified token of a preview, carried into links.
	PreviewToken string `json:"-"`
}

// FilterJobs returns the jobs matching every non-empty criterion of q.
// Paging fields are ignored.
func FilterJobs(jobs []Job, q JobQuery) []Job {
	title := strings.ToLower(strings.TrimSpace(q.Q))
	loc := strings.ToLower(strings.TrimSpace(q.Location))

	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if title != "" && !strings.Contains(strings.ToLower(j.Title), title) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(j.Location), loc) {
			continue
		}
		if q.Type != "" && j.JobType != q.Type {
			continue
		}
		if q.Department != "" && (j.Department == nil || *j.Department != q.Department) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Paginate cuts one page out of jobs. The page size is clamped to
// [MinPageSize, MaxPageSize] (zero selects DefaultPageSize) and the page to
// [1, TotalPages]. TotalPages is at least 1.
func Paginate(jobs []Job, page, size int) JobPage {
	switch {
	case size == 0:
		size = DefaultPageSize
	case size < MinPageSize:
		size = MinPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	total := len(jobs)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return JobPage{
		Jobs:       jobs[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
	}
}

// CollectFacets returns the sorted distinct locations, job types and
// departments of jobs.
func CollectFacets(jobs []Job) Facets {
	locs := map[string]bool{}
	types := map[string]bool{}
	depts := map[string]bool{}
	for _, j := range jobs {
		if j.Location != "" {
			locs[j.Location] = true
		}
		if j.JobType != "" {
			types[j.JobType] = true
		}
		if j.Department != nil && *j.Department != "" {
			depts[*j.Department] = true
		}
	}
	return Facets{
		Locations:   sortedKeys(locs),
		JobTypes:    sortedKeys(types),
		Departments: sortedKeys(depts),
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// VideoEmbedURL turns a YouTube or Vimeo page URL into its embed URL.
// Other URLs are returned unchanged; the empty string stays empty.
func VideoEmbedURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" && u.Path == "/watch" {
			return "https://www.youtube.com/embed/" + id
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case "vimeo.com":
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return raw
}
