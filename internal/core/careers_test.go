package core

import (
	"fmt"
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }

func sampleJobs() []Job {
	return []Job{
		{ID: "1", Title: "Backend Engineer", Location: "Berlin, DE", JobType: "full-time", Department: strp("Engineering")},
		{ID: "2", Title: "Product Designer", Location: "Paris", JobType: "contract", Department: strp("Design")},
		{ID: "3", Title: "Frontend engineer", Location: "Remote", JobType: "full-time", Department: strp("Engineering")},
		{ID: "4", Title: "Intern", Location: "berlin", JobType: "internship"},
	}
}

func ids(jobs []Job) []string {
	out := []string{}
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilterJobs(t *testing.T) {
	tests := []struct {
		name string
		q    JobQuery
		want []string
	}{
		{"no filter", JobQuery{}, []string{"1", "2", "3", "4"}},
		{"title case-insensitive", JobQuery{Q: "ENGINEER"}, []string{"1", "3"}},
		{"location contains", JobQuery{Location: "berlin"}, []string{"1", "4"}},
		{"exact type", JobQuery{Type: "full-time"}, []string{"1", "3"}},
		{"exact department", JobQuery{Department: "Design"}, []string{"2"}},
		{"combined", JobQuery{Q: "engineer", Location: "remote", Type: "full-time", Department: "Engineering"}, []string{"3"}},
		{"no match", JobQuery{Type: "part-time"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(FilterJobs(sampleJobs(), tt.q)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterJobs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	jobs := make([]Job, 23)
	for i := range jobs {
		jobs[i].ID = fmt.Sprint(i)
	}

	tests := []struct {
		name                    string
		jobs                    []Job
		page, size              int
		wantPage, wantSize      int
		wantTotalPages, wantLen int
	}{
		{"defaults", jobs, 0, 0, 1, 10, 3, 10},
		{"last partial page", jobs, 3, 10, 3, 10, 3, 3},
		{"page past end clamps", jobs, 9, 10, 3, 10, 3, 3},
		{"small size clamps to min", jobs, 1, 2, 1, 5, 5, 5},
		{"large size clamps to max", jobs, 1, 500, 1, 100, 1, 23},
		{"empty list has one page", nil, 4, 10, 1, 10, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.jobs, tt.page, tt.size)
			if got.Page != tt.wantPage || got.PageSize != tt.wantSize || got.TotalPages != tt.wantTotalPages || len(got.Jobs) != tt.wantLen {
				t.Errorf("Paginate() = page %d size %d pages %d len %d", got.Page, got.PageSize, got.TotalPages, len(got.Jobs))
			}
			if got.Total != len(tt.jobs) {
				t.Errorf("Total = %d, want %d", got.Total, len(tt.jobs))
			}
		})
	}
}

func TestCollectFacets(t *testing.T) {
	got := CollectFacets(sampleJobs())
	want := Facets{
		Locations:   []string{"Berlin, DE", "Paris", "Remote", "berlin"},
		JobTypes:    []string{"contract", "full-time", "internship"},
		Departments: []string{"Design", "Engineering"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectFacets() = %+v, want %+v", got, want)
	}
}

func TestVideoEmbedURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"https://youtube.com/watch?v=abc123&t=10", "https://www.youtube.com/embed/abc123"},
		{"https://youtu.be/xyz", "https://www.youtube.com/embed/xyz"},
		{"https://vimeo.com/76979871", "https://player.vimeo.com/video/76979871"},
		{"https://example.com/video.mp4", "https://example.com/video.mp4"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := VideoEmbedURL(tt.in); got != tt.want {
			t.Errorf("VideoEmbedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
