package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

func TestJobTypeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"full-time", "Full-Time"},
		{"contract", "Contract"},
		{"internship", "Internship"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := JobTypeLabel(tt.in); got != tt.want {
			t.Errorf("JobTypeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCareers_EscapesCompanyContent(t *testing.T) {
	page := core.CareersPage{
		Company: core.Company{Name: `<script>alert("x")</script>`, PrimaryColor: "#000000", SecondaryColor: "#ffffff"},
		Sections: []core.ContentSection{
			{Title: "About", Content: "<b>bold</b>", IsVisible: true},
		},
		Jobs: core.JobPage{
			Jobs:       []core.Job{{Title: "Engineer", Location: "Berlin", JobType: "full-time", IsActive: true}},
			Page:       1,
			PageSize:   10,
			Total:      1,
			TotalPages: 1,
		},
	}

	var b strings.Builder
	if err := Careers(page, nil).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := b.String()

	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>bold</b>") {
		t.Errorf("unescaped content in output: %s", out)
	}
	for _, want := range []string{"&lt;script&gt;", "Engineer", "Full-Time", "1 open position<"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Preview mode") {
		t.Error("public page rendered the preview banner")
	}
}

func TestCareers_Pagination(t *testing.T) {
	page := core.CareersPage{
		Company: core.Company{Name: "Acme"},
		Jobs:    core.JobPage{Jobs: []core.Job{{Title: "A"}}, Page: 2, PageSize: 5, Total: 11, TotalPages: 3},
	}
	pageURL := func(n int) string { return "/acme/careers?page=" + string(rune('0'+n)) }

	var b strings.Builder
	if err := Careers(page, pageURL).Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := b.String()

	for _, want := range []string{`href="/acme/careers?page=1"`, `href="/acme/careers?page=3"`, "Page 2 of 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
