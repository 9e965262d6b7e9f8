package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/store"
)

const testSecret = "test-preview-secret-0123456789"

func newService(t *testing.T) (*core.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	svc, err := core.NewService(mem, core.Options{PreviewSecret: testSecret})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, mem
}

func as(userID string) context.Context {
	return core.ContextWithUser(context.Background(), core.User{ID: userID})
}

func ptr[T any](v T) *T { return &v }

func TestService_RequiresUser(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.EnsureCompany(context.Background())
	if !core.IsKind(err, core.KindUnauthenticated) {
		t.Errorf("EnsureCompany() = %v, want unauthenticated", err)
	}
}

func TestService_EnsureCompany(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	c, err := svc.EnsureCompany(ctx)
	if err != nil {
		t.Fatalf("EnsureCompany() error = %v", err)
	}
	if c.Name != core.DefaultCompanyName || c.PrimaryColor != "#3B82F6" || c.SecondaryColor != "#1E40AF" {
		t.Errorf("defaults = %+v", c)
	}
	if !strings.HasPrefix(c.Slug, "company-") || c.IsPublished {
		t.Errorf("slug = %q, published = %v", c.Slug, c.IsPublished)
	}

	again, err := svc.EnsureCompany(ctx)
	if err != nil || again.ID != c.ID {
		t.Errorf("second EnsureCompany() = %v, %v", again.ID, err)
	}
}

func TestService_UpdateCompany(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	c, err := svc.UpdateCompany(ctx, core.CompanyPatch{Slug: ptr("  Acme-Corp "), Tagline: ptr("We ship")})
	if err != nil {
		t.Fatalf("UpdateCompany() error = %v", err)
	}
	if c.Slug != "acme-corp" || c.Tagline == nil || *c.Tagline != "We ship" {
		t.Errorf("company = %+v", c)
	}

	_, err = svc.UpdateCompany(ctx, core.CompanyPatch{PrimaryColor: ptr("blue"), Name: ptr("")})
	if !core.IsKind(err, core.KindInvalidInput) {
		t.Fatalf("invalid patch error = %v", err)
	}
	var e *core.Error
	if !errors.As(err, &e) || len(e.Details) != 2 {
		t.Errorf("details = %v", e.Details)
	}

	_, err = svc.UpdateCompany(as("user-2"), core.CompanyPatch{Slug: ptr("acme-corp")})
	if !core.IsKind(err, core.KindConflict) {
		t.Errorf("taken slug error = %v, want conflict", err)
	}
}

func TestService_Sections(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	var ids []string
	for i := 0; i < 3; i++ {
		s, err := svc.AddSection(ctx)
		if err != nil {
			t.Fatalf("AddSection() error = %v", err)
		}
		if s.Position != i || s.Type != core.SectionCustom || s.Title != "New Section" || !s.IsVisible {
			t.Errorf("section %d = %+v", i, s)
		}
		ids = append(ids, s.ID)
	}

	moved, err := svc.MoveSection(ctx, ids[2], core.MoveUp)
	if err != nil {
		t.Fatalf("MoveSection() error = %v", err)
	}
	if moved[1].ID != ids[2] || moved[2].ID != ids[1] {
		t.Errorf("order after move = %v", sectionIDs(moved))
	}

	if err := svc.DeleteSection(ctx, ids[0]); err != nil {
		t.Fatalf("DeleteSection() error = %v", err)
	}
	list, err := svc.ListSections(ctx)
	if err != nil {
		t.Fatalf("ListSections() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != ids[2] || list[0].Position != 0 || list[1].Position != 1 {
		t.Errorf("after delete = %+v", list)
	}

	updated, err := svc.UpdateSection(ctx, ids[1], core.SectionPatch{Title: ptr("About us"), Type: ptr(core.SectionAbout), Position: ptr(7)})
	if err != nil {
		t.Fatalf("UpdateSection() error = %v", err)
	}
	if updated.Title != "About us" || updated.Position != 1 {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.MoveSection(ctx, ids[1], "sideways"); !core.IsKind(err, core.KindInvalidInput) {
		t.Errorf("bad direction error = %v", err)
	}
	if _, err := svc.UpdateSection(as("intruder"), ids[1], core.SectionPatch{Title: ptr("x")}); !core.IsKind(err, core.KindForbidden) {
		t.Errorf("foreign section error = %v, want forbidden", err)
	}
	if err := svc.DeleteSection(ctx, "missing"); !core.IsKind(err, core.KindNotFound) {
		t.Errorf("missing section error = %v, want not found", err)
	}
}

func sectionIDs(sections []core.ContentSection) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}

func TestService_Jobs(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	j, err := svc.AddJob(ctx)
	if err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if j.Title != "New Job Opening" || j.Location != "Remote" || j.JobType != core.JobTypeFullTime || !j.IsActive {
		t.Errorf("job = %+v", j)
	}

	if _, err := svc.UpdateJob(ctx, j.ID, core.JobPatch{JobType: ptr("gig")}); !core.IsKind(err, core.KindInvalidInput) {
		t.Errorf("bad job type error = %v", err)
	}

	j, err = svc.SetJobActive(ctx, j.ID, false)
	if err != nil || j.IsActive {
		t.Fatalf("SetJobActive() = %+v, %v", j, err)
	}

	if err := svc.DeleteJob(as("intruder"), j.ID); !core.IsKind(err, core.KindForbidden) {
		t.Errorf("foreign delete error = %v", err)
	}
	if err := svc.DeleteJob(ctx, j.ID); err != nil {
		t.Fatalf("DeleteJob() error = %v", err)
	}
	jobs, _ := svc.ListJobs(ctx)
	if len(jobs) != 0 {
		t.Errorf("jobs = %d, want 0", len(jobs))
	}
}

func TestService_ImportJobs(t *testing.T) {
	svc, mem := newService(t)
	ctx := as("user-1")
	c, _ := svc.EnsureCompany(ctx)

	rows := []core.RawCsvRow{
		{Title: "Engineer", Location: "Berlin", EmploymentType: "Full time"},
		{Title: "Designer", Location: "Paris", EmploymentType: "Temporary", Department: "Design"},
	}

	n, err := svc.ImportJobs(ctx, c.ID, rows)
	if err != nil || n != 2 {
		t.Fatalf("ImportJobs() = %d, %v", n, err)
	}
	stored, _ := mem.ListJobs(context.Background(), c.ID, false)
	if len(stored) != 2 {
		t.Errorf("stored = %d", len(stored))
	}

	n, err = svc.ImportJobs(ctx, c.ID, nil)
	if err != nil || n != 0 {
		t.Errorf("empty ImportJobs() = %d, %v", n, err)
	}

	_, err = svc.ImportJobs(ctx, c.ID, []core.RawCsvRow{rows[0], {Title: "x"}})
	if !core.IsKind(err, core.KindValidationFailure) || !strings.Contains(err.Error(), "Row 2: missing location,employment_type") {
		t.Errorf("invalid rows error = %v", err)
	}

	if _, err := svc.ImportJobs(as("intruder"), c.ID, rows); !core.IsKind(err, core.KindForbidden) {
		t.Errorf("foreign company error = %v", err)
	}
	if _, err := svc.ImportJobs(context.Background(), c.ID, rows); !core.IsKind(err, core.KindUnauthenticated) {
		t.Errorf("anonymous error = %v", err)
	}
}

func csvInput(body string) core.FileInput {
	return core.FileInput{Name: "jobs.csv", ContentType: "text/csv", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestService_ImportSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	view, err := svc.StartImport(ctx, csvInput("title,location,employment_type\nA,Berlin,Contract\nB,Paris,Full time\n"))
	if err != nil {
		t.Fatalf("StartImport() error = %v", err)
	}
	if view.ID == "" || view.State != core.StateComplete || view.Total != 2 || len(view.Preview) != 2 {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Notices) == 0 || view.Notices[0].Title != "CSV processed successfully!" {
		t.Errorf("notices = %+v", view.Notices)
	}

	if _, err := svc.Import(as("intruder"), view.ID); !core.IsKind(err, core.KindNotFound) {
		t.Errorf("foreign session error = %v", err)
	}

	view, n, err := svc.ConfirmImport(ctx, view.ID)
	if err != nil || n != 2 || view.State != core.StateIdle {
		t.Fatalf("ConfirmImport() = %+v, %d, %v", view, n, err)
	}
	jobs, _ := svc.ListJobs(ctx)
	if len(jobs) != 2 {
		t.Errorf("jobs = %d, want 2", len(jobs))
	}

	if _, _, err := svc.ConfirmImport(ctx, view.ID); !core.IsKind(err, core.KindConflict) {
		t.Errorf("second confirm error = %v", err)
	}
}

func TestService_ImportFailureAndRetry(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	view, err := svc.StartImport(ctx, csvInput("title,location\nA,B\n"))
	if !core.IsImportFailure(err) {
		t.Fatalf("StartImport() error = %v, want import failure", err)
	}
	if view.State != core.StateError || view.Error != "Missing required fields: employment_type" {
		t.Errorf("view = %+v", view)
	}

	if _, err := svc.SelectFile(ctx, view.ID, csvInput("title,location,employment_type\nA,B,C\n")); !core.IsKind(err, core.KindConflict) {
		t.Errorf("select while failed = %v, want conflict", err)
	}

	view, err = svc.RetryImport(ctx, view.ID)
	if err != nil || view.State != core.StateIdle {
		t.Fatalf("RetryImport() = %+v, %v", view, err)
	}

	view, err = svc.SelectFile(ctx, view.ID, csvInput("title,location,employment_type\nA,B,C\n"))
	if err != nil || view.State != core.StateComplete {
		t.Fatalf("SelectFile() = %+v, %v", view, err)
	}

	view, err = svc.DiscardImport(ctx, view.ID)
	if err != nil || view.State != core.StateIdle || view.Total != 0 {
		t.Errorf("DiscardImport() = %+v, %v", view, err)
	}
}

func TestService_CareersPage(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")

	c, _ := svc.UpdateCompany(ctx, core.CompanyPatch{Slug: ptr("acme"), VideoURL: ptr("https://youtu.be/abc")})
	if _, err := svc.CareersPage(context.Background(), "acme", core.JobQuery{}); !core.IsKind(err, core.KindNotFound) {
		t.Errorf("unpublished page error = %v, want not found", err)
	}

	hidden, _ := svc.AddSection(ctx)
	if _, err := svc.UpdateSection(ctx, hidden.ID, core.SectionPatch{IsVisible: ptr(false)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSection(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ImportJobs(ctx, c.ID, []core.RawCsvRow{
		{Title: "Engineer", Location: "Berlin", EmploymentType: "Full time"},
		{Title: "Designer", Location: "Paris", EmploymentType: "Contract"},
	}); err != nil {
		t.Fatal(err)
	}
	inactive, _ := svc.AddJob(ctx)
	if _, err := svc.SetJobActive(ctx, inactive.ID, false); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateCompany(ctx, core.CompanyPatch{IsPublished: ptr(true)}); err != nil {
		t.Fatal(err)
	}

	page, err := svc.CareersPage(context.Background(), "acme", core.JobQuery{Location: "ber"})
	if err != nil {
		t.Fatalf("CareersPage() error = %v", err)
	}
	if len(page.Sections) != 1 || page.Jobs.Total != 1 || page.Jobs.Jobs[0].Title != "Engineer" {
		t.Errorf("page = %+v", page)
	}
	if len(page.Facets.Locations) != 2 || page.EmbedURL != "https://www.youtube.com/embed/abc" || page.Preview {
		t.Errorf("facets = %+v, embed = %q", page.Facets, page.EmbedURL)
	}

	if _, err := svc.CareersPage(context.Background(), "nobody", core.JobQuery{}); !core.IsKind(err, core.KindNotFound) {
		t.Errorf("unknown slug error = %v", err)
	}
}

func TestService_PreviewPage(t *testing.T) {
	svc, _ := newService(t)
	ctx := as("user-1")
	c, _ := svc.UpdateCompany(ctx, core.CompanyPatch{Slug: ptr("acme")})
	hidden, _ := svc.AddSection(ctx)
	_, _ = svc.UpdateSection(ctx, hidden.ID, core.SectionPatch{IsVisible: ptr(false)})

	if _, err := svc.IssuePreviewToken(as("intruder"), c.ID); !core.IsKind(err, core.KindForbidden) {
		t.Errorf("foreign token error = %v", err)
	}

	tok, err := svc.IssuePreviewToken(ctx, c.ID)
	if err != nil || tok.Token == "" {
		t.Fatalf("IssuePreviewToken() = %+v, %v", tok, err)
	}

	page, err := svc.PreviewPage(context.Background(), "acme", tok.Token, core.JobQuery{})
	if err != nil {
		t.Fatalf("PreviewPage() error = %v", err)
	}
	if !page.Preview || len(page.Sections) != 1 {
		t.Errorf("preview page = %+v", page)
	}

	other, _ := svc.UpdateCompany(as("user-2"), core.CompanyPatch{Slug: ptr("globex")})
	otherTok, _ := svc.IssuePreviewToken(as("user-2"), other.ID)
	if _, err := svc.PreviewPage(context.Background(), "acme", otherTok.Token, core.JobQuery{}); !core.IsKind(err, core.KindForbidden) {
		t.Errorf("token for another company = %v, want forbidden", err)
	}
	if _, err := svc.PreviewPage(context.Background(), "acme", "", core.JobQuery{}); !core.IsKind(err, core.KindForbidden) {
		t.Errorf("missing token = %v, want forbidden", err)
	}
}
