package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// Postgres error codes the store translates.
const (
	pgUniqueViolation    = "23505"
	pgInvalidTextFormat  = "22P02"
	pgForeignKeyViolated = "23503"
)

// Postgres implements core.Store on a pgx connection or pool.
type Postgres struct {
	companies *Table[core.Company]
	sections  *Table[core.ContentSection]
	jobs      *Table[core.Job]
	now       func() time.Time
}

// NewPostgres returns a store that runs every statement on db.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{
		companies: MustTable[core.Company](db, Companies),
		sections:  MustTable[core.ContentSection](db, Sections),
		jobs:      MustTable[core.Job](db, Jobs),
		now:       time.Now,
	}
}

var _ core.Store = (*Postgres)(nil)

// translate maps driver errors onto the core sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", core.ErrDuplicate, pgErr.ConstraintName)
	case pgInvalidTextFormat:
		// A malformed uuid cannot match any row.
		return fmt.Errorf("%w: %s", core.ErrNotFound, pgErr.Message)
	case pgForeignKeyViolated:
		return fmt.Errorf("%w: %s", core.ErrNotFound, pgErr.ConstraintName)
	}
	return err
}

func (p *Postgres) CompanyByID(ctx context.Context, id string) (core.Company, error) {
	c, err := p.companies.Select().Eq("id", id).One(ctx)
	return c, translate(err)
}

func (p *Postgres) CompanyByUser(ctx context.Context, userID string) (core.Company, error) {
	c, err := p.companies.Select().Eq("user_id", userID).One(ctx)
	return c, translate(err)
}

func (p *Postgres) CompanyBySlug(ctx context.Context, slug string) (core.Company, error) {
	c, err := p.companies.Select().Eq("slug", slug).One(ctx)
	return c, translate(err)
}

func (p *Postgres) CreateCompany(ctx context.Context, c core.Company) (core.Company, error) {
	rows, err := p.companies.Insert(ctx, Record{
		"user_id":         c.UserID,
		"slug":            c.Slug,
		"name":            c.Name,
		"logo_url":        c.LogoURL,
		"banner_url":      c.BannerURL,
		"video_url":       c.VideoURL,
		"primary_color":   c.PrimaryColor,
		"secondary_color": c.SecondaryColor,
		"tagline":         c.Tagline,
		"is_published":    c.IsPublished,
	})
	if err != nil {
		return core.Company{}, translate(err)
	}
	return rows[0], nil
}

func (p *Postgres) UpdateCompany(ctx context.Context, id string, patch core.CompanyPatch) (core.Company, error) {
	rec := companyRecord(patch)
	if len(rec) > 0 {
		rec["updated_at"] = p.now().UTC()
	}
	c, err := p.companies.Update(ctx, id, rec)
	return c, translate(err)
}

func (p *Postgres) ListSections(ctx context.Context, companyID string, visibleOnly bool) ([]core.ContentSection, error) {
	out, err := p.sections.Select().
		Eq("company_id", companyID).
		Filter("is_visible", only(visibleOnly)).
		Order("position", Asc).
		Order("created_at", Asc).
		All(ctx)
	return out, translate(err)
}

func (p *Postgres) SectionByID(ctx context.Context, id string) (core.ContentSection, error) {
	s, err := p.sections.Select().Eq("id", id).One(ctx)
	return s, translate(err)
}

func (p *Postgres) CreateSection(ctx context.Context, s core.ContentSection) (core.ContentSection, error) {
	rows, err := p.sections.Insert(ctx, Record{
		"company_id": s.CompanyID,
		"type":       string(s.Type),
		"title":      s.Title,
		"content":    s.Content,
		"position":   s.Position,
		"is_visible": s.IsVisible,
	})
	if err != nil {
		return core.ContentSection{}, translate(err)
	}
	return rows[0], nil
}

func (p *Postgres) UpdateSection(ctx context.Context, id string, patch core.SectionPatch) (core.ContentSection, error) {
	s, err := p.sections.Update(ctx, id, sectionRecord(patch))
	return s, translate(err)
}

func (p *Postgres) DeleteSection(ctx context.Context, id string) error {
	return translate(p.sections.Delete(ctx, id))
}

// InsertJobs stores jobs with one INSERT statement. Values travel as one
// array per column, so the statement size does not grow with the batch.
func (p *Postgres) InsertJobs(ctx context.Context, jobs []core.Job) ([]core.Job, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	out, err := p.jobs.InsertArrays(ctx, jobColumns(jobs)...)
	return out, translate(err)
}

func jobColumns(jobs []core.Job) []ArrayColumn {
	var (
		companyIDs   = make([]string, len(jobs))
		titles       = make([]string, len(jobs))
		descriptions = make([]string, len(jobs))
		locations    = make([]string, len(jobs))
		jobTypes     = make([]string, len(jobs))
		departments  = make([]*string, len(jobs))
		salaries     = make([]*string, len(jobs))
		active       = make([]bool, len(jobs))
	)
	for i, j := range jobs {
		companyIDs[i] = j.CompanyID
		titles[i] = j.Title
		descriptions[i] = j.Description
		locations[i] = j.Location
		jobTypes[i] = j.JobType
		departments[i] = j.Department
		salaries[i] = j.SalaryRange
		active[i] = j.IsActive
	}
	return []ArrayColumn{
		{Name: "company_id", Type: "uuid", Values: companyIDs},
		{Name: "title", Type: "text", Values: titles},
		{Name: "description", Type: "text", Values: descriptions},
		{Name: "location", Type: "text", Values: locations},
		{Name: "job_type", Type: "text", Values: jobTypes},
		{Name: "department", Type: "text", Values: departments},
		{Name: "salary_range", Type: "text", Values: salaries},
		{Name: "is_active", Type: "bool", Values: active},
	}
}

func (p *Postgres) ListJobs(ctx context.Context, companyID string, activeOnly bool) ([]core.Job, error) {
	out, err := p.jobs.Select().
		Eq("company_id", companyID).
		Filter("is_active", only(activeOnly)).
		Order("created_at", Desc).
		All(ctx)
	return out, translate(err)
}

func (p *Postgres) JobByID(ctx context.Context, id string) (core.Job, error) {
	j, err := p.jobs.Select().Eq("id", id).One(ctx)
	return j, translate(err)
}

func (p *Postgres) UpdateJob(ctx context.Context, id string, patch core.JobPatch) (core.Job, error) {
	rec := jobRecord(patch)
	if len(rec) > 0 {
		rec["updated_at"] = p.now().UTC()
	}
	j, err := p.jobs.Update(ctx, id, rec)
	return j, translate(err)
}

func (p *Postgres) DeleteJob(ctx context.Context, id string) error {
	return translate(p.jobs.Delete(ctx, id))
}

// only returns a filter value that matches true rows when set, and no
// filter otherwise.
func only(set bool) any {
	if set {
		return true
	}
	return nil
}

// nullable turns an empty string into SQL NULL.
func nullable(s *string) any {
	if *s == "" {
		return nil
	}
	return *s
}

func companyRecord(p core.CompanyPatch) Record {
	rec := Record{}
	if p.Name != nil {
		rec["name"] = *p.Name
	}
	if p.Slug != nil {
		rec["slug"] = *p.Slug
	}
	if p.LogoURL != nil {
		rec["logo_url"] = nullable(p.LogoURL)
	}
	if p.BannerURL != nil {
		rec["banner_url"] = nullable(p.BannerURL)
	}
	if p.VideoURL != nil {
		rec["video_url"] = nullable(p.VideoURL)
	}
	if p.PrimaryColor != nil {
		rec["primary_color"] = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		rec["secondary_color"] = *p.SecondaryColor
	}
	if p.Tagline != nil {
		rec["tagline"] = nullable(p.Tagline)
	}
	if p.IsPublished != nil {
		rec["is_published"] = *p.IsPublished
	}
	return rec
}

func sectionRecord(p core.SectionPatch) Record {
	rec := Record{}
	if p.Type != nil {
		rec["type"] = string(*p.Type)
	}
	if p.Title != nil {
		rec["title"] = *p.Title
	}
	if p.Content != nil {
		rec["content"] = *p.Content
	}
	if p.Position != nil {
		rec["position"] = *p.Position
	}
	if p.IsVisible != nil {
		rec["is_visible"] = *p.IsVisible
	}
	return rec
}

func jobRecord(p core.JobPatch) Record {
	rec := Record{}
	if p.Title != nil {
		rec["title"] = *p.Title
	}
	if p.Description != nil {
		rec["description"] = *p.Description
	}
	if p.Location != nil {
		rec["location"] = *p.Location
	}
	if p.JobType != nil {
		rec["job_type"] = *p.JobType
	}
	if p.Department != nil {
		rec["department"] = nullable(p.Department)
	}
	if p.SalaryRange != nil {
		rec["salary_range"] = nullable(p.SalaryRange)
	}
	if p.IsActive != nil {
		rec["is_active"] = *p.IsActive
	}
	return rec
}
