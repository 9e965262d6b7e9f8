package core

import (
	"context"
	"time"
)

// SectionType tags a content section on a careers page.
type SectionType string

const (
	SectionAbout    SectionType = "about"
	SectionCulture  SectionType = "culture"
	SectionBenefits SectionType = "benefits"
	SectionValues   SectionType = "values"
	SectionCustom   SectionType = "custom"
)

// Job types accepted by the editor. Imported jobs may carry a normalized
// value outside this set; see NormalizeJobType.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// JobTypes lists the editor job types in display order.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// Company is the branding record behind one careers page.
// Each user owns at most one company.
type Company struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Slug           string    `db:"slug" json:"slug"`
	Name           string    `db:"name" json:"name"`
	LogoURL        *string   `db:"logo_url" json:"logo_url,omitempty"`
	BannerURL      *string   `db:"banner_url" json:"banner_url,omitempty"`
	VideoURL       *string   `db:"video_url" json:"video_url,omitempty"`
	PrimaryColor   string    `db:"primary_color" json:"primary_color"`
	SecondaryColor string    `db:"secondary_color" json:"secondary_color"`
	Tagline        *string   `db:"tagline" json:"tagline,omitempty"`
	IsPublished    bool      `db:"is_published" json:"is_published"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ContentSection is an ordered free-text block on a careers page.
// Positions within a company form a dense 0-based ordering.
type ContentSection struct {
	ID        string      `db:"id" json:"id"`
	CompanyID string      `db:"company_id" json:"company_id"`
	Type      SectionType `db:"type" json:"type"`
	Title     string      `db:"title" json:"title"`
	Content   string      `db:"content" json:"content"`
	Position  int         `db:"position" json:"position"`
	IsVisible bool        `db:"is_visible" json:"is_visible"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// Job is a listing that belongs to a company.
type Job struct {
	ID          string    `db:"id" json:"id,omitempty"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"`
	JobType     string    `db:"job_type" json:"job_type"`
	Department  *string   `db:"department" json:"department,omitempty"`
	SalaryRange *string   `db:"salary_range" json:"salary_range,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at,omitzero"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at,omitzero"`
}

// RawCsvRow is one untyped record from an uploaded file.
// It is consumed once per import and never persisted.
type RawCsvRow struct {
	Title           string `json:"title"`
	WorkPolicy      string `json:"work_policy"`
	Location        string `json:"location"`
	Department      string `json:"department"`
	EmploymentType  string `json:"employment_type"`
	ExperienceLevel string `json:"experience_level"`
	JobType         string `json:"job_type"`
	SalaryRange     string `json:"salary_range"`
	JobSlug         string `json:"job_slug"`
	PostedDaysAgo   string `json:"posted_days_ago"`
}

// CsvColumns are the recognized header names, in template order.
var CsvColumns = []string{
	"title", "work_policy", "location", "department", "employment_type",
	"experience_level", "job_type", "salary_range", "job_slug", "posted_days_ago",
}

// RequiredCsvFields must be present and non-blank on every row.
var RequiredCsvFields = []string{"title", "location", "employment_type"}

// Field returns the value of a column by its header name.
// Unknown names yield "".
func (r RawCsvRow) Field(name string) string {
	switch name {
	case "title":
		return r.Title
	case "work_policy":
		return r.WorkPolicy
	case "location":
		return r.Location
	case "department":
		return r.Department
	case "employment_type":
		return r.EmploymentType
	case "experience_level":
		return r.ExperienceLevel
	case "job_type":
		return r.JobType
	case "salary_range":
		return r.SalaryRange
	case "job_slug":
		return r.JobSlug
	case "posted_days_ago":
		return r.PostedDaysAgo
	}
	return ""
}

// setField assigns a column by header name. Unknown names are ignored.
func (r *RawCsvRow) setField(name, value string) {
	switch name {
	case "title":
		r.Title = value
	case "work_policy":
		r.WorkPolicy = value
	case "location":
		r.Location = value
	case "department":
		r.Department = value
	case "employment_type":
		r.EmploymentType = value
	case "experience_level":
		r.ExperienceLevel = value
	case "job_type":
		r.JobType = value
	case "salary_range":
		r.SalaryRange = value
	case "job_slug":
		r.JobSlug = value
	case "posted_days_ago":
		r.PostedDaysAgo = value
	}
}

// User is the authenticated caller, as resolved by the auth layer.
type User struct {
	ID    string
	Email string
}

// CompanyPatch carries the editable company fields. Nil fields are left
// unchanged; an empty string clears an optional field.
type CompanyPatch struct {
	Name           *string `json:"name,omitempty" validate:"omitnil,min=1,max=120"`
	Slug           *string `json:"slug,omitempty" validate:"omitnil,slug"`
	LogoURL        *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	BannerURL      *string `json:"banner_url,omitempty" validate:"omitempty,url"`
	VideoURL       *string `json:"video_url,omitempty" validate:"omitempty,url"`
	PrimaryColor   *string `json:"primary_color,omitempty" validate:"omitnil,hexcolor"`
	SecondaryColor *string `json:"secondary_color,omitempty" validate:"omitnil,hexcolor"`
	Tagline        *string `json:"tagline,omitempty" validate:"omitempty,max=200"`
	IsPublished    *bool   `json:"is_published,omitempty"`
}

// SectionPatch carries the editable section fields. Nil fields are left
// unchanged. Position is set by the service when sections are reordered.
type SectionPatch struct {
	Type      *SectionType `json:"type,omitempty" validate:"omitnil,oneof=about culture benefits values custom"`
	Title     *string      `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
	Content   *string      `json:"content,omitempty"`
	Position  *int         `json:"-"`
	IsVisible *bool        `json:"is_visible,omitempty"`
}

// JobPatch carries the editable job fields. Nil fields are left unchanged.
type JobPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty" validate:"omitnil,min=1,max=200"`
	JobType     *string `json:"job_type,omitempty" validate:"omitnil,oneof=full-time part-time contract internship"`
	Department  *string `json:"department,omitempty"`
	SalaryRange *string `json:"salary_range,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CompanyStore persists companies.
type CompanyStore interface {
	CompanyByID(ctx context.Context, id string) (Company, error)
	CompanyByUser(ctx context.Context, userID string) (Company, error)
	CompanyBySlug(ctx context.Context, slug string) (Company, error)
	CreateCompany(ctx context.Context, c Company) (Company, error)
	UpdateCompany(ctx context.Context, id string, patch CompanyPatch) (Company, error)
}

// SectionStore persists content sections.
type SectionStore interface {
	// ListSections returns a company's sections ordered by position.
	ListSections(ctx context.Context, companyID string, visibleOnly bool) ([]ContentSection, error)
	SectionByID(ctx context.Context, id string) (ContentSection, error)
	CreateSection(ctx context.Context, s ContentSection) (ContentSection, error)
	UpdateSection(ctx context.Context, id string, patch SectionPatch) (ContentSection, error)
	DeleteSection(ctx context.Context, id string) error
}

// JobInserter performs the single bulk insert that ends an import.
type JobInserter interface {
	InsertJobs(ctx context.Context, jobs []Job) ([]Job, error)
}

// JobStore persists jobs.
type JobStore interface {
	JobInserter
	// ListJobs returns a company's jobs, newest first.
	ListJobs(ctx context.Context, companyID string, activeOnly bool) ([]Job, error)
	JobByID(ctx context.Context, id string) (Job, error)
	UpdateJob(ctx context.Context, id string, patch JobPatch) (Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// Store is everything the service needs from persistence.
// Lookups of missing rows return an error wrapping ErrNotFound.
type Store interface {
	CompanyStore
	SectionStore
	JobStore
}
