package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// Memory is an in-process core.Store. It enforces the same unique keys as
// the schema and is used by tests and by DATABASE_URL=memory://.
type Memory struct {
	mu        sync.RWMutex
	companies map[string]core.Company
	sections  map[string]core.ContentSection
	jobs      map[string]memJob
	seq       int
	now       func() time.Time
}

type memJob struct {
	core.Job
	seq int
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		companies: make(map[string]core.Company),
		sections:  make(map[string]core.ContentSection),
		jobs:      make(map[string]memJob),
		now:       time.Now,
	}
}

var _ core.Store = (*Memory)(nil)

func notFound(table string) error {
	return fmt.Errorf("%s: %w", table, core.ErrNotFound)
}

func (m *Memory) CompanyByID(_ context.Context, id string) (core.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.companies[id]
	if !ok {
		return core.Company{}, notFound(Companies)
	}
	return c, nil
}

func (m *Memory) CompanyByUser(_ context.Context, userID string) (core.Company, error) {
	return m.findCompany(func(c core.Company) bool { return c.UserID == userID })
}

func (m *Memory) CompanyBySlug(_ context.Context, slug string) (core.Company, error) {
	return m.findCompany(func(c core.Company) bool { return c.Slug == slug })
}

func (m *Memory) findCompany(match func(core.Company) bool) (core.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.companies {
		if match(c) {
			return c, nil
		}
	}
	return core.Company{}, notFound(Companies)
}

func (m *Memory) CreateCompany(_ context.Context, c core.Company) (core.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.companies {
		if other.UserID == c.UserID {
			return core.Company{}, fmt.Errorf("%w: companies_user_id_key", core.ErrDuplicate)
		}
		if other.Slug == c.Slug {
			return core.Company{}, fmt.Errorf("%w: companies_slug_key", core.ErrDuplicate)
		}
	}

	now := m.now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	m.companies[c.ID] = c
	return c, nil
}

func (m *Memory) UpdateCompany(_ context.Context, id string, p core.CompanyPatch) (core.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[id]
	if !ok {
		return core.Company{}, notFound(Companies)
	}
	if p.Slug != nil {
		for _, other := range m.companies {
			if other.ID != id && other.Slug == *p.Slug {
				return core.Company{}, fmt.Errorf("%w: companies_slug_key", core.ErrDuplicate)
			}
		}
		c.Slug = *p.Slug
	}
	setString(&c.Name, p.Name)
	setOptional(&c.LogoURL, p.LogoURL)
	setOptional(&c.BannerURL, p.BannerURL)
	setOptional(&c.VideoURL, p.VideoURL)
	setString(&c.PrimaryColor, p.PrimaryColor)
	setString(&c.SecondaryColor, p.SecondaryColor)
	setOptional(&c.Tagline, p.Tagline)
	if p.IsPublished != nil {
		c.IsPublished = *p.IsPublished
	}
	c.UpdatedAt = m.now().UTC()

	m.companies[id] = c
	return c, nil
}

func (m *Memory) ListSections(_ context.Context, companyID string, visibleOnly bool) ([]core.ContentSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []core.ContentSection{}
	for _, s := range m.sections {
		if s.CompanyID != companyID || (visibleOnly && !s.IsVisible) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) SectionByID(_ context.Context, id string) (core.ContentSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sections[id]
	if !ok {
		return core.ContentSection{}, notFound(Sections)
	}
	return s, nil
}

func (m *Memory) CreateSection(_ context.Context, s core.ContentSection) (core.ContentSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.companies[s.CompanyID]; !ok {
		return core.ContentSection{}, notFound(Companies)
	}
	s.ID = uuid.NewString()
	s.CreatedAt = m.now().UTC()
	m.sections[s.ID] = s
	return s, nil
}

func (m *Memory) UpdateSection(_ context.Context, id string, p core.SectionPatch) (core.ContentSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sections[id]
	if !ok {
		return core.ContentSection{}, notFound(Sections)
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	setString(&s.Title, p.Title)
	setString(&s.Content, p.Content)
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.IsVisible != nil {
		s.IsVisible = *p.IsVisible
	}
	m.sections[id] = s
	return s, nil
}

func (m *Memory) DeleteSection(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[id]; !ok {
		return notFound(Sections)
	}
	delete(m.sections, id)
	return nil
}

// InsertJobs stores every job or none.
func (m *Memory) InsertJobs(_ context.Context, jobs []core.Job) ([]core.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range jobs {
		if _, ok := m.companies[j.CompanyID]; !ok {
			return nil, notFound(Companies)
		}
	}

	now := m.now().UTC()
	out := make([]core.Job, len(jobs))
	for i, j := range jobs {
		j.ID = uuid.NewString()
		j.CreatedAt, j.UpdatedAt = now, now
		m.seq++
		m.jobs[j.ID] = memJob{Job: j, seq: m.seq}
		out[i] = j
	}
	return out, nil
}

// ListJobs returns jobs newest first; jobs inserted together keep the
// reverse of their insertion order.
func (m *Memory) ListJobs(_ context.Context, companyID string, activeOnly bool) ([]core.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []memJob
	for _, j := range m.jobs {
		if j.CompanyID != companyID || (activeOnly && !j.IsActive) {
			continue
		}
		rows = append(rows, j)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]core.Job, len(rows))
	for i, r := range rows {
		out[i] = r.Job
	}
	return out, nil
}

func (m *Memory) JobByID(_ context.Context, id string) (core.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return core.Job{}, notFound(Jobs)
	}
	return j.Job, nil
}

func (m *Memory) UpdateJob(_ context.Context, id string, p core.JobPatch) (core.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.jobs[id]
	if !ok {
		return core.Job{}, notFound(Jobs)
	}
	j := &row.Job
	setString(&j.Title, p.Title)
	setString(&j.Description, p.Description)
	setString(&j.Location, p.Location)
	setString(&j.JobType, p.JobType)
	setOptional(&j.Department, p.Department)
	setOptional(&j.SalaryRange, p.SalaryRange)
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
	j.UpdatedAt = m.now().UTC()

	m.jobs[id] = row
	return row.Job, nil
}

func (m *Memory) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return notFound(Jobs)
	}
	delete(m.jobs, id)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setOptional applies v to an optional field; "" clears it.
func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}
