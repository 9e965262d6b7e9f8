package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

func newCompany(t *testing.T, m *Memory, user, slug string) core.Company {
	t.Helper()
	c, err := m.CreateCompany(context.Background(), core.Company{UserID: user, Slug: slug, Name: "Acme"})
	require.NoError(t, err)
	return c
}

func TestMemory_Companies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := newCompany(t, m, "u1", "acme")
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	byUser, err := m.CompanyByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byUser.ID)

	bySlug, err := m.CompanyBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, c.ID, bySlug.ID)

	_, err = m.CompanyBySlug(ctx, "missing")
	assert.True(t, errors.Is(err, core.ErrNotFound))

	_, err = m.CreateCompany(ctx, core.Company{UserID: "u1", Slug: "other"})
	assert.True(t, errors.Is(err, core.ErrDuplicate), "one company per user")

	_, err = m.CreateCompany(ctx, core.Company{UserID: "u2", Slug: "acme"})
	assert.True(t, errors.Is(err, core.ErrDuplicate), "unique slug")
}

func TestMemory_UpdateCompany(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c := newCompany(t, m, "u1", "acme")
	newCompany(t, m, "u2", "globex")

	logo := "https://cdn.test/logo.png"
	updated, err := m.UpdateCompany(ctx, c.ID, core.CompanyPatch{LogoURL: &logo})
	require.NoError(t, err)
	require.NotNil(t, updated.LogoURL)
	assert.Equal(t, logo, *updated.LogoURL)
	assert.Equal(t, "Acme", updated.Name)

	empty := ""
	updated, err = m.UpdateCompany(ctx, c.ID, core.CompanyPatch{LogoURL: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.LogoURL)

	taken := "globex"
	_, err = m.UpdateCompany(ctx, c.ID, core.CompanyPatch{Slug: &taken})
	assert.True(t, errors.Is(err, core.ErrDuplicate))

	same := "acme"
	_, err = m.UpdateCompany(ctx, c.ID, core.CompanyPatch{Slug: &same})
	assert.NoError(t, err, "keeping your own slug is not a conflict")
}

func TestMemory_Sections(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c := newCompany(t, m, "u1", "acme")

	for i, title := range []string{"B", "A", "C"} {
		pos := []int{1, 0, 2}[i]
		_, err := m.CreateSection(ctx, core.ContentSection{CompanyID: c.ID, Title: title, Position: pos, IsVisible: title != "C"})
		require.NoError(t, err)
	}

	all, err := m.ListSections(ctx, c.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Title, all[1].Title, all[2].Title})

	visible, err := m.ListSections(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	require.NoError(t, m.DeleteSection(ctx, all[0].ID))
	assert.True(t, errors.Is(m.DeleteSection(ctx, all[0].ID), core.ErrNotFound))

	_, err = m.CreateSection(ctx, core.ContentSection{CompanyID: "nope"})
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestMemory_Jobs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c := newCompany(t, m, "u1", "acme")

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	_, err := m.InsertJobs(ctx, []core.Job{
		{CompanyID: c.ID, Title: "first", IsActive: true},
		{CompanyID: c.ID, Title: "second", IsActive: false},
	})
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	saved, err := m.InsertJobs(ctx, []core.Job{{CompanyID: c.ID, Title: "newest", IsActive: true}})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.NotEmpty(t, saved[0].ID)

	all, err := m.ListJobs(ctx, c.ID, false)
	require.NoError(t, err)
	titles := make([]string, len(all))
	for i, j := range all {
		titles[i] = j.Title
	}
	assert.Equal(t, []string{"newest", "second", "first"}, titles)

	active, err := m.ListJobs(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = m.InsertJobs(ctx, []core.Job{{CompanyID: c.ID}, {CompanyID: "missing"}})
	assert.True(t, errors.Is(err, core.ErrNotFound))
	all, _ = m.ListJobs(ctx, c.ID, false)
	assert.Len(t, all, 3, "a failed batch stores nothing")

	dept := "Ops"
	updated, err := m.UpdateJob(ctx, saved[0].ID, core.JobPatch{Department: &dept})
	require.NoError(t, err)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Ops", *updated.Department)

	require.NoError(t, m.DeleteJob(ctx, saved[0].ID))
	_, err = m.JobByID(ctx, saved[0].ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
