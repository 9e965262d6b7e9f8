package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// PageURL returns the link to page n of the current listing, keeping the
// active filters.
type PageURL func(n int) string

// Careers renders a full careers page.
func Careers(p core.CareersPage, pageURL PageURL) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		c := p.Company

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text("Careers at " + c.Name)
		h.raw(`</title>`)
		if p.Preview {
			h.raw(`<meta name="robots" content="noindex">`)
		}
		h.raw(`<style>:root{--primary:`, templ.EscapeString(c.PrimaryColor),
			`;--secondary:`, templ.EscapeString(c.SecondaryColor), `}</style>`)
		h.raw(`</head><body class="careers">`)

		if p.Preview {
			h.raw(`<div class="preview-banner">Preview mode. This page is not visible to the public yet.</div>`)
		}

		header(h, c)

		if p.EmbedURL != "" {
			h.raw(`<section class="video"><iframe`)
			h.attr("src", p.EmbedURL)
			h.attr("title", c.Name+" video")
			h.raw(` allowfullscreen loading="lazy"></iframe></section>`)
		}

		for _, s := range p.Sections {
			h.raw(`<section class="content-section`)
			if !s.IsVisible {
				h.raw(` hidden-section`)
			}
			h.raw(`"`)
			h.attr("data-type", string(s.Type))
			h.raw(`><h2>`)
			h.text(s.Title)
			h.raw(`</h2><div class="section-body">`)
			h.text(s.Content)
			h.raw(`</div></section>`)
		}

		h.raw(`<section class="jobs" id="jobs"><h2>Open positions</h2>`)
		filters(h, p)
		jobList(h, p.Jobs)
		pager(h, p.Jobs, pageURL)
		h.raw(`</section></body></html>`)
		return h.err
	})
}

func header(h *html, c core.Company) {
	h.raw(`<header class="company-header">`)
	if banner := deref(c.BannerURL); banner != "" {
		h.raw(`<img class="banner"`)
		h.attr("src", banner)
		h.raw(` alt="">`)
	}
	if logo := deref(c.LogoURL); logo != "" {
		h.raw(`<img class="logo"`)
		h.attr("src", logo)
		h.attr("alt", c.Name+" logo")
		h.raw(`>`)
	}
	h.raw(`<h1>`)
	h.text(c.Name)
	h.raw(`</h1>`)
	if tagline := deref(c.Tagline); tagline != "" {
		h.raw(`<p class="tagline">`)
		h.text(tagline)
		h.raw(`</p>`)
	}
	h.raw(`</header>`)
}

func filters(h *html, p core.CareersPage) {
	q := p.Query
	h.raw(`<form class="job-filters" method="get" action="#jobs">`)
	if p.PreviewToken != "" {
		h.raw(`<input type="hidden" name="token"`)
		h.attr("value", p.PreviewToken)
		h.raw(`>`)
	}
	h.raw(`<input type="search" name="q" placeholder="Search jobs"`)
	h.attr("value", q.Q)
	h.raw(`>`)
	h.raw(`<input type="text" name="location" placeholder="Location" list="locations"`)
	h.attr("value", q.Location)
	h.raw(`><datalist id="locations">`)
	for _, loc := range p.Facets.Locations {
		h.raw(`<option`)
		h.attr("value", loc)
		h.raw(`>`)
	}
	h.raw(`</datalist>`)

	h.raw(`<select name="type"><option value="">All types</option>`)
	for _, t := range p.Facets.JobTypes {
		h.raw(`<option`)
		h.attr("value", t)
		h.raw(selected(t == q.Type), `>`)
		h.text(JobTypeLabel(t))
		h.raw(`</option>`)
	}
	h.raw(`</select>`)

	if len(p.Facets.Departments) > 0 {
		h.raw(`<select name="department"><option value="">All departments</option>`)
		for _, d := range p.Facets.Departments {
			h.raw(`<option`)
			h.attr("value", d)
			h.raw(selected(d == q.Department), `>`)
			h.text(d)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	}
	h.raw(`<button type="submit">Filter</button></form>`)
}

func jobList(h *html, page core.JobPage) {
	if len(page.Jobs) == 0 {
		h.raw(`<p class="no-jobs">No open positions match your search.</p>`)
		return
	}
	h.raw(`<p class="job-count">`)
	if page.Total == 1 {
		h.raw(`1 open position`)
	} else {
		h.text(fmt.Sprintf("%d open positions", page.Total))
	}
	h.raw(`</p><ul class="job-list">`)
	for _, j := range page.Jobs {
		h.raw(`<li class="job`)
		if !j.IsActive {
			h.raw(` inactive`)
		}
		h.raw(`"><h3>`)
		h.text(j.Title)
		h.raw(`</h3><p class="job-meta"><span class="location">`)
		h.text(j.Location)
		h.raw(`</span> <span class="job-type">`)
		h.text(JobTypeLabel(j.JobType))
		h.raw(`</span>`)
		if d := deref(j.Department); d != "" {
			h.raw(` <span class="department">`)
			h.text(d)
			h.raw(`</span>`)
		}
		if s := deref(j.SalaryRange); s != "" {
			h.raw(` <span class="salary">`)
			h.text(s)
			h.raw(`</span>`)
		}
		h.raw(`</p><div class="job-description">`)
		h.text(j.Description)
		h.raw(`</div></li>`)
	}
	h.raw(`</ul>`)
}

func pager(h *html, page core.JobPage, pageURL PageURL) {
	if page.TotalPages <= 1 || pageURL == nil {
		return
	}
	h.raw(`<nav class="pagination" aria-label="Job pages">`)
	if page.Page > 1 {
		h.raw(`<a rel="prev"`)
		h.attr("href", pageURL(page.Page-1))
		h.raw(`>Previous</a>`)
	}
	h.raw(`<span class="page-status">Page `, strconv.Itoa(page.Page), ` of `, strconv.Itoa(page.TotalPages), `</span>`)
	if page.Page < page.TotalPages {
		h.raw(`<a rel="next"`)
		h.attr("href", pageURL(page.Page+1))
		h.raw(`>Next</a>`)
	}
	h.raw(`</nav>`)
}
