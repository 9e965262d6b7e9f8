package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/metrics"
)

// IssuePreviewToken signs a preview link for one of the caller's companies.
func (s *Service) IssuePreviewToken(ctx context.Context, companyID string) (PreviewToken, error) {
	c, err := s.ownedCompany(ctx, companyID)
	if err != nil {
		return PreviewToken{}, err
	}
	tok, err := s.tokens.Issue(c.UserID, c.ID)
	if err != nil {
		return PreviewToken{}, err
	}
	metrics.PreviewToken("issued")
	return tok, nil
}

// CareersPage loads the public page of a published company.
func (s *Service) CareersPage(ctx context.Context, slug string, q JobQuery) (CareersPage, error) {
	c, err := s.store.CompanyBySlug(ctx, slug)
	if err != nil {
		return CareersPage{}, notFound(err, "Company")
	}
	if !c.IsPublished {
		return CareersPage{}, wrapError(KindNotFound, "Company not found", ErrNotFound)
	}
	return s.loadPage(ctx, c, q, false)
}

// PreviewPage loads a company's page regardless of its publish flag,
// including hidden sections and inactive jobs. token must be a valid
// preview token for that company.
func (s *Service) PreviewPage(ctx context.Context, slug, token string, q JobQuery) (CareersPage, error) {
	c, err := s.store.CompanyBySlug(ctx, slug)
	if err != nil {
		return CareersPage{}, notFound(err, "Company")
	}

	if _, err := s.tokens.Verify(token, c.ID); err != nil {
		metrics.PreviewToken("rejected")
		slog.InfoContext(ctx, "preview rejected", "slug", slug, "error", err)
		return CareersPage{}, wrapError(KindForbidden, "This preview link is invalid or has expired", err)
	}
	metrics.PreviewToken("accepted")

	page, err := s.loadPage(ctx, c, q, true)
	if err != nil {
		return CareersPage{}, err
	}
	page.PreviewToken = token
	return page, nil
}

func (s *Service) loadPage(ctx context.Context, c Company, q JobQuery, preview bool) (CareersPage, error) {
	var (
		sections []ContentSection
		jobs     []Job
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sections, err = s.store.ListSections(gctx, c.ID, !preview)
		if err != nil {
			return fmt.Errorf("list sections: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jobs, err = s.store.ListJobs(gctx, c.ID, !preview)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrNotFound) {
			return CareersPage{}, notFound(err, "Company")
		}
		return CareersPage{}, err
	}

	page := CareersPage{
		Company:  c,
		Sections: sections,
		Jobs:     Paginate(FilterJobs(jobs, q), q.Page, q.PageSize),
		Facets:   CollectFacets(jobs),
		Query:    q,
		Preview:  preview,
	}
	if c.VideoURL != nil {
		page.EmbedURL = VideoEmbedURL(*c.VideoURL)
	}
	return page, nil
}
