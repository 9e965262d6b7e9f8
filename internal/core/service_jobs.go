package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/metrics"
)

// Defaults for a job added in the editor.
const (
	DefaultJobTitle       = "New Job Opening"
	DefaultJobDescription = "Job description goes here..."
	DefaultJobLocation    = "Remote"
)

// ListJobs returns the caller's jobs, newest first.
func (s *Service) ListJobs(ctx context.Context) ([]Job, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListJobs(ctx, c.ID, false)
}

// AddJob creates an active full-time job with placeholder text.
func (s *Service) AddJob(ctx context.Context) (Job, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return Job{}, err
	}

	jobs, err := s.store.InsertJobs(ctx, []Job{{
		CompanyID:   c.ID,
		Title:       DefaultJobTitle,
		Description: DefaultJobDescription,
		Location:    DefaultJobLocation,
		JobType:     JobTypeFullTime,
		IsActive:    true,
	}})
	if err != nil {
		return Job{}, fmt.Errorf("insert job: %w", err)
	}
	return jobs[0], nil
}

// UpdateJob applies patch to one of the caller's jobs.
func (s *Service) UpdateJob(ctx context.Context, id string, patch JobPatch) (Job, error) {
	if _, err := s.ownedJob(ctx, id); err != nil {
		return Job{}, err
	}
	if err := s.validate(patch); err != nil {
		return Job{}, err
	}
	return s.store.UpdateJob(ctx, id, patch)
}

// SetJobActive shows or hides a job on the public page.
func (s *Service) SetJobActive(ctx context.Context, id string, active bool) (Job, error) {
	return s.UpdateJob(ctx, id, JobPatch{IsActive: &active})
}

// DeleteJob removes one of the caller's jobs.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if _, err := s.ownedJob(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteJob(ctx, id)
}

// ImportJobs validates rows, maps them for companyID and stores them with
// one bulk insert. It returns the number of jobs accepted; an empty batch
// is accepted without touching the store.
func (s *Service) ImportJobs(ctx context.Context, companyID string, rows []RawCsvRow) (int, error) {
	c, err := s.ownedCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if errs := ValidateRows(rows); len(errs) > 0 {
		metrics.ImportOutcome(string(KindValidationFailure))
		return 0, &Error{
			Kind:    KindValidationFailure,
			Message: "Validation errors: " + strings.Join(errs, ", "),
			Details: errs,
		}
	}

	saved, err := s.store.InsertJobs(ctx, MapRows(rows, c.ID, s.opts.Template))
	if err != nil {
		metrics.ImportOutcome(string(KindPersistenceFailure))
		return 0, wrapError(KindPersistenceFailure, "Failed to save jobs", err)
	}

	metrics.ImportOutcome("confirmed")
	metrics.JobsImported(len(saved))
	slog.InfoContext(ctx, "jobs imported", "company_id", c.ID, "count", len(saved))
	return len(saved), nil
}

func (s *Service) ownedJob(ctx context.Context, id string) (Job, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return Job{}, err
	}
	j, err := s.store.JobByID(ctx, id)
	if err != nil {
		return Job{}, notFound(err, "Job")
	}
	if j.CompanyID != c.ID {
		return Job{}, newError(KindForbidden, "Forbidden")
	}
	return j, nil
}
