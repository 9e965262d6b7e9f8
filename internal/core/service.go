package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/validator"
)

// Defaults for a company created on the first editor visit.
const (
	DefaultCompanyName    = "My Company"
	DefaultPrimaryColor   = "#3B82F6"
	DefaultSecondaryColor = "#1E40AF"
)

// DefaultSessionTTL is how long an untouched import session is kept.
const DefaultSessionTTL = 30 * time.Minute

// PreviewRows is how many mapped jobs an import snapshot shows.
const PreviewRows = 5

// Options configures a Service.
type Options struct {
	Import ImportOptions

	// MaxConcurrentImports bounds imports that parse at the same time.
	MaxConcurrentImports int
	// ImportWait is how long StartImport waits for a free slot.
	ImportWait time.Duration
	// SessionTTL expires import sessions that are not touched.
	SessionTTL time.Duration

	PreviewSecret string
	PreviewTTL    time.Duration

	// Notifier receives every notice in addition to the session log.
	Notifier Notifier
}

// Service implements the editor, import and careers page operations.
// Editor operations act on the company of the user in the context.
type Service struct {
	store     Store
	opts      ImportOptions
	limiter   *ImportLimiter
	tokens    *PreviewTokens
	validator *validator.Validator
	notifier  Notifier
	ttl       time.Duration
	now       func() time.Time

	mu      sync.Mutex
	imports map[string]*importSession
}

// NewService creates a Service backed by store.
func NewService(store Store, o Options) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	tokens, err := NewPreviewTokens(o.PreviewSecret, o.PreviewTTL)
	if err != nil {
		return nil, fmt.Errorf("preview tokens: %w", err)
	}

	if o.SessionTTL <= 0 {
		o.SessionTTL = DefaultSessionTTL
	}
	if o.Import == (ImportOptions{}) {
		o.Import = DefaultImportOptions()
	}

	return &Service{
		store:     store,
		opts:      o.Import,
		limiter:   NewImportLimiter(o.MaxConcurrentImports, o.ImportWait),
		tokens:    tokens,
		validator: validator.New(),
		notifier:  o.Notifier,
		ttl:       o.SessionTTL,
		now:       time.Now,
		imports:   make(map[string]*importSession),
	}, nil
}

// Limiter exposes the import limiter for status reporting and shutdown.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// EnsureCompany returns the caller's company, creating it with default
// branding on the first visit.
func (s *Service) EnsureCompany(ctx context.Context) (Company, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return Company{}, err
	}

	c, err := s.store.CompanyByUser(ctx, u.ID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Company{}, fmt.Errorf("load company: %w", err)
	}

	base := fmt.Sprintf("company-%d", s.now().UnixMilli())
	for attempt := 0; attempt < 3; attempt++ {
		slug := base
		if attempt > 0 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		c, err = s.store.CreateCompany(ctx, Company{
			UserID:         u.ID,
			Slug:           slug,
			Name:           DefaultCompanyName,
			PrimaryColor:   DefaultPrimaryColor,
			SecondaryColor: DefaultSecondaryColor,
		})
		if !errors.Is(err, ErrDuplicate) {
			break
		}
		// Either a concurrent first visit won, or the slug is taken.
		if existing, lerr := s.store.CompanyByUser(ctx, u.ID); lerr == nil {
			return existing, nil
		}
	}
	if err != nil {
		return Company{}, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// UpdateCompany applies patch to the caller's company.
func (s *Service) UpdateCompany(ctx context.Context, patch CompanyPatch) (Company, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return Company{}, err
	}

	if patch.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*patch.Slug))
		patch.Slug = &slug
	}
	if err := s.validate(patch); err != nil {
		return Company{}, err
	}

	updated, err := s.store.UpdateCompany(ctx, c.ID, patch)
	if errors.Is(err, ErrDuplicate) {
		return Company{}, wrapError(KindConflict, "That slug is already taken", err)
	}
	if err != nil {
		return Company{}, fmt.Errorf("update company: %w", err)
	}
	return updated, nil
}

// ownedCompany loads companyID and checks that the caller owns it.
// Unknown ids are reported as forbidden so that ids cannot be probed.
func (s *Service) ownedCompany(ctx context.Context, companyID string) (Company, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return Company{}, err
	}

	c, err := s.store.CompanyByID(ctx, companyID)
	if errors.Is(err, ErrNotFound) {
		return Company{}, newError(KindForbidden, "Forbidden")
	}
	if err != nil {
		return Company{}, fmt.Errorf("load company: %w", err)
	}
	if c.UserID != u.ID {
		return Company{}, newError(KindForbidden, "Forbidden")
	}
	return c, nil
}

// validate runs the DTO rules on v.
func (s *Service) validate(v any) error {
	err := s.validator.Validate(v)
	if err == nil {
		return nil
	}

	var verr *validator.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("validate: %w", err)
	}

	details := make([]string, 0, len(verr.Fields))
	for field, msg := range verr.Fields {
		details = append(details, field+": "+msg)
	}
	sort.Strings(details)

	return &Error{
		Kind:    KindInvalidInput,
		Message: "Please correct the highlighted fields",
		Details: details,
		Err:     verr,
	}
}

// notFound maps a store miss to a NotFound error naming what.
func notFound(err error, what string) error {
	if errors.Is(err, ErrNotFound) {
		return wrapError(KindNotFound, what+" not found", err)
	}
	return fmt.Errorf("load %s: %w", strings.ToLower(what), err)
}
