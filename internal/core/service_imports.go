package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// importSession is one user's import, kept between requests.
type importSession struct {
	id        string
	userID    string
	companyID string
	importer  *Importer
	notices   *NoticeLog
	touched   time.Time
}

// ImportView is what the editor shows for an import session.
type ImportView struct {
	ID string `json:"id"`
	ImportSnapshot
	Notices []Notice `json:"notices"`
}

// IsImportFailure reports whether err ended an import attempt. Such
// failures are part of the session state rather than request errors.
func IsImportFailure(err error) bool {
	switch KindOf(err) {
	case KindInputRejected, KindParseFailure, KindValidationFailure:
		return true
	}
	return false
}

// StartImport opens a new import session for the caller's company and
// runs f through it. The returned view is valid even when the import
// failed; err then carries the failure.
func (s *Service) StartImport(ctx context.Context, f FileInput) (ImportView, error) {
	c, err := s.EnsureCompany(ctx)
	if err != nil {
		return ImportView{}, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return ImportView{}, err
	}
	defer s.limiter.Release()

	notices := NewNoticeLog()
	sess := &importSession{
		id:        uuid.NewString(),
		userID:    c.UserID,
		companyID: c.ID,
		notices:   notices,
		importer:  NewImporter(c.ID, s.opts, Notifiers{notices, s.notifier}),
		touched:   s.now(),
	}

	s.mu.Lock()
	s.sweepLocked()
	s.imports[sess.id] = sess
	s.mu.Unlock()

	return s.runSelect(ctx, sess, f)
}

// SelectFile runs f through an existing idle session, as after Retry.
func (s *Service) SelectFile(ctx context.Context, id string, f FileInput) (ImportView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return ImportView{}, err
	}
	return s.selectFile(ctx, sess, f)
}

func (s *Service) selectFile(ctx context.Context, sess *importSession, f FileInput) (ImportView, error) {
	if sess.importer.State() != StateIdle {
		return s.view(sess), wrapError(KindConflict, "An import is already in progress", ErrInvalidTransition)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return s.view(sess), err
	}
	defer s.limiter.Release()

	return s.runSelect(ctx, sess, f)
}

// runSelect runs f through the session's importer. Callers hold an import
// slot.
func (s *Service) runSelect(ctx context.Context, sess *importSession, f FileInput) (ImportView, error) {
	log := slog.With("import_id", sess.id, "company_id", sess.companyID, "file", f.Name)
	start := time.Now()

	err := sess.importer.Select(ctx, f)
	if err != nil {
		log.WarnContext(ctx, "import failed", "kind", KindOf(err), "error", err)
	} else {
		log.InfoContext(ctx, "import ready", "jobs", len(sess.importer.Batch()),
			"duration_ms", time.Since(start).Milliseconds())
	}
	return s.view(sess), err
}

// Import returns the current view of a session.
func (s *Service) Import(ctx context.Context, id string) (ImportView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return ImportView{}, err
	}
	return s.view(sess), nil
}

// ConfirmImport stores the session's batch with one bulk insert.
func (s *Service) ConfirmImport(ctx context.Context, id string) (ImportView, int, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return ImportView{}, 0, err
	}
	n, err := sess.importer.Confirm(ctx, s.store)
	if err != nil {
		slog.ErrorContext(ctx, "import confirm failed", "import_id", id, "company_id", sess.companyID, "error", err)
	}
	return s.view(sess), n, err
}

// DiscardImport drops the session's batch.
func (s *Service) DiscardImport(ctx context.Context, id string) (ImportView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return ImportView{}, err
	}
	err = sess.importer.Discard()
	return s.view(sess), err
}

// RetryImport clears a failed session so another file can be selected.
func (s *Service) RetryImport(ctx context.Context, id string) (ImportView, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return ImportView{}, err
	}
	err = sess.importer.Retry()
	return s.view(sess), err
}

// session returns the caller's session id and marks it used. Sessions of
// other users are reported as missing.
func (s *Service) session(ctx context.Context, id string) (*importSession, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	sess, ok := s.imports[id]
	if !ok || sess.userID != u.ID {
		return nil, wrapError(KindNotFound, "Import not found", ErrNotFound)
	}
	sess.touched = s.now()
	return sess, nil
}

// sweepLocked drops sessions idle for longer than the TTL. Callers hold s.mu.
func (s *Service) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.imports {
		if sess.touched.Before(cutoff) {
			delete(s.imports, id)
		}
	}
}

func (s *Service) view(sess *importSession) ImportView {
	return ImportView{
		ID:             sess.id,
		ImportSnapshot: sess.importer.Snapshot(PreviewRows),
		Notices:        sess.notices.Active(),
	}
}
