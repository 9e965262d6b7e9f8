package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

// companyStore serves one company and nothing else.
type companyStore struct {
	Store
	company Company
}

func (s companyStore) CompanyByUser(context.Context, string) (Company, error) {
	return s.company, nil
}

func TestStartImport_BusyLeavesNoSession(t *testing.T) {
	svc, err := NewService(companyStore{company: Company{ID: "c1", UserID: "u1"}}, Options{
		PreviewSecret:        "0123456789abcdef",
		MaxConcurrentImports: 1,
		ImportWait:           10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := ContextWithUser(context.Background(), User{ID: "u1"})

	if err := svc.Limiter().Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	_, err = svc.StartImport(ctx, csvFile(goodCSV))
	if !errors.Is(err, ErrTooManyImports) {
		t.Fatalf("StartImport() error = %v, want ErrTooManyImports", err)
	}
	if n := len(svc.imports); n != 0 {
		t.Errorf("sessions after busy start = %d, want 0", n)
	}

	svc.Limiter().Release()
	view, err := svc.StartImport(ctx, csvFile(goodCSV))
	if err != nil {
		t.Fatalf("StartImport() error = %v", err)
	}
	if n := len(svc.imports); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
	if svc.Limiter().Active() != 0 {
		t.Errorf("active imports = %d, want 0", svc.Limiter().Active())
	}
	if view.ID == "" {
		t.Error("view has no session id")
	}
}
