package core

import (
	"strings"
	"testing"
	"time"
)

func newTestTokens(t *testing.T, now time.Time) *PreviewTokens {
	t.Helper()
	p, err := NewPreviewTokens("0123456789abcdef0123456789abcdef", 0)
	if err != nil {
		t.Fatalf("NewPreviewTokens: %v", err)
	}
	p.now = func() time.Time { return now }
	return p
}

func TestPreviewTokens_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newTestTokens(t, now)

	tok, err := p.Issue("user-1", "company-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := now.Add(DefaultPreviewTTL); !tok.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", tok.ExpiresAt, want)
	}

	claims, err := p.Verify(tok.Token, "company-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.CompanyID != "company-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestPreviewTokens_Rejects(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := newTestTokens(t, now)
	tok, err := p.Issue("user-1", "company-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, _ := NewPreviewTokens("ffffffffffffffffffffffffffffffff", 0)
	other.now = p.now
	forged, _ := other.Issue("user-1", "company-1")

	tests := []struct {
		name      string
		token     string
		companyID string
		at        time.Time
	}{
		{"wrong company", tok.Token, "company-2", now},
		{"expired", tok.Token, "company-1", now.Add(DefaultPreviewTTL + time.Minute)},
		{"wrong secret", forged.Token, "company-1", now},
		{"garbage", "not-a-token", "company-1", now},
		{"empty", "", "company-1", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			p.now = func() time.Time { return at }
			_, err := p.Verify(tt.token, tt.companyID)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "preview token") {
				t.Errorf("error %q should mention the preview token", err)
			}
		})
	}
}

func TestNewPreviewTokens_ShortSecret(t *testing.T) {
	if _, err := NewPreviewTokens("short", time.Minute); err == nil {
		t.Fatal("expected error for short secret")
	}
}
