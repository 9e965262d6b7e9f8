package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{"no proxies configured", nil, "10.0.0.5:4000", map[string]string{"X-Real-IP": "198.51.100.1"}, "10.0.0.5:4000"},
		{"untrusted remote", []string{"10.0.0.0/8"}, "192.0.2.9:4000", map[string]string{"X-Real-IP": "198.51.100.1"}, "192.0.2.9:4000"},
		{"trusted x-real-ip", []string{"10.0.0.0/8"}, "10.0.0.5:4000", map[string]string{"X-Real-IP": "198.51.100.1"}, "198.51.100.1"},
		{"trusted first forwarded hop", []string{"10.0.0.0/8"}, "10.0.0.5:4000", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.7"}, "198.51.100.2"},
		{"bare ip entry", []string{"10.0.0.5"}, "10.0.0.5:4000", map[string]string{"X-Real-IP": "198.51.100.3"}, "198.51.100.3"},
		{"invalid header ignored", []string{"10.0.0.0/8"}, "10.0.0.5:4000", map[string]string{"X-Real-IP": "somewhere"}, "10.0.0.5:4000"},
		{"invalid entry skipped", []string{"not-a-cidr"}, "10.0.0.5:4000", map[string]string{"X-Real-IP": "198.51.100.1"}, "10.0.0.5:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), r)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func sign(t *testing.T, secret string, claims jwt.Claims, method jwt.SigningMethod) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestAuthenticator_Verify(t *testing.T) {
	a := NewAuthenticator("secret", "sb-access-token")
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	valid := sign(t, "secret", &AccessClaims{
		Email:            "dev@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future},
	}, jwt.SigningMethodHS256)

	u, err := a.Verify(valid)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if u.ID != "user-1" || u.Email != "dev@example.com" {
		t.Errorf("Verify() = %+v", u)
	}

	rejected := map[string]string{
		"expired":      sign(t, "secret", jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: past}, jwt.SigningMethodHS256),
		"no expiry":    sign(t, "secret", jwt.RegisteredClaims{Subject: "user-1"}, jwt.SigningMethodHS256),
		"no subject":   sign(t, "secret", jwt.RegisteredClaims{ExpiresAt: future}, jwt.SigningMethodHS256),
		"wrong secret": sign(t, "other", jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future}, jwt.SigningMethodHS256),
		"wrong method": sign(t, "secret", jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future}, jwt.SigningMethodHS512),
		"not a token":  "abc.def.ghi",
		"empty":        "",
	}
	for name, raw := range rejected {
		if _, err := a.Verify(raw); err == nil {
			t.Errorf("%s: Verify() accepted the token", name)
		}
	}
}

func TestRequireUser(t *testing.T) {
	a := NewAuthenticator("secret", "sb-access-token")
	h := a.Authenticate(RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := core.UserFromContext(r.Context())
		w.Write([]byte(u.ID))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	tok := sign(t, "secret", jwt.RegisteredClaims{
		Subject:   "user-9",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, jwt.SigningMethodHS256)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK || rec.Body.String() != "user-9" {
		t.Errorf("authenticated = %d %q", rec.Code, rec.Body.String())
	}
}
