package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

// AccessClaims are the access token claims the service reads. Tokens are
// issued by the hosted auth provider; sub is the user id.
type AccessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator resolves the caller from an HS256 access token sent as a
// Bearer token or in the session cookie.
type Authenticator struct {
	secret []byte
	cookie string
}

// NewAuthenticator returns an Authenticator verifying tokens with secret.
func NewAuthenticator(secret, cookie string) *Authenticator {
	return &Authenticator{secret: []byte(secret), cookie: cookie}
}

// Authenticate attaches the user of a valid token to the request context.
// Requests without a token, or with one that does not verify, continue
// anonymously; RequireUser decides whether that is acceptable.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := a.token(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.Verify(raw)
		if err != nil {
			slog.Debug("auth: token rejected",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(core.ContextWithUser(r.Context(), user)))
	})
}

// Verify checks an access token and returns its user.
func (a *Authenticator) Verify(raw string) (core.User, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return core.User{}, err
	}
	if claims.Subject == "" {
		return core.User{}, jwt.ErrTokenInvalidSubject
	}
	return core.User{ID: claims.Subject, Email: claims.Email}, nil
}

// token returns the raw access token of r, or "".
func (a *Authenticator) token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if a.cookie != "" {
		if c, err := r.Cookie(a.cookie); err == nil {
			return c.Value
		}
	}
	return ""
}

// RequireUser rejects requests that Authenticate left anonymous.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := core.UserFromContext(r.Context()); !ok {
			slog.Warn("auth: missing user",
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized","code":"AUTH001"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
