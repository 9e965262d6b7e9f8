package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultPreviewTTL is how long a preview link stays valid.
const DefaultPreviewTTL = 15 * time.Minute

const previewAudience = "preview"

// PreviewClaims are carried by a preview token. The subject is the user
// who issued it.
type PreviewClaims struct {
	CompanyID string `json:"cid"`
	jwt.RegisteredClaims
}

// PreviewToken is a signed, short-lived grant to view an unpublished
// careers page.
type PreviewToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PreviewTokens issues and verifies preview tokens with an HMAC secret.
type PreviewTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewPreviewTokens returns a signer. A non-positive ttl selects
// DefaultPreviewTTL.
func NewPreviewTokens(secret string, ttl time.Duration) (*PreviewTokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("preview token secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewTokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token that lets its holder preview companyID.
func (p *PreviewTokens) Issue(userID, companyID string) (PreviewToken, error) {
	now := p.now()
	exp := now.Add(p.ttl)

	claims := PreviewClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{previewAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return PreviewToken{}, fmt.Errorf("sign preview token: %w", err)
	}
	return PreviewToken{Token: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify checks the signature, audience and expiry of raw and that it was
// issued for companyID.
func (p *PreviewTokens) Verify(raw, companyID string) (*PreviewClaims, error) {
	var claims PreviewClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(previewAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
		jwt.WithLeeway(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid preview token: %w", err)
	}
	if claims.CompanyID != companyID {
		return nil, errors.New("preview token was issued for another company")
	}
	return &claims, nil
}
