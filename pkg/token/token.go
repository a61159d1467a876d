// Package token issues and validates the signed bearer tokens used for
// stateless auth. All lifetimes and the signing secret are injected at
// construction so tests can use short expiries and throwaway secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure. Bad signature, malformed
// claims, missing subject and expiry all collapse into this one error so the
// API surfaces a single unauthorized outcome.
var ErrInvalidToken = errors.New("invalid or expired token")

const resetType = "reset"

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func New(cfg Config) *Service {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.ResetTTL == 0 {
		cfg.ResetTTL = 15 * time.Minute
	}

	return &Service{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		resetTTL:   cfg.ResetTTL,
	}
}

// Access issues a short-lived token for the given subject
func (s *Service) Access(subject string) (string, error) {
	return s.sign(subject, s.accessTTL, "")
}

// Refresh issues a long-lived token for the given subject
func (s *Service) Refresh(subject string) (string, error) {
	return s.sign(subject, s.refreshTTL, "")
}

// Reset issues a password-reset token. The reset tag keeps it from being
// replayed as an access token.
func (s *Service) Reset(subject string) (string, error) {
	return s.sign(subject, s.resetTTL, resetType)
}

func (s *Service) sign(subject string, ttl time.Duration, typ string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	if typ != "" {
		claims["typ"] = typ
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the subject along with
// the type tag, if any
func (s *Service) Verify(tokenStr string) (subject, typ string, err error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}

	subject, ok = claims["sub"].(string)
	if !ok || subject == "" {
		return "", "", ErrInvalidToken
	}

	if _, ok := claims["exp"]; !ok {
		return "", "", ErrInvalidToken
	}

	typ, _ = claims["typ"].(string)
	return subject, typ, nil
}

// VerifyAccess accepts access and refresh tokens but rejects reset tokens
func (s *Service) VerifyAccess(tokenStr string) (string, error) {
	subject, typ, err := s.Verify(tokenStr)
	if err != nil {
		return "", err
	}

	if typ == resetType {
		return "", ErrInvalidToken
	}

	return subject, nil
}

// VerifyReset accepts only tokens carrying the reset tag. A well-formed,
// unexpired token without the tag is still rejected.
func (s *Service) VerifyReset(tokenStr string) (string, error) {
	subject, typ, err := s.Verify(tokenStr)
	if err != nil {
		return "", err
	}

	if typ != resetType {
		return "", ErrInvalidToken
	}

	return subject, nil
}
