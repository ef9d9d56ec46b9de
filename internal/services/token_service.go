package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/mkravets/business-management-api/internal/errors"
	"github.com/mkravets/business-management-api/internal/repository"
)

var (
	// ErrTokenInvalid covers malformed, forged and expired tokens
	// presented for authentication.
	ErrTokenInvalid = apierrors.UnauthenticatedError("Invalid or expired token")
	// ErrTokenRevoked is raised for tokens found on the revocation
	// list. Same client message as ErrTokenInvalid, distinct branch.
	ErrTokenRevoked = apierrors.UnauthenticatedError("Invalid or expired token")
	// ErrTokenAlreadyExpired is the logout-only rejection of a token
	// whose remaining lifetime is zero or negative.
	ErrTokenAlreadyExpired = apierrors.UnauthenticatedError("The token is already expired")
	// ErrInvalidTokenPayload is raised when claims lack a subject or expiry.
	ErrInvalidTokenPayload = apierrors.UnauthenticatedError("Invalid token payload")
)

// TokenService issues and validates the signed bearer tokens binding a
// principal's email to an expiry, and revokes them through the
// blacklist on logout.
type TokenService struct {
	secret    string
	ttl       time.Duration
	blacklist repository.TokenBlacklist
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttlMinutes int, blacklist repository.TokenBlacklist) *TokenService {
	return &TokenService{
		secret:    secret,
		ttl:       time.Duration(ttlMinutes) * time.Minute,
		blacklist: blacklist,
	}
}

// Generate signs a token whose subject is the principal's email.
func (s *TokenService) Generate(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate resolves the subject email of a live token. The revocation
// list is consulted before any decoding so a blacklisted token stays
// dead regardless of its signature.
func (s *TokenService) Validate(ctx context.Context, token string) (string, error) {
	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return "", apierrors.StorageError("Something went wrong when checking the token", err)
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	claims, err := s.parse(token)
	if err != nil {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrInvalidTokenPayload
	}

	return claims.Subject, nil
}

// Revoke blacklists the token for exactly its remaining lifetime, so
// the revocation entry expires together with the token. Tokens that
// already expired are rejected on a branch distinct from malformed
// ones.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		if apierrors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenAlreadyExpired
		}
		return ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidTokenPayload
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return ErrTokenAlreadyExpired
	}

	if err := s.blacklist.Add(ctx, token, ttl); err != nil {
		return apierrors.StorageError("Something went wrong when revoking the token", err)
	}

	return nil
}

func (s *TokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}
