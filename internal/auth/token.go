package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime of an access token.
const DefaultTokenTTL = 30 * time.Minute

var (
	// ErrTokenExpired is returned for a well-formed token whose expiry has
	// passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned when the signature check fails or the
	// payload is malformed.
	ErrTokenInvalid = errors.New("token invalid")
)

// TeamClaims is the identity carried by a verified access token.
type TeamClaims struct {
	TeamID   string
	TeamName string
}

// tokenClaims is the wire shape of the JWT payload.
type tokenClaims struct {
	jwt.RegisteredClaims
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

// TokenIssuer signs and verifies stateless access tokens. Tokens carry the
// team identity and an expiry; there is no revocation list, so expiry is the
// only invalidation mechanism.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // injectable clock for testing
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and
// token lifetime. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token embedding the team id and name.
func (i *TokenIssuer) Issue(teamID, teamName string) (string, error) {
	now := i.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		TeamID:   teamID,
		TeamName: teamName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and expiry and returns the embedded
// claims. Expired tokens fail with ErrTokenExpired even when the signature
// is valid; everything else fails with ErrTokenInvalid.
func (i *TokenIssuer) Verify(tokenString string) (*TeamClaims, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if parsed.TeamID == "" {
		return nil, ErrTokenInvalid
	}

	return &TeamClaims{TeamID: parsed.TeamID, TeamName: parsed.TeamName}, nil
}
