// Package auth issues and verifies the stateless access/refresh JWT pair and
// hashes user passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType discriminates access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the JWT payload: registered claims (iat, exp, jti) plus the user
// identity and the token type.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Type   TokenType `json:"typ"`
}

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID string
	Email  string
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer signs and verifies tokens with a shared HS256 secret.
type Issuer struct {
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
	now             func() time.Time
}

// NewIssuer constructs an Issuer using the given secret and lifetimes.
func NewIssuer(secret []byte, accessValidity, refreshValidity time.Duration) *Issuer {
	return &Issuer{
		secret:          secret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
		now:             time.Now,
	}
}

// IssueTokens returns a fresh access/refresh pair for the user.
func (i *Issuer) IssueTokens(userID, email string) (*TokenPair, error) {
	access, err := i.sign(userID, email, TokenTypeAccess, i.accessValidity)
	if err != nil {
		return nil, err
	}
	refresh, err := i.sign(userID, email, TokenTypeRefresh, i.refreshValidity)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks an access token. Any failure yields common.ErrInvalidToken.
func (i *Issuer) VerifyAccess(token string) (*Identity, error) {
	return i.verify(token, TokenTypeAccess)
}

// VerifyRefresh checks a refresh token. Any failure yields common.ErrInvalidToken.
func (i *Issuer) VerifyRefresh(token string) (*Identity, error) {
	return i.verify(token, TokenTypeRefresh)
}

func (i *Issuer) sign(userID, email string, typ TokenType, validity time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Email:  email,
		Type:   typ,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (i *Issuer) verify(tokenString string, want TokenType) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Type != want || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
