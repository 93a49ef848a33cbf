package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeAccess = "access"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the caller identity the auth middleware loads into the
// request context. Subject always mirrors UserID.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID int64, email, role string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type Option func(*HMACService)

// WithIssuer stamps and requires the iss claim.
func WithIssuer(iss string) Option {
	return func(s *HMACService) { s.issuer = iss }
}

func WithClock(now func() time.Time) Option {
	return func(s *HMACService) {
		if now != nil {
			s.now = now
		}
	}
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration, opts ...Option) *HMACService {
	s := &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *HMACService) GenerateAccessToken(userID int64, email, role string) (string, error) {
	switch {
	case len(s.secret) == 0, s.expiresIn <= 0:
		return "", ErrTokenInvalid
	case userID <= 0, role == "":
		return "", ErrTokenInvalid
	}

	issued := s.now().UTC().Truncate(time.Second)
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwtlib.NewNumericDate(issued),
			NotBefore: jwtlib.NewNumericDate(issued),
			ExpiresAt: jwtlib.NewNumericDate(issued.Add(s.expiresIn)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken reports ErrTokenExpired for an otherwise valid token past
// its exp, and ErrTokenInvalid for everything else.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	parserOpts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwtlib.WithIssuer(s.issuer))
	}

	var claims Claims
	_, err := jwtlib.NewParser(parserOpts...).ParseWithClaims(tokenString, &claims, s.key)
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, ErrTokenInvalid
	}

	if claims.TokenType != TokenTypeAccess || claims.UserID <= 0 || claims.Role == "" {
		return Claims{}, ErrTokenInvalid
	}
	if claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *HMACService) key(*jwtlib.Token) (any, error) {
	if len(s.secret) == 0 {
		return nil, ErrTokenInvalid
	}
	return s.secret, nil
}
