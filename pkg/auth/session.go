package auth

import (
	"context"
	"slices"

	jwt "github.com/golang-jwt/jwt/v5"
	"k8s.io/utils/clock"
)

// Session is the authentication state of the user.
//
// Tokens are issued by the identity provider. This package never verifies signatures:
// the backend does.
type Session interface {
	TokenSource

	// Authenticated reports whether a token is available and not expired.
	Authenticated(ctx context.Context) bool

	// Subject is the user id ("sub" claim) of the token. It is empty when unknown.
	Subject(ctx context.Context) string

	// Username is the "preferred_username" claim of the token. It is empty when unknown.
	Username(ctx context.Context) string

	// HasRole reports whether the token has the realm role.
	HasRole(ctx context.Context, role string) bool
}

// Claims in tokens from the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username,omitempty"`
	RealmAccess       struct {
		Roles []string `json:"roles,omitempty"`
	} `json:"realm_access"`
}

type session struct {
	source  TokenSource
	clock   clock.PassiveClock
	subject string
	issuer  string
}

type SessionOption func(*session) *session

// WithClock replaces the clock used to check expiry.
func WithClock(c clock.PassiveClock) SessionOption {
	return func(s *session) *session {
		s.clock = c
		return s
	}
}

// WithSubject sets the subject used when the token does not tell it.
//
// It is used for opaque (non-JWT) tokens.
func WithSubject(subject string) SessionOption {
	return func(s *session) *session {
		s.subject = subject
		return s
	}
}

// WithIssuer makes tokens from other issuers unauthenticated.
func WithIssuer(issuer string) SessionOption {
	return func(s *session) *session {
		s.issuer = issuer
		return s
	}
}

func NewSession(source TokenSource, options ...SessionOption) Session {
	s := &session{source: source, clock: clock.RealClock{}}
	for _, opt := range options {
		s = opt(s)
	}
	return s
}

func (s *session) Token(ctx context.Context) (string, error) {
	return s.source.Token(ctx)
}

// claims of the current token.
//
// ok is false when no token is available. claims is nil when the token is not a JWT.
func (s *session) claims(ctx context.Context) (claims *Claims, ok bool) {
	tok, err := s.source.Token(ctx)
	if err != nil || tok == "" {
		return nil, false
	}

	c := new(Claims)
	if _, _, err := jwt.NewParser().ParseUnverified(tok, c); err != nil {
		return nil, true
	}
	return c, true
}

func (s *session) Authenticated(ctx context.Context) bool {
	c, ok := s.claims(ctx)
	if !ok {
		return false
	}
	if c == nil {
		return true
	}
	if s.issuer != "" && c.Issuer != s.issuer {
		return false
	}
	if c.ExpiresAt != nil && !s.clock.Now().Before(c.ExpiresAt.Time) {
		return false
	}
	return true
}

func (s *session) Subject(ctx context.Context) string {
	if c, ok := s.claims(ctx); ok && c != nil && c.Subject != "" {
		return c.Subject
	}
	return s.subject
}

func (s *session) Username(ctx context.Context) string {
	if c, ok := s.claims(ctx); ok && c != nil {
		return c.PreferredUsername
	}
	return ""
}

func (s *session) HasRole(ctx context.Context, role string) bool {
	c, ok := s.claims(ctx)
	if !ok || c == nil {
		return false
	}
	return slices.Contains(c.RealmAccess.Roles, role)
}
