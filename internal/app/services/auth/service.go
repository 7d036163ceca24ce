// Package auth issues and verifies authentication sessions. Login resolves
// the user by email, checks the password against the stored bcrypt hash and
// persists a session carrying a signed JWT.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/roamdine/platform/internal/app/audit"
	"github.com/roamdine/platform/internal/app/core/usecase"
	"github.com/roamdine/platform/internal/app/domain/session"
	"github.com/roamdine/platform/internal/app/ratelimit"
	"github.com/roamdine/platform/internal/app/storage"
	"github.com/roamdine/platform/internal/errors"
	"github.com/roamdine/platform/pkg/logger"
)

// DefaultSessionTTL applies when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Claims carries the identity encoded in a session token.
type Claims struct {
	UserID   string
	TenantID string
}

// Service exposes login and session operations.
type Service struct {
	directory storage.UserDirectory
	sessions  *usecase.UseCase[*session.Session]
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	log       *logger.Logger
}

// New constructs the auth service. The secret signs session tokens and must
// not be empty.
func New(directory storage.UserDirectory, sessions storage.Repository[*session.Session], secret string, ttl time.Duration, audits audit.Logger, limiter ratelimit.Limiter, log *logger.Logger) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("auth secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{
		directory: directory,
		sessions:  usecase.New[*session.Session]("session", usecase.SchemaFunc[*session.Session](session.Validate), sessions, audits, limiter, log),
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
		log:       log,
	}, nil
}

// Login verifies the credentials and returns a fresh session. Unknown emails
// and wrong passwords fail identically so the response does not reveal which
// accounts exist.
func (s *Service) Login(ctx context.Context, email, password string, actor usecase.Context) (*session.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.Authorization("invalid credentials")
	}

	u, err := s.directory.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.Persistence(err)
	}
	if u == nil {
		return nil, errors.Authorization("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.log.WithField("user_id", u.ID).Warn("login rejected")
		return nil, errors.Authorization("invalid credentials")
	}

	now := s.now().UTC()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       u.ID,
		"tenant_id": u.TenantID,
		"iat":       now.Unix(),
		"exp":       expires.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.Persistence(err)
	}

	if actor.ActorID == "" {
		actor.ActorID = u.ID
	}
	sess := &session.Session{
		UserID:    u.ID,
		TenantID:  u.TenantID,
		Token:     signed,
		ExpiresAt: expires,
	}
	return s.sessions.Create(ctx, sess, actor)
}

// ParseToken verifies a session token's signature and expiry and returns the
// identity it encodes.
func (s *Service) ParseToken(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errors.Authorization("invalid token")
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.Authorization("invalid token")
	}
	claims := Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = sub
	}
	if tenantID, ok := mapClaims["tenant_id"].(string); ok {
		claims.TenantID = tenantID
	}
	if claims.UserID == "" {
		return Claims{}, errors.Authorization("invalid token")
	}
	return claims, nil
}

func (s *Service) GetSession(ctx context.Context, id string, actor usecase.Context) (*session.Session, error) {
	return s.sessions.Get(ctx, id, actor)
}

func (s *Service) ListSessions(ctx context.Context, actor usecase.Context) ([]*session.Session, error) {
	return s.sessions.List(ctx, actor)
}
