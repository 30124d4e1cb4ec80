// SPDX-License-Identifier: GPL-3.0-or-later
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultLifetime = 8 * time.Hour

	issuer = "go-imap-webmail"
)

var ErrInvalidSession = errors.New("invalid session")

// Session is everything a request needs to act on behalf of a logged in user.
type Session struct {
	Id             string
	Email          string
	SealedPassword []byte
	Domain         string
	DomainId       int64
	IsAdmin        bool
	LoginAt        time.Time
	AdminCheckedAt time.Time
}

// Credentials is the capability handed to the mail transports.
func (s *Session) Credentials() *domain.Credentials {
	return &domain.Credentials{
		Email:          s.Email,
		SealedPassword: s.SealedPassword,
	}
}

type claims struct {
	Email          string `json:"email"`
	SealedPassword []byte `json:"pwd"`
	Domain         string `json:"domain"`
	DomainId       int64  `json:"domain_id"`
	IsAdmin        bool   `json:"admin"`
	AdminCheckedAt int64  `json:"admin_checked_at"`
	jwt.RegisteredClaims
}

// Issuer signs sessions into HS256 tokens with an absolute lifetime.
type Issuer struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewIssuer(secret string, lifetime time.Duration) *Issuer {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	return &Issuer{
		key:      []byte("session-sign:" + secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue assigns a fresh id and login time to s and returns the signed token.
func (i *Issuer) Issue(s *Session) (string, error) {
	s.Id = uuid.NewString()
	s.LoginAt = i.now().Truncate(time.Second)
	s.AdminCheckedAt = s.LoginAt

	return i.Reissue(s)
}

// Reissue signs an updated session. Id and lifetime stay those of the login.
func (i *Issuer) Reissue(s *Session) (string, error) {
	c := &claims{
		Email:          s.Email,
		SealedPassword: s.SealedPassword,
		Domain:         s.Domain,
		DomainId:       s.DomainId,
		IsAdmin:        s.IsAdmin,
		AdminCheckedAt: s.AdminCheckedAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.Id,
			Issuer:    issuer,
			Subject:   s.Email,
			IssuedAt:  jwt.NewNumericDate(s.LoginAt),
			ExpiresAt: jwt.NewNumericDate(i.ExpiresAt(s)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("could not sign session: %w", err)
	}

	return token, nil
}

func (i *Issuer) ExpiresAt(s *Session) time.Time {
	return s.LoginAt.Add(i.lifetime)
}

// Parse verifies signature and expiry. Every failure is ErrInvalidSession.
func (i *Issuer) Parse(token string) (*Session, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(
		token,
		c,
		func(*jwt.Token) (interface{}, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSession, err.Error())
	}
	if len(c.Email) == 0 || len(c.SealedPassword) == 0 {
		return nil, ErrInvalidSession
	}

	var loginAt time.Time
	if c.IssuedAt != nil {
		loginAt = c.IssuedAt.Time
	}

	return &Session{
		Id:             c.ID,
		Email:          c.Email,
		SealedPassword: c.SealedPassword,
		Domain:         c.Domain,
		DomainId:       c.DomainId,
		IsAdmin:        c.IsAdmin,
		LoginAt:        loginAt,
		AdminCheckedAt: time.Unix(c.AdminCheckedAt, 0),
	}, nil
}
