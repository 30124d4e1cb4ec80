// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/metrics"
	"github.com/CrawX/go-imap-webmail/session"
	"github.com/CrawX/go-imap-webmail/smtpsender"

	"github.com/sirupsen/logrus"
)

const (
	loginIpPrefix    = "login:ip:"
	loginEmailPrefix = "login:email:"
)

func retrySeconds(d time.Duration) int {
	seconds := int((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

func rateLimited(message string, retryAfter time.Duration) *Failure {
	return &Failure{
		Kind:       ErrRateLimited,
		Message:    fmt.Sprintf(message, retrySeconds(retryAfter)),
		RetryAfter: retryAfter,
	}
}

func domainOf(email string) string {
	return email[strings.LastIndex(email, "@")+1:]
}

// Login checks the credentials against the IMAP server and builds the session
// for the user. Both the client address and the account are rate limited, a
// successful login clears both counters.
func (w *Webmail) Login(ctx context.Context, ip, email, password string) (*session.Session, *domain.Branding, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) == 0 || len(password) == 0 {
		return nil, nil, fail(ErrInvalidInput, "E-mail e senha são obrigatórios.")
	}
	if len(smtpsender.ValidRecipients([]domain.Address{{Email: email}})) != 1 {
		return nil, nil, fail(ErrInvalidInput, "E-mail inválido.")
	}

	baseLogger := w.l.WithFields(logrus.Fields{"user": email, "ip": ip})
	ipKey, emailKey := loginIpPrefix+ip, loginEmailPrefix+email

	allowed, retryAfter := w.limiter.Allow(ipKey, w.configuration.LoginIpLimit, w.configuration.LoginIpWindow)
	if !allowed {
		baseLogger.WithFields(logrus.Fields{"retryAfter": retryAfter}).Warn("Login limit per address reached")
		w.counters.LoginAttempt(metrics.ResultRateLimited)
		return nil, nil, rateLimited("Muitas tentativas. Tente novamente em %d segundos.", retryAfter)
	}
	allowed, retryAfter = w.limiter.Allow(emailKey, w.configuration.LoginEmailLimit, w.configuration.LoginEmailWindow)
	if !allowed {
		baseLogger.WithFields(logrus.Fields{"retryAfter": retryAfter}).Warn("Login limit per account reached")
		w.counters.LoginAttempt(metrics.ResultRateLimited)
		return nil, nil, rateLimited("Muitas tentativas para esta conta. Tente novamente em %d segundos.", retryAfter)
	}

	err := w.authenticator.Authenticate(email, password)
	if err != nil {
		w.counters.LoginAttempt(metrics.ResultFailed)
		if errors.Is(err, domain.ErrAuthFailed) {
			baseLogger.Info("Login rejected")
			return nil, nil, fail(ErrUnauthorized, "E-mail ou senha incorretos.")
		}
		baseLogger.WithError(err).Warn("Could not reach mail server")
		return nil, nil, fail(ErrUnavailable, "Não foi possível conectar ao servidor de e-mail.")
	}

	w.limiter.Clear(ipKey)
	w.limiter.Clear(emailKey)

	d, err := w.persistence.FindOrCreateDomain(domainOf(email))
	if err != nil {
		baseLogger.WithError(err).Error("Could not load domain")
		return nil, nil, fail(ErrInternal, "Erro interno.")
	}

	sealed, err := w.sealer.Seal(password)
	if err != nil {
		baseLogger.WithError(err).Error("Could not seal password")
		return nil, nil, fail(ErrInternal, "Erro interno.")
	}

	s := &session.Session{
		Email:          email,
		SealedPassword: sealed,
		Domain:         d.Name,
		DomainId:       d.Id,
		IsAdmin:        w.directory.IsDomainAdmin(ctx, email, d.Name),
	}

	branding, err := w.persistence.Branding(d.Id)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not load branding, using defaults")
		branding = domain.DefaultBranding()
	}

	w.counters.LoginAttempt(metrics.ResultSuccess)
	baseLogger.WithFields(logrus.Fields{"domain": d.Name, "admin": s.IsAdmin}).Info("Logged in")
	return s, branding, nil
}

// Logout revokes the session until expiresAt and drops whatever it left
// behind. Uploads are cleaned up even when the revocation cannot be stored.
func (w *Webmail) Logout(s *session.Session, expiresAt time.Time) error {
	err := w.uploads.Cleanup(s.Id)
	if err != nil {
		w.logger(s).WithError(err).Warn("Could not clean up uploads")
	}

	err = w.persistence.RevokeSession(s.Id, expiresAt)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not revoke session")
		return fail(ErrInternal, "Erro interno.")
	}

	w.logger(s).Info("Logged out")
	return nil
}

// Authorize refuses sessions that were logged out before their token expired.
func (w *Webmail) Authorize(s *session.Session) error {
	revoked, err := w.persistence.SessionRevoked(s.Id)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not check session revocation")
		return fail(ErrInternal, "Erro interno.")
	}
	if revoked {
		return fail(ErrUnauthorized, "Sessão expirada.")
	}
	return nil
}

// LoginBranding picks the branding of the domain served under host, or the
// defaults when host belongs to no known domain.
func (w *Webmail) LoginBranding(host string) *domain.Branding {
	d, err := w.persistence.DomainForHost(host)
	if err != nil {
		w.l.WithError(err).WithFields(logrus.Fields{"host": host}).Warn("Could not look up domain for host")
		return domain.DefaultBranding()
	}
	if d == nil {
		return domain.DefaultBranding()
	}

	branding, err := w.persistence.Branding(d.Id)
	if err != nil {
		w.l.WithError(err).WithFields(logrus.Fields{"domain": d.Name}).Warn("Could not load branding")
		return domain.DefaultBranding()
	}
	return branding
}

// RefreshAdmin asks the directory again once the admin decision stored in s is
// older than the recheck interval. It reports whether s was updated.
func (w *Webmail) RefreshAdmin(ctx context.Context, s *session.Session) bool {
	now := w.now()
	if now.Sub(s.AdminCheckedAt) < w.configuration.AdminRecheck {
		return false
	}

	isAdmin := w.directory.IsDomainAdmin(ctx, s.Email, s.Domain)
	if isAdmin != s.IsAdmin {
		w.logger(s).WithFields(logrus.Fields{"admin": isAdmin}).Info("Admin status changed")
	}
	s.IsAdmin = isAdmin
	s.AdminCheckedAt = now.Truncate(time.Second)
	return true
}
