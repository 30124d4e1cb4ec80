// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"

	"github.com/sirupsen/logrus"
)

var _ domain.Authenticator = &Authenticator{}

type Authenticator struct {
	settings Settings
	dial     dialFunc
	l        *logrus.Logger
}

func NewAuthenticator(settings Settings) *Authenticator {
	return &Authenticator{
		settings: settings,
		dial:     dialServer,
		l:        log.Logger(log.LOG_IMAP),
	}
}

// Authenticate logs in and out again. A rejected login wraps
// domain.ErrAuthFailed, anything else means the server could not be used.
func (a *Authenticator) Authenticate(email, password string) error {
	conn, err := a.dial(a.settings, email, password, a.l)
	if err != nil {
		a.l.WithError(err).WithField("user", email).Info("Authentication failed")
		return err
	}

	err = conn.client.Logout()
	if err != nil {
		a.l.WithError(err).Debug("Logout failed")
	}
	return nil
}
