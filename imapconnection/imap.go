// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"

	"github.com/emersion/go-imap-move"
	"github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

const (
	SecurityTLS      = "tls"
	SecurityStartTLS = "starttls"
	SecurityNone     = "none"

	DefaultPageSize = 50
	MaxPageSize     = 100
)

type Settings struct {
	Host         string
	Port         int
	Security     string
	ValidateCert bool
	DialTimeout  time.Duration
}

func (s Settings) address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// link is one logged in connection together with the strategies chosen from
// the server capabilities.
type link struct {
	client   imapClient
	mover    mover
	expunger expunger
}

type dialFunc func(settings Settings, user, password string, l *logrus.Logger) (*link, error)

type noopObserver struct{}

func (noopObserver) ItemFailed(string, uint32, error)          {}
func (noopObserver) BatchCompleted(string, domain.BatchResult) {}

var _ domain.Mailbox = &ImapConnection{}

type ImapConnection struct {
	settings Settings
	creds    *domain.Credentials
	opener   domain.PasswordOpener
	observer domain.BatchObserver
	dial     dialFunc
	now      func() time.Time

	connection *link

	l *logrus.Logger
}

func NewImapConnection(settings Settings, creds *domain.Credentials, opener domain.PasswordOpener, observer domain.BatchObserver) *ImapConnection {
	if observer == nil {
		observer = noopObserver{}
	}

	return &ImapConnection{
		settings: settings,
		creds:    creds,
		opener:   opener,
		observer: observer,
		dial:     dialServer,
		now:      time.Now,
		l:        log.Logger(log.LOG_IMAP),
	}
}

// Connect opens the connection if there is none yet. It fails closed: every
// problem is logged and reported as false.
func (ic *ImapConnection) Connect() bool {
	if ic.connection != nil {
		return true
	}

	if ic.creds == nil || len(ic.creds.Email) == 0 || len(ic.creds.SealedPassword) == 0 {
		ic.l.Debug("No credentials, not connecting")
		return false
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"server": ic.settings.address(), "user": ic.creds.Email})

	password, err := ic.opener.OpenPassword(ic.creds.SealedPassword)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not open sealed password")
		return false
	}

	conn, err := ic.dial(ic.settings, ic.creds.Email, password, ic.l)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not connect to server")
		return false
	}

	ic.connection = conn
	return true
}

func (ic *ImapConnection) Disconnect() {
	if ic.connection == nil {
		return
	}

	err := ic.connection.client.Logout()
	if err != nil {
		ic.l.WithError(err).Debug("Logout failed")
	}
	ic.connection = nil
}

func (ic *ImapConnection) connected() bool {
	return ic.connection != nil
}

func (ic *ImapConnection) IsSystemFolder(name string) bool {
	return catalog.IsSystemFolder(name)
}

func dialServer(settings Settings, user, password string, l *logrus.Logger) (*link, error) {
	tlsConfig := &tls.Config{
		ServerName:         settings.Host,
		InsecureSkipVerify: !settings.ValidateCert,
	}
	dialer := &net.Dialer{Timeout: settings.DialTimeout}

	var imapClient *client.Client
	var err error
	if settings.Security == SecurityTLS {
		imapClient, err = client.DialWithDialerTLS(dialer, settings.address(), tlsConfig)
	} else {
		imapClient, err = client.DialWithDialer(dialer, settings.address())
	}
	if err != nil {
		return nil, fmt.Errorf("could not dial to imap: %w", err)
	}

	if settings.Security == SecurityStartTLS {
		err = imapClient.StartTLS(tlsConfig)
		if err != nil {
			imapClient.Logout()
			return nil, fmt.Errorf("could not start tls: %w", err)
		}
	}

	err = imapClient.Login(user, password)
	if err != nil {
		imapClient.Logout()
		return nil, fmt.Errorf("could not login to imap: %w (%s)", domain.ErrAuthFailed, err.Error())
	}

	uidPlusClient := uidplus.NewClient(imapClient)
	uidPlusSupported, err := uidPlusClient.SupportUidPlus()
	if err != nil {
		imapClient.Logout()
		return nil, fmt.Errorf("could not check for UIDPLUS support: %w", err)
	}

	moveClient := move.NewClient(imapClient)
	moveSupported, err := moveClient.SupportMove()
	if err != nil {
		imapClient.Logout()
		return nil, fmt.Errorf("could not check for MOVE support: %w", err)
	}

	conn := &link{client: imapClient}

	baseLogger := l.WithFields(logrus.Fields{"server": settings.address()})
	baseLogger.Debug("Logged in to server")

	if uidPlusSupported {
		baseLogger.Debug("UIDPLUS supported on server, using UID EXPUNGE")
		conn.expunger = &uidPlusExpunger{
			imapConn: uidPlusClient,
		}
	} else {
		baseLogger.Info("UIDPLUS not supported on server, expunging only without foreign tombstones")
		conn.expunger = &compatibilityExpunger{
			imapConn: imapClient,
		}
	}

	if moveSupported {
		baseLogger.Debug("MOVE supported on server")
		conn.mover = &moveMover{
			moveClient: moveClient,
		}
	} else {
		baseLogger.Info("MOVE not supported on server, falling back to copy&delete")
		conn.mover = &compatibilityMover{
			imapConn: imapClient,
			expunger: conn.expunger,
		}
	}

	return conn, nil
}
