// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/CrawX/go-imap-webmail/attachments"
	"github.com/CrawX/go-imap-webmail/directory"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"
	"github.com/CrawX/go-imap-webmail/session"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrUnavailable  = errors.New("mail server unavailable")
	ErrFailed       = errors.New("operation failed")
	ErrInternal     = errors.New("internal error")
)

// Failure is what every operation returns when it cannot serve the request.
// Message is meant for the end user, Kind for the transport layer.
type Failure struct {
	Kind       error
	Message    string
	RetryAfter time.Duration
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Kind
}

func fail(kind error, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

type MailboxFactory func(creds *domain.Credentials) domain.Mailbox

type Sealer interface {
	Seal(password string) ([]byte, error)
}

type Uploads interface {
	Save(sessionId, name string, r io.Reader) (*attachments.Upload, error)
	Resolve(sessionId string, refs []attachments.Ref) []domain.OutgoingAttachment
	Remove(sessionId, id string) error
	Cleanup(sessionId string) error
}

type Assets interface {
	Save(domainName string, kind attachments.AssetKind, r io.Reader) (string, error)
	Remove(name string) error
}

type Counters interface {
	LoginAttempt(result string)
	MailSent(result string)
	Reported(learnType domain.LearnType, count int)
}

type noopCounters struct{}

func (noopCounters) LoginAttempt(string)            {}
func (noopCounters) MailSent(string)                {}
func (noopCounters) Reported(domain.LearnType, int) {}

// Collaborators are the services a Webmail works with. Directory, Learner,
// Assets and Counters may be nil.
type Collaborators struct {
	Persistence   domain.Persistence
	Directory     domain.AdminDirectory
	Authenticator domain.Authenticator
	Sealer        Sealer
	Limiter       domain.RateLimiter
	Sender        domain.MailSender
	Learner       domain.ConcurrentSpamLearner
	Uploads       Uploads
	Assets        Assets
	Mailbox       MailboxFactory
	Counters      Counters
}

type Webmail struct {
	persistence   domain.Persistence
	directory     domain.AdminDirectory
	authenticator domain.Authenticator
	sealer        Sealer
	limiter       domain.RateLimiter
	sender        domain.MailSender
	learner       domain.ConcurrentSpamLearner
	uploads       Uploads
	assets        Assets
	mailbox       MailboxFactory
	counters      Counters

	configuration *configuration
	now           func() time.Time

	l *logrus.Logger
}

func NewWebmail(c Collaborators, configFunc ...ConfigFunc) (*Webmail, error) {
	config := defaultConfiguration()
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	if c.Persistence == nil || c.Authenticator == nil || c.Sealer == nil || c.Limiter == nil ||
		c.Sender == nil || c.Uploads == nil || c.Mailbox == nil {
		return nil, errors.New("missing collaborator")
	}

	w := &Webmail{
		persistence:   c.Persistence,
		directory:     c.Directory,
		authenticator: c.Authenticator,
		sealer:        c.Sealer,
		limiter:       c.Limiter,
		sender:        c.Sender,
		learner:       c.Learner,
		uploads:       c.Uploads,
		assets:        c.Assets,
		mailbox:       c.Mailbox,
		counters:      c.Counters,
		configuration: config,
		now:           time.Now,
		l:             log.Logger(log.LOG_WEBMAIL),
	}
	if w.counters == nil {
		w.counters = noopCounters{}
	}
	if w.directory == nil {
		w.directory = directory.Nobody{}
	}

	return w, nil
}

// withMailbox opens one connection for the duration of f.
func (w *Webmail) withMailbox(s *session.Session, f func(mb domain.Mailbox) error) error {
	mb := w.mailbox(s.Credentials())
	if !mb.Connect() {
		w.l.WithFields(logrus.Fields{"user": s.Email}).Info("Could not connect mailbox")
		return fail(ErrUnavailable, "Falha na conexão")
	}
	defer mb.Disconnect()

	return f(mb)
}

func (w *Webmail) logger(s *session.Session) *logrus.Entry {
	return w.l.WithFields(logrus.Fields{"user": s.Email, "session": s.Id})
}
