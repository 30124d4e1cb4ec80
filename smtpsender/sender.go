// SPDX-License-Identifier: GPL-3.0-or-later
package smtpsender

//go:generate mockgen -destination=client_mocks_test.go -package=smtpsender -source sender.go
import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/sirupsen/logrus"
)

const (
	SecurityTLS      = "tls"
	SecurityStartTLS = "starttls"
	SecurityNone     = "none"

	DefaultSendLimit  = 30
	DefaultSendWindow = time.Hour

	rateLimitPrefix = "smtp_send:"
)

type Settings struct {
	Host     string
	Port     int
	Security string
	// VerifyPeerName=false still verifies the certificate chain but accepts
	// any host name, for relays reached through a loopback address.
	VerifyPeerName bool
	DialTimeout    time.Duration
	SendLimit      int
	SendWindow     time.Duration
}

func (s Settings) address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// smtpClient is the subset of *smtp.Client a submission needs.
type smtpClient interface {
	Auth(a sasl.Client) error
	SendMail(from string, to []string, r io.Reader) error
	Quit() error
	Close() error
}

type dialFunc func(settings Settings, tlsConfig *tls.Config) (smtpClient, error)

type displayNamer interface {
	DisplayName(email string) string
}

type SmtpSender struct {
	settings Settings
	opener   domain.PasswordOpener
	limiter  domain.RateLimiter
	names    displayNamer
	dial     dialFunc
	now      func() time.Time

	l *logrus.Logger
}

var _ domain.MailSender = &SmtpSender{}

func NewSmtpSender(settings Settings, opener domain.PasswordOpener, limiter domain.RateLimiter, names displayNamer) *SmtpSender {
	if settings.SendLimit < 1 {
		settings.SendLimit = DefaultSendLimit
	}
	if settings.SendWindow <= 0 {
		settings.SendWindow = DefaultSendWindow
	}

	return &SmtpSender{
		settings: settings,
		opener:   opener,
		limiter:  limiter,
		names:    names,
		dial:     dialServer,
		now:      time.Now,
		l:        log.Logger(log.LOG_SMTP),
	}
}

func failure(format string, args ...interface{}) *domain.SendResult {
	return &domain.SendResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// ValidRecipients drops every address that is not a plain mailbox.
func ValidRecipients(addresses []domain.Address) []domain.Address {
	valid := []domain.Address{}
	for _, a := range addresses {
		email := strings.TrimSpace(a.Email)
		parsed, err := mail.ParseAddress(email)
		if err != nil || parsed.Address != email || !strings.Contains(email, "@") {
			continue
		}
		valid = append(valid, domain.Address{Name: strings.TrimSpace(a.Name), Email: email})
	}
	return valid
}

func emails(lists ...[]domain.Address) []string {
	result := []string{}
	for _, list := range lists {
		for _, a := range list {
			result = append(result, a.Email)
		}
	}
	return result
}

// Send submits msg as the credential owner. It never retries and reports
// every problem through the result.
func (s *SmtpSender) Send(creds *domain.Credentials, msg *domain.OutgoingMessage) *domain.SendResult {
	if creds == nil || len(creds.Email) == 0 {
		return failure("Credenciais não encontradas na sessão.")
	}

	baseLogger := s.l.WithFields(logrus.Fields{"server": s.settings.address(), "user": creds.Email})

	cleaned := *msg
	cleaned.To = ValidRecipients(msg.To)
	cleaned.Cc = ValidRecipients(msg.Cc)
	cleaned.Bcc = ValidRecipients(msg.Bcc)
	recipients := emails(cleaned.To, cleaned.Cc, cleaned.Bcc)
	if len(recipients) == 0 {
		return failure("Nenhum destinatário válido.")
	}

	limitKey := rateLimitPrefix + creds.Email
	allowed, retryAfter := s.limiter.Check(limitKey, s.settings.SendLimit, s.settings.SendWindow)
	if !allowed {
		baseLogger.WithFields(logrus.Fields{"retryAfter": retryAfter}).Info("Send limit reached")
		result := failure("Limite de envio atingido. Tente novamente em %d segundos.", int(retryAfter.Seconds()))
		result.RetryAfter = retryAfter
		return result
	}

	from := domain.Address{Email: creds.Email}
	if s.names != nil {
		from.Name = s.names.DisplayName(creds.Email)
	}

	raw, err := Build(&Composition{
		From:    from,
		Message: &cleaned,
		Date:    s.now(),
	})
	if err != nil {
		baseLogger.WithError(err).Error("Could not build message")
		return failure("Falha ao enviar e-mail: %s", err)
	}

	password, err := s.opener.OpenPassword(creds.SealedPassword)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not open sealed password")
		return failure("Credenciais não encontradas na sessão.")
	}

	err = s.submit(creds.Email, password, recipients, raw)
	if err != nil {
		baseLogger.WithError(err).Error("SMTP send error")
		return failure("Falha ao enviar e-mail: %s", err)
	}
	s.limiter.Hit(limitKey, s.settings.SendWindow)

	baseLogger.WithFields(logrus.Fields{"recipients": len(recipients), "bytes": len(raw)}).Info("Message sent")
	return &domain.SendResult{Success: true, RawMessage: raw}
}

func (s *SmtpSender) tlsConfig() *tls.Config {
	if s.settings.VerifyPeerName {
		return &tls.Config{ServerName: s.settings.Host}
	}

	return &tls.Config{
		ServerName:         s.settings.Host,
		InsecureSkipVerify: true,
		VerifyConnection:   verifyChainOnly,
	}
}

// verifyChainOnly does the certificate verification crypto/tls skips with
// InsecureSkipVerify, minus the host name check.
func verifyChainOnly(cs tls.ConnectionState) error {
	if len(cs.PeerCertificates) == 0 {
		return errors.New("server presented no certificate")
	}

	opts := x509.VerifyOptions{
		Intermediates: x509.NewCertPool(),
	}
	for _, cert := range cs.PeerCertificates[1:] {
		opts.Intermediates.AddCert(cert)
	}

	_, err := cs.PeerCertificates[0].Verify(opts)
	if err != nil {
		return fmt.Errorf("could not verify certificate chain: %w", err)
	}
	return nil
}

func (s *SmtpSender) submit(user, password string, recipients []string, raw []byte) error {
	tlsConfig := s.tlsConfig()

	c, err := s.dial(s.settings, tlsConfig)
	if err != nil {
		return fmt.Errorf("could not dial to smtp: %w", err)
	}
	defer c.Close()

	err = c.Auth(sasl.NewPlainClient("", user, password))
	if err != nil {
		return fmt.Errorf("could not authenticate: %w", err)
	}

	err = c.SendMail(user, recipients, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}

	err = c.Quit()
	if err != nil {
		return fmt.Errorf("could not quit: %w", err)
	}

	return nil
}

func dialServer(settings Settings, tlsConfig *tls.Config) (smtpClient, error) {
	dialer := &net.Dialer{Timeout: settings.DialTimeout}

	if settings.Security == SecurityTLS {
		conn, err := tls.DialWithDialer(dialer, "tcp", settings.address(), tlsConfig)
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn), nil
	}

	conn, err := dialer.Dial("tcp", settings.address())
	if err != nil {
		return nil, err
	}
	if settings.Security == SecurityStartTLS {
		c, err := smtp.NewClientStartTLS(conn, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("could not start tls: %w", err)
		}
		return c, nil
	}

	return smtp.NewClient(conn), nil
}
