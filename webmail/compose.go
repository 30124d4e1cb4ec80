// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/CrawX/go-imap-webmail/attachments"
	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/metrics"
	"github.com/CrawX/go-imap-webmail/session"
	"github.com/CrawX/go-imap-webmail/smtpsender"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

const (
	maxRecipients    = 50
	maxSubjectLength = 998
)

// Compose is a message as written in the editor. DraftUid names the draft it
// was opened from, if any.
type Compose struct {
	To          []domain.Address  `json:"to"`
	Cc          []domain.Address  `json:"cc"`
	Bcc         []domain.Address  `json:"bcc"`
	Subject     string            `json:"subject"`
	HtmlBody    string            `json:"body_html"`
	TextBody    string            `json:"body_text"`
	Attachments []attachments.Ref `json:"attachments"`
	InReplyTo   string            `json:"in_reply_to"`
	References  string            `json:"references"`
	DraftUid    uint32            `json:"draft_uid"`
	DraftFolder string            `json:"draft_folder"`
}

func validateAddresses(field string, addresses []domain.Address) error {
	if len(addresses) > maxRecipients {
		return fail(ErrInvalidInput, fmt.Sprintf("O campo %s aceita no máximo %d destinatários.", field, maxRecipients))
	}
	for _, a := range addresses {
		if len(smtpsender.ValidRecipients([]domain.Address{a})) != 1 {
			return fail(ErrInvalidInput, fmt.Sprintf("Endereço de e-mail inválido: %s", a.Email))
		}
	}
	return nil
}

// validate checks the composition. Drafts may be saved without recipients.
func (c *Compose) validate(draft bool) error {
	if !draft && len(c.To) == 0 {
		return fail(ErrInvalidInput, "Informe ao menos um destinatário.")
	}
	for _, list := range []struct {
		field     string
		addresses []domain.Address
	}{
		{"para", c.To},
		{"cc", c.Cc},
		{"cco", c.Bcc},
	} {
		if err := validateAddresses(list.field, list.addresses); err != nil {
			return err
		}
	}
	if utf8.RuneCountInString(c.Subject) > maxSubjectLength {
		return fail(ErrInvalidInput, fmt.Sprintf("O assunto não pode exceder %d caracteres.", maxSubjectLength))
	}
	return nil
}

func (c *Compose) draftFolder() string {
	if len(strings.TrimSpace(c.DraftFolder)) == 0 {
		return catalog.Draft
	}
	return c.DraftFolder
}

func (c *Compose) outgoing(resolved []domain.OutgoingAttachment) *domain.OutgoingMessage {
	return &domain.OutgoingMessage{
		To:          c.To,
		Cc:          c.Cc,
		Bcc:         c.Bcc,
		Subject:     c.Subject,
		HtmlBody:    c.HtmlBody,
		TextBody:    c.TextBody,
		Attachments: resolved,
		InReplyTo:   c.InReplyTo,
		References:  c.References,
	}
}

// Send submits the message, keeps a copy in Sent, removes the draft it came
// from and drops the session's uploads. Only the submission decides the
// outcome, archiving is best effort.
func (w *Webmail) Send(s *session.Session, c *Compose) error {
	if err := c.validate(false); err != nil {
		return err
	}

	baseLogger := w.logger(s)
	result := w.sender.Send(s.Credentials(), c.outgoing(w.uploads.Resolve(s.Id, c.Attachments)))
	if !result.Success {
		if result.RetryAfter > 0 {
			w.counters.MailSent(metrics.ResultRateLimited)
			return &Failure{Kind: ErrRateLimited, Message: result.Error, RetryAfter: result.RetryAfter}
		}
		w.counters.MailSent(metrics.ResultFailed)
		return fail(ErrFailed, result.Error)
	}
	w.counters.MailSent(metrics.ResultSuccess)

	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		if !mb.AppendToFolder(catalog.Sent, result.RawMessage, []string{imap.SeenFlag}) {
			baseLogger.Warn("Could not archive sent message")
		}
		if c.DraftUid > 0 && !mb.Delete(c.draftFolder(), c.DraftUid) {
			baseLogger.WithFields(logrus.Fields{"uid": c.DraftUid}).Warn("Could not remove sent draft")
		}
		return nil
	})
	if err != nil {
		baseLogger.Warn("Sent message was not archived, mailbox unavailable")
	}

	err = w.uploads.Cleanup(s.Id)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not clean up uploads")
	}

	return nil
}

// SaveDraft stores the composition in Drafts with the \Draft flag. The draft
// it replaces is removed once the new one is stored.
func (w *Webmail) SaveDraft(s *session.Session, c *Compose) error {
	if err := c.validate(true); err != nil {
		return err
	}

	raw, err := smtpsender.Build(&smtpsender.Composition{
		From:       domain.Address{Name: w.persistence.DisplayName(s.Email), Email: s.Email},
		Message:    c.outgoing(w.uploads.Resolve(s.Id, c.Attachments)),
		Date:       w.now(),
		IncludeBcc: true,
	})
	if err != nil {
		w.logger(s).WithError(err).Error("Could not build draft")
		return fail(ErrFailed, "Falha ao salvar rascunho.")
	}

	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if !mb.AppendToFolder(catalog.Draft, raw, []string{imap.DraftFlag}) {
			return fail(ErrFailed, "Falha ao salvar rascunho.")
		}
		if c.DraftUid > 0 && !mb.Delete(c.draftFolder(), c.DraftUid) {
			w.logger(s).WithFields(logrus.Fields{"uid": c.DraftUid}).Warn("Could not remove previous draft")
		}
		return nil
	})
}

func (w *Webmail) Upload(s *session.Session, name string, r io.Reader) (*attachments.Upload, error) {
	upload, err := w.uploads.Save(s.Id, name, r)
	switch {
	case err == nil:
		return upload, nil
	case errors.Is(err, attachments.ErrTooLarge):
		return nil, fail(ErrInvalidInput, "O arquivo não pode exceder 10 MB.")
	case errors.Is(err, attachments.ErrForbiddenType):
		return nil, fail(ErrInvalidInput, "Tipo de arquivo não permitido.")
	}

	w.logger(s).WithError(err).Error("Could not store upload")
	return nil, fail(ErrInternal, "Falha ao enviar o arquivo.")
}

func (w *Webmail) RemoveAttachment(s *session.Session, id string) error {
	err := w.uploads.Remove(s.Id, id)
	if errors.Is(err, attachments.ErrInvalidId) {
		return fail(ErrInvalidInput, "Anexo inválido.")
	}
	if err != nil {
		w.logger(s).WithError(err).Error("Could not remove upload")
		return fail(ErrInternal, "Falha ao remover o anexo.")
	}
	return nil
}
