// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"bytes"
	"strings"

	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/mail"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

const (
	DefaultContactsPerFolder = 100
	MaxContacts              = 500
)

// AppendToFolder stores raw in target. When target does not exist, the
// localized alternates for the same kind of folder are tried in order.
func (ic *ImapConnection) AppendToFolder(target string, raw []byte, flags []string) bool {
	if !ic.connected() {
		return false
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"target": target})

	candidates := unique(append([]string{target}, catalog.Alternates(target)...))
	existing, err := ic.existingFolders()
	if err != nil {
		baseLogger.WithError(err).Info("Could not list folders, appending to target as is")
		candidates = []string{target}
	} else {
		candidates = allExisting(existing, candidates)
	}

	for _, candidate := range candidates {
		err = ic.connection.client.Append(candidate, flags, ic.now(), bytes.NewReader(raw))
		if err == nil {
			baseLogger.WithFields(logrus.Fields{"folder": candidate}).Debug("Appended message")
			return true
		}
		baseLogger.WithFields(logrus.Fields{"folder": candidate}).WithError(err).Info("Could not append message")
	}

	baseLogger.Warn("No folder accepted the message")
	return false
}

func unique(names []string) []string {
	seen := map[string]bool{}
	result := []string{}
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	return result
}

type contactCollector struct {
	own      string
	seen     map[string]bool
	contacts []domain.Contact
}

func (c *contactCollector) full() bool {
	return len(c.contacts) >= MaxContacts
}

func (c *contactCollector) add(addresses []*imap.Address) {
	for _, a := range addresses {
		if c.full() {
			return
		}

		email := strings.TrimSpace(a.Address())
		key := strings.ToLower(email)
		if len(a.MailboxName) == 0 || len(a.HostName) == 0 || key == c.own || c.seen[key] {
			continue
		}

		c.seen[key] = true
		c.contacts = append(c.contacts, domain.Contact{
			Email: email,
			Name:  mail.DecodeHeader(a.PersonalName),
		})
	}
}

// HarvestContacts collects correspondents from the most recent limit
// envelopes of every Sent-like folder and INBOX.
func (ic *ImapConnection) HarvestContacts(limit int) []domain.Contact {
	if limit < 1 {
		limit = DefaultContactsPerFolder
	}

	collector := &contactCollector{
		seen:     map[string]bool{},
		contacts: []domain.Contact{},
	}
	if !ic.connected() {
		return collector.contacts
	}
	if ic.creds != nil {
		collector.own = strings.ToLower(ic.creds.Email)
	}

	existing, err := ic.existingFolders()
	if err != nil {
		ic.l.WithError(err).Warn("Could not list folders for contacts")
		return collector.contacts
	}

	folders := allExisting(existing, catalog.SentCandidates)
	folders = append(folders, catalog.Inbox)

	for _, folder := range folders {
		if collector.full() {
			break
		}

		baseLogger := ic.l.WithFields(logrus.Fields{"folder": folder})
		status, err := ic.connection.client.Select(folder, true)
		if err != nil {
			baseLogger.WithError(err).Info("Could not select folder for contacts")
			continue
		}

		start, end, ok := pageRange(status.Messages, 1, limit)
		if !ok {
			continue
		}

		seqset := &imap.SeqSet{}
		seqset.AddRange(start, end)
		messages, err := ic.fetch(seqset, []imap.FetchItem{imap.FetchEnvelope}, false)
		if err != nil {
			baseLogger.WithError(err).Info("Could not fetch envelopes for contacts")
			continue
		}

		for _, msg := range messages {
			if msg.Envelope == nil {
				continue
			}
			collector.add(msg.Envelope.From)
			collector.add(msg.Envelope.To)
			collector.add(msg.Envelope.Cc)
		}
	}

	return collector.contacts
}
