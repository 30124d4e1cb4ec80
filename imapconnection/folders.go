// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

func (ic *ImapConnection) listMailboxes() ([]*imap.MailboxInfo, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.client.List("", "*", mailboxes)
	}()

	results := []*imap.MailboxInfo{}
	for m := range mailboxes {
		results = append(results, m)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	return results, nil
}

func (ic *ImapConnection) existingFolders() (map[string]bool, error) {
	mailboxes, err := ic.listMailboxes()
	if err != nil {
		return nil, err
	}

	existing := map[string]bool{}
	for _, m := range mailboxes {
		existing[m.Name] = true
	}
	return existing, nil
}

func firstExisting(existing map[string]bool, candidates []string) string {
	for _, candidate := range candidates {
		if existing[candidate] {
			return candidate
		}
	}
	return ""
}

func allExisting(existing map[string]bool, candidates []string) []string {
	found := []string{}
	for _, candidate := range candidates {
		if existing[candidate] {
			found = append(found, candidate)
		}
	}
	return found
}

// ResolveFolder returns the first candidate the server knows, or "" if none
// exists or the folders cannot be listed.
func (ic *ImapConnection) ResolveFolder(candidates []string) string {
	if !ic.connected() {
		return ""
	}

	existing, err := ic.existingFolders()
	if err != nil {
		ic.l.WithError(err).Warn("Could not resolve folder")
		return ""
	}

	return firstExisting(existing, candidates)
}

func displayName(m *imap.MailboxInfo) string {
	if len(m.Delimiter) == 0 {
		return m.Name
	}

	segments := strings.Split(m.Name, m.Delimiter)
	return segments[len(segments)-1]
}

func selectable(m *imap.MailboxInfo) bool {
	for _, attr := range m.Attributes {
		if strings.EqualFold(attr, imap.NoSelectAttr) {
			return false
		}
	}
	return true
}

func (ic *ImapConnection) ListFolders() []*domain.Folder {
	folders := []*domain.Folder{}
	if !ic.connected() {
		return folders
	}

	mailboxes, err := ic.listMailboxes()
	if err != nil {
		ic.l.WithError(err).Warn("Could not list folders")
		return folders
	}

	for _, m := range mailboxes {
		if !selectable(m) {
			continue
		}

		name := displayName(m)
		folder := &domain.Folder{
			Name:      name,
			FullName:  m.Name,
			Path:      m.Name,
			Delimiter: m.Delimiter,
			Icon:      catalog.Icon(name),
		}

		status, err := ic.connection.client.Status(m.Name, []imap.StatusItem{imap.StatusMessages, imap.StatusUnseen})
		if err != nil {
			ic.l.WithFields(logrus.Fields{"folder": m.Name}).WithError(err).Debug("Could not get folder status")
		} else {
			folder.Total = status.Messages
			folder.Unseen = status.Unseen
		}

		folders = append(folders, folder)
	}

	catalog.Sort(folders)
	return folders
}

// MutationResult reconciles a folder change with what the server reports
// afterwards. Some servers fail the command (or the follow-up subscribe)
// although the change went through, so the read-back decides.
type MutationResult struct {
	AttemptErr    error
	VerifiedState bool
	VerifyErr     error
}

func (m MutationResult) Succeeded() bool {
	if m.VerifyErr != nil {
		return m.AttemptErr == nil
	}
	return m.VerifiedState
}

func (ic *ImapConnection) mutate(op string, attempt func() error, verify func(existing map[string]bool) bool) MutationResult {
	result := MutationResult{
		AttemptErr: attempt(),
	}

	existing, err := ic.existingFolders()
	if err != nil {
		result.VerifyErr = err
	} else {
		result.VerifiedState = verify(existing)
	}

	logger := ic.l.WithFields(logrus.Fields{"op": op})
	if result.AttemptErr != nil {
		logger = logger.WithFields(logrus.Fields{"attemptErr": result.AttemptErr})
	}
	if result.VerifyErr != nil {
		logger = logger.WithFields(logrus.Fields{"verifyErr": result.VerifyErr})
	}
	if result.Succeeded() {
		logger.Debug("Folder mutation succeeded")
	} else {
		logger.Warn("Folder mutation failed")
	}

	return result
}

func (ic *ImapConnection) CreateFolder(name string) bool {
	if !ic.connected() || len(strings.TrimSpace(name)) == 0 {
		return false
	}

	return ic.mutate(
		"create",
		func() error {
			err := ic.connection.client.Create(name)
			if err != nil {
				return fmt.Errorf("could not create folder: %w", err)
			}
			err = ic.connection.client.Subscribe(name)
			if err != nil {
				return fmt.Errorf("could not subscribe folder: %w", err)
			}
			return nil
		},
		func(existing map[string]bool) bool {
			return existing[name]
		},
	).Succeeded()
}

func (ic *ImapConnection) RenameFolder(name, newName string) bool {
	if !ic.connected() || len(strings.TrimSpace(newName)) == 0 {
		return false
	}

	return ic.mutate(
		"rename",
		func() error {
			err := ic.connection.client.Rename(name, newName)
			if err != nil {
				return fmt.Errorf("could not rename folder: %w", err)
			}
			return nil
		},
		func(existing map[string]bool) bool {
			return existing[newName] && !existing[name]
		},
	).Succeeded()
}

func (ic *ImapConnection) DeleteFolder(name string) bool {
	if !ic.connected() {
		return false
	}

	return ic.mutate(
		"delete",
		func() error {
			err := ic.connection.client.Delete(name)
			if err != nil {
				return fmt.Errorf("could not delete folder: %w", err)
			}
			return nil
		},
		func(existing map[string]bool) bool {
			return !existing[name]
		},
	).Succeeded()
}
