// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"strings"
	"unicode/utf8"

	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/mail"
	"github.com/CrawX/go-imap-webmail/session"

	"github.com/sirupsen/logrus"
)

const maxFolderNameLength = 100

// BatchRequest selects messages of one folder. Target is only read by moves.
type BatchRequest struct {
	Folder string   `json:"folder"`
	Uids   []uint32 `json:"uids"`
	Target string   `json:"target"`
}

func folderOrInbox(folder string) string {
	if len(strings.TrimSpace(folder)) == 0 {
		return catalog.Inbox
	}
	return folder
}

func (r *BatchRequest) validate(needsTarget bool) error {
	if len(strings.TrimSpace(r.Folder)) == 0 {
		return fail(ErrInvalidInput, "A pasta é obrigatória.")
	}
	if len(r.Uids) == 0 {
		return fail(ErrInvalidInput, "Nenhuma mensagem selecionada.")
	}
	if needsTarget && len(strings.TrimSpace(r.Target)) == 0 {
		return fail(ErrInvalidInput, "A pasta de destino é obrigatória.")
	}
	return nil
}

func validFolderName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) == 0 || utf8.RuneCountInString(name) > maxFolderNameLength {
		return false
	}
	return !strings.ContainsAny(name, "*%\"\\")
}

func (w *Webmail) Folders(s *session.Session) ([]*domain.Folder, error) {
	var folders []*domain.Folder
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		folders = mb.ListFolders()
		return nil
	})
	return folders, err
}

func (w *Webmail) Messages(s *session.Session, folder string, page, pageSize int) (*domain.MessagePage, error) {
	var result *domain.MessagePage
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		result = mb.ListMessages(folderOrInbox(folder), page, pageSize)
		return nil
	})
	return result, err
}

// Search answers an empty query with an empty page, like the mailbox does.
func (w *Webmail) Search(s *session.Session, folder, query string, page, pageSize int) (*domain.MessagePage, error) {
	var result *domain.MessagePage
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		result = mb.SearchMessages(folderOrInbox(folder), query, page, pageSize)
		return nil
	})
	return result, err
}

// Message returns the full message with its HTML body made safe to render.
func (w *Webmail) Message(s *session.Session, folder string, uid uint32) (*domain.MessageDetail, error) {
	var detail *domain.MessageDetail
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		detail = mb.GetMessage(folderOrInbox(folder), uid)
		if detail == nil {
			return fail(ErrNotFound, "Mensagem não encontrada")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail.BodyHtml = mail.SanitizeMessageHtml(detail.BodyHtml)
	return detail, nil
}

func (w *Webmail) Attachment(s *session.Session, folder string, uid uint32, index int) (*domain.AttachmentContent, error) {
	var content *domain.AttachmentContent
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		content = mb.GetAttachment(folderOrInbox(folder), uid, index)
		if content == nil {
			return fail(ErrNotFound, "Anexo não encontrado")
		}
		return nil
	})
	return content, err
}

func (w *Webmail) ToggleSeen(s *session.Session, folder string, uid uint32, seen bool) error {
	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if !mb.ToggleSeen(folderOrInbox(folder), uid, seen) {
			return fail(ErrFailed, "Falha ao atualizar a mensagem.")
		}
		return nil
	})
}

func (w *Webmail) Move(s *session.Session, folder string, uid uint32, target string) error {
	if len(strings.TrimSpace(target)) == 0 {
		return fail(ErrInvalidInput, "A pasta de destino é obrigatória.")
	}

	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if !mb.Move(folderOrInbox(folder), uid, target) {
			return fail(ErrFailed, "Falha ao mover a mensagem.")
		}
		return nil
	})
}

func (w *Webmail) Delete(s *session.Session, folder string, uid uint32) error {
	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if !mb.Delete(folderOrInbox(folder), uid) {
			return fail(ErrFailed, "Falha ao excluir a mensagem.")
		}
		return nil
	})
}

func (w *Webmail) batch(s *session.Session, op string, r *BatchRequest, needsTarget bool, run func(mb domain.Mailbox) domain.BatchResult) (domain.BatchResult, error) {
	if err := r.validate(needsTarget); err != nil {
		return domain.BatchResult{}, err
	}

	var result domain.BatchResult
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		result = run(mb)
		return nil
	})
	if err == nil {
		w.logger(s).WithFields(logrus.Fields{"op": op, "folder": r.Folder, "succeeded": result.Succeeded, "total": result.Total}).Debug("Batch done")
	}
	return result, err
}

func (w *Webmail) BatchToggleSeen(s *session.Session, r *BatchRequest, seen bool) (domain.BatchResult, error) {
	return w.batch(s, "seen", r, false, func(mb domain.Mailbox) domain.BatchResult {
		return mb.BatchToggleSeen(r.Folder, r.Uids, seen)
	})
}

func (w *Webmail) BatchDelete(s *session.Session, r *BatchRequest) (domain.BatchResult, error) {
	return w.batch(s, "delete", r, false, func(mb domain.Mailbox) domain.BatchResult {
		return mb.BatchDelete(r.Folder, r.Uids)
	})
}

func (w *Webmail) BatchMove(s *session.Session, r *BatchRequest) (domain.BatchResult, error) {
	return w.batch(s, "move", r, true, func(mb domain.Mailbox) domain.BatchResult {
		return mb.BatchMove(r.Folder, r.Uids, r.Target)
	})
}

func (w *Webmail) CreateFolder(s *session.Session, name string) error {
	if !validFolderName(name) {
		return fail(ErrInvalidInput, "Nome de pasta inválido.")
	}

	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if !mb.CreateFolder(strings.TrimSpace(name)) {
			return fail(ErrFailed, "Falha ao criar a pasta.")
		}
		return nil
	})
}

func (w *Webmail) RenameFolder(s *session.Session, name, newName string) error {
	if !validFolderName(newName) {
		return fail(ErrInvalidInput, "Nome de pasta inválido.")
	}

	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if mb.IsSystemFolder(name) {
			return fail(ErrForbidden, "Pastas do sistema não podem ser alteradas.")
		}
		if !mb.RenameFolder(name, strings.TrimSpace(newName)) {
			return fail(ErrFailed, "Falha ao renomear a pasta.")
		}
		return nil
	})
}

func (w *Webmail) DeleteFolder(s *session.Session, name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return fail(ErrInvalidInput, "Nome de pasta inválido.")
	}

	return w.withMailbox(s, func(mb domain.Mailbox) error {
		if mb.IsSystemFolder(name) {
			return fail(ErrForbidden, "Pastas do sistema não podem ser excluídas.")
		}
		if !mb.DeleteFolder(name) {
			return fail(ErrFailed, "Falha ao excluir a pasta.")
		}
		return nil
	})
}

// Contacts collects recipient suggestions from the user's sent mail.
func (w *Webmail) Contacts(s *session.Session) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		contacts = mb.HarvestContacts(w.configuration.ContactLimit)
		return nil
	})
	return contacts, err
}
