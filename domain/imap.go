// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/imap.go -package=mocks . Mailbox,BatchObserver,PasswordOpener,Authenticator
import (
	"errors"
	"time"
)

// ErrAuthFailed is returned when the server rejected the credentials, as
// opposed to being unreachable.
var ErrAuthFailed = errors.New("authentication failed")

// Credentials is the capability handed from the session to every transport
// connect. The password stays sealed until the connection is opened.
type Credentials struct {
	Email          string
	SealedPassword []byte
}

type PasswordOpener interface {
	OpenPassword(sealed []byte) (string, error)
}

// Authenticator checks a plain login against the mail server once, before any
// session exists.
type Authenticator interface {
	Authenticate(email, password string) error
}

type Address struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Folder struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Path      string `json:"path"`
	Delimiter string `json:"delimiter"`
	Icon      string `json:"icon"`
	Total     uint32 `json:"total"`
	Unseen    uint32 `json:"unseen"`
}

type MessagePreview struct {
	Uid            uint32    `json:"uid"`
	MessageId      string    `json:"message_id"`
	Subject        string    `json:"subject"`
	From           Address   `json:"from"`
	Date           string    `json:"date"`
	DateHuman      string    `json:"date_human"`
	Seen           bool      `json:"seen"`
	Flagged        bool      `json:"flagged"`
	HasAttachments bool      `json:"has_attachments"`
	Preview        string    `json:"preview"`
	Time           time.Time `json:"-"`
}

type MessageDetail struct {
	Uid            uint32            `json:"uid"`
	MessageId      string            `json:"message_id"`
	Subject        string            `json:"subject"`
	From           []Address         `json:"from"`
	To             []Address         `json:"to"`
	Cc             []Address         `json:"cc"`
	ReplyTo        []Address         `json:"reply_to"`
	Date           string            `json:"date"`
	DateFormatted  string            `json:"date_formatted"`
	Seen           bool              `json:"seen"`
	Flagged        bool              `json:"flagged"`
	HasAttachments bool              `json:"has_attachments"`
	BodyHtml       string            `json:"body_html"`
	BodyText       string            `json:"body_text"`
	Attachments    []*AttachmentInfo `json:"attachments"`
	Time           time.Time         `json:"-"`
}

// AttachmentInfo describes one downloadable part. Index addresses the part
// within a single fetch of the message only.
type AttachmentInfo struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Mime      string `json:"mime"`
	Size      int    `json:"size"`
	SizeHuman string `json:"size_human"`
}

type AttachmentContent struct {
	Name string
	Mime string
	Data []byte
	Size int
}

type MessagePage struct {
	Messages   []*MessagePreview `json:"messages"`
	Total      uint32            `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// BatchResult only ever reports aggregates, never which uids failed.
type BatchResult struct {
	Succeeded int `json:"succeeded"`
	Total     int `json:"total"`
}

type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Mailbox is one request-scoped connection to the user's IMAP account. All
// operations assume Connect returned true and report failures as neutral values.
type Mailbox interface {
	Connect() bool
	Disconnect()

	ListFolders() []*Folder
	ListMessages(folder string, page, pageSize int) *MessagePage
	GetMessage(folder string, uid uint32) *MessageDetail
	GetAttachment(folder string, uid uint32, index int) *AttachmentContent
	SearchMessages(folder, query string, page, pageSize int) *MessagePage

	ToggleSeen(folder string, uid uint32, seen bool) bool
	Move(folder string, uid uint32, target string) bool
	Delete(folder string, uid uint32) bool

	BatchToggleSeen(folder string, uids []uint32, seen bool) BatchResult
	BatchDelete(folder string, uids []uint32) BatchResult
	BatchMove(folder string, uids []uint32, target string) BatchResult

	CreateFolder(name string) bool
	RenameFolder(name, newName string) bool
	DeleteFolder(name string) bool

	AppendToFolder(target string, raw []byte, flags []string) bool
	HarvestContacts(limit int) []Contact
	FetchRaw(folder string, uids []uint32) [][]byte
	ResolveFolder(candidates []string) string
	IsSystemFolder(name string) bool
}

// BatchObserver receives the per-item outcome of bulk operations.
type BatchObserver interface {
	ItemFailed(op string, uid uint32, err error)
	BatchCompleted(op string, result BatchResult)
}
