// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"time"

	"github.com/emersion/go-imap"
)

//go:generate mockgen -destination=delete_move_mocks_test.go -package=imapconnection -source delete_move.go

// Consolidated file for the client, mover and expunger interfaces used by imapconnection so gomock can generate
// mocks properly. Unexported interfaces do not allow for reflection mode but source-mode fails if there are embedded
// interfaces spread over multiple source files.

// imapClient is the subset of *client.Client the connection talks to.
type imapClient interface {
	Logout() error
	List(ref, name string, ch chan *imap.MailboxInfo) error
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Status(name string, items []imap.StatusItem) (*imap.MailboxStatus, error)
	Create(name string) error
	Delete(name string) error
	Rename(existingName, newName string) error
	Subscribe(name string) error
	Append(mbox string, flags []string, date time.Time, msg imap.Literal) error
	Expunge(ch chan uint32) error
	Fetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
	UidCopy(seqset *imap.SeqSet, dest string) error
}

type mover interface {
	move(uids []uint32, folder string) error
}

// expunger permanently removes messages that already carry the \Deleted flag.
type expunger interface {
	expunge(uids []uint32) error
}

type moveClient interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

type uidExpungeClient interface {
	UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error
}

type copyAndFlagClient interface {
	UidCopy(seqset *imap.SeqSet, dest string) error
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
}

type searchAndExpungeClient interface {
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	Expunge(ch chan uint32) error
}
