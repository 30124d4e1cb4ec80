// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"bytes"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"

	"github.com/emersion/go-imap"
	"github.com/golang/mock/gomock"
)

func u32(val int) uint32 {
	return uint32(val)
}

func u32a(val ...int) []uint32 {
	a := []uint32{}
	for _, v := range val {
		a = append(a, u32(v))
	}

	return a
}

func seqsetOf(uids ...int) *imap.SeqSet {
	seqset := &imap.SeqSet{}
	seqset.AddNum(u32a(uids...)...)
	return seqset
}

var testNow = time.Date(2024, 3, 15, 14, 32, 0, 0, time.UTC)

type testConn struct {
	*ImapConnection
	client *MockimapClient
	mover  *Mockmover
}

func newTestConnection(ctrl *gomock.Controller) *testConn {
	client := NewMockimapClient(ctrl)
	mover := NewMockmover(ctrl)

	return &testConn{
		ImapConnection: &ImapConnection{
			creds:    &domain.Credentials{Email: "me@example.com", SealedPassword: []byte("sealed")},
			observer: noopObserver{},
			now:      func() time.Time { return testNow },
			connection: &link{
				client: client,
				mover:  mover,
			},
			l: log.NullLogger(),
		},
		client: client,
		mover:  mover,
	}
}

func listing(names ...string) func(string, string, chan *imap.MailboxInfo) error {
	return func(ref, name string, ch chan *imap.MailboxInfo) error {
		for _, n := range names {
			ch <- &imap.MailboxInfo{Name: n, Delimiter: "."}
		}
		close(ch)
		return nil
	}
}

func listingFails(err error) func(string, string, chan *imap.MailboxInfo) error {
	return func(ref, name string, ch chan *imap.MailboxInfo) error {
		close(ch)
		return err
	}
}

func fetching(messages ...*imap.Message) func(*imap.SeqSet, []imap.FetchItem, chan *imap.Message) error {
	return func(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
		for _, msg := range messages {
			ch <- msg
		}
		close(ch)
		return nil
	}
}

func fetchingFails(err error) func(*imap.SeqSet, []imap.FetchItem, chan *imap.Message) error {
	return func(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
		close(ch)
		return err
	}
}

func uidOnly(uid int) *imap.Message {
	return &imap.Message{Uid: u32(uid)}
}

func fullMessage(uid int, date string, subject string, flags ...string) *imap.Message {
	raw := strings.Join([]string{
		"From: Sender <sender@example.com>",
		"To: me@example.com",
		"Subject: " + subject,
		"Date: " + date,
		"Content-Type: text/plain; charset=utf-8",
		"",
		"body of " + subject,
	}, "\r\n")

	return &imap.Message{
		Uid:   u32(uid),
		Flags: flags,
		Body: map[*imap.BodySectionName]imap.Literal{
			&imap.BodySectionName{}: bytes.NewBufferString(raw),
		},
	}
}
