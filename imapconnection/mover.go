// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"

	"github.com/emersion/go-imap"
)

type moveMover struct {
	moveClient moveClient
}

func (m *moveMover) move(uids []uint32, folder string) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	return m.moveClient.UidMove(seqset, folder)
}

// compatibilityMover emulates MOVE with COPY, \Deleted and an expunge of the
// originals.
type compatibilityMover struct {
	imapConn copyAndFlagClient
	expunger expunger
}

func (c *compatibilityMover) move(uids []uint32, folder string) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := c.imapConn.UidCopy(seqset, folder)
	if err != nil {
		return fmt.Errorf("could not copy mails: %w", err)
	}

	err = flagDeleted(c.imapConn, uids)
	if err != nil {
		return fmt.Errorf("could not flag copied mails: %w", err)
	}

	err = c.expunger.expunge(uids)
	if err != nil {
		return fmt.Errorf("could not expunge copied mails: %w", err)
	}

	return nil
}

type flagStorer interface {
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
}

// flagDeleted tombstones uids. Nothing is expunged.
func flagDeleted(c flagStorer, uids []uint32) error {
	return storeFlag(c, uids, imap.DeletedFlag, true)
}

func storeFlag(c flagStorer, uids []uint32, flag string, add bool) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	op := imap.FlagsOp(imap.RemoveFlags)
	if add {
		op = imap.FlagsOp(imap.AddFlags)
	}

	err := c.UidStore(seqset, imap.FormatFlagsOp(op, true), []interface{}{flag}, nil)
	if err != nil {
		return fmt.Errorf("could not store %s flag: %w", flag, err)
	}

	return nil
}
