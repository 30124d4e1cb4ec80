// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"

	"github.com/emersion/go-imap"
)

type uidPlusExpunger struct {
	imapConn uidExpungeClient
}

func (u *uidPlusExpunger) expunge(uids []uint32) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- u.imapConn.UidExpunge(seqset, out)
	}()

	expunged := []uint32{}
	for uid := range out {
		expunged = append(expunged, uid)
	}

	err := <-done
	if err != nil {
		return fmt.Errorf("could not expunge mails: %w", err)
	}

	if len(expunged) != len(uids) {
		return fmt.Errorf("unexpected number of expunges, expected %d got %d", len(uids), len(expunged))
	}

	return nil
}

// compatibilityExpunger only issues a plain EXPUNGE when it would not take any
// foreign tombstones with it. Otherwise the uids stay flagged \Deleted.
type compatibilityExpunger struct {
	imapConn searchAndExpungeClient
}

var ItemsWithDeletedFlagPresent = fmt.Errorf("folder has previous items with delete flag set")

func (c *compatibilityExpunger) expunge(uids []uint32) error {
	notExpungeReadyReason, err := c.expungeReady(uids)
	if err != nil {
		return fmt.Errorf("could not check for expunge readiness: %w", err)
	}

	if notExpungeReadyReason != nil {
		return nil
	}

	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- c.imapConn.Expunge(out)
	}()

	for range out {
	}

	err = <-done
	if err != nil {
		return fmt.Errorf("could not expunge mails: %w", err)
	}

	return nil
}

func (c *compatibilityExpunger) expungeReady(uids []uint32) (error, error) {
	// EXPUNGE deletes everything that has the flag set, so only the uids we
	// just flagged may carry it.
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}
	ids, err := c.imapConn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could search for deleted in folder: %w", err)
	}

	own := map[uint32]bool{}
	for _, uid := range uids {
		own[uid] = true
	}

	for _, id := range ids {
		if !own[id] {
			return ItemsWithDeletedFlagPresent, nil
		}
	}

	return nil, nil
}
