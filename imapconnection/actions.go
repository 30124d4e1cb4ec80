// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"errors"
	"fmt"

	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

const (
	OpToggleSeen = "toggle_seen"
	OpMove       = "move"
	OpDelete     = "delete"
)

var ErrMessageNotFound = errors.New("message not found")

// lookup makes sure uid still exists in the selected folder.
func (ic *ImapConnection) lookup(uid uint32) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uid)

	messages, err := ic.fetch(seqset, []imap.FetchItem{imap.FetchUid}, true)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if msg.Uid == uid {
			return nil
		}
	}
	return ErrMessageNotFound
}

func (ic *ImapConnection) toggleSeen(uid uint32, seen bool) error {
	err := ic.lookup(uid)
	if err != nil {
		return err
	}
	return storeFlag(ic.connection.client, []uint32{uid}, imap.SeenFlag, seen)
}

func (ic *ImapConnection) move(uid uint32, target string) error {
	err := ic.lookup(uid)
	if err != nil {
		return err
	}

	err = ic.connection.mover.move([]uint32{uid}, target)
	if err != nil {
		return fmt.Errorf("could not move to %s: %w", target, err)
	}
	return nil
}

// remove moves uid to the first trash that accepts it. Messages already in
// the trash, or that no trash accepts, are only tombstoned.
func (ic *ImapConnection) remove(folder string, uid uint32, trashes []string) error {
	err := ic.lookup(uid)
	if err != nil {
		return err
	}

	if !contains(trashes, folder) {
		for _, trash := range trashes {
			err = ic.connection.mover.move([]uint32{uid}, trash)
			if err == nil {
				return nil
			}
			ic.l.WithFields(logrus.Fields{"uid": uid, "trash": trash}).WithError(err).Info("Could not move to trash, trying next")
		}
	}

	return flagDeleted(ic.connection.client, []uint32{uid})
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func (ic *ImapConnection) existingTrashes() []string {
	existing, err := ic.existingFolders()
	if err != nil {
		ic.l.WithError(err).Info("Could not resolve trash, deleting by flag")
		return []string{}
	}
	return allExisting(existing, catalog.TrashCandidates)
}

func (ic *ImapConnection) single(op, folder string, uid uint32, action func() error) bool {
	if !ic.connected() {
		return false
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"op": op, "folder": folder, "uid": uid})

	_, err := ic.connection.client.Select(folder, false)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder")
		return false
	}

	err = action()
	if err != nil {
		baseLogger.WithError(err).Warn("Operation failed")
		return false
	}
	return true
}

func (ic *ImapConnection) ToggleSeen(folder string, uid uint32, seen bool) bool {
	return ic.single(OpToggleSeen, folder, uid, func() error {
		return ic.toggleSeen(uid, seen)
	})
}

func (ic *ImapConnection) Move(folder string, uid uint32, target string) bool {
	return ic.single(OpMove, folder, uid, func() error {
		return ic.move(uid, target)
	})
}

func (ic *ImapConnection) Delete(folder string, uid uint32) bool {
	return ic.single(OpDelete, folder, uid, func() error {
		return ic.remove(folder, uid, ic.existingTrashes())
	})
}

// batch runs item for every uid. A failing item is reported and skipped, it
// never stops the remaining ones.
func (ic *ImapConnection) batch(op, folder string, uids []uint32, item func(uid uint32) error) domain.BatchResult {
	result := domain.BatchResult{Total: len(uids)}
	if !ic.connected() || len(uids) == 0 {
		ic.observer.BatchCompleted(op, result)
		return result
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"op": op, "folder": folder})

	_, err := ic.connection.client.Select(folder, false)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder for batch")
		ic.observer.BatchCompleted(op, result)
		return result
	}

	for _, uid := range uids {
		err := item(uid)
		if err != nil {
			baseLogger.WithFields(logrus.Fields{"uid": uid}).WithError(err).Warn("Batch item failed")
			ic.observer.ItemFailed(op, uid, err)
			continue
		}
		result.Succeeded++
	}

	baseLogger.WithFields(logrus.Fields{"succeeded": result.Succeeded, "total": result.Total}).Debug("Batch done")
	ic.observer.BatchCompleted(op, result)
	return result
}

func (ic *ImapConnection) BatchToggleSeen(folder string, uids []uint32, seen bool) domain.BatchResult {
	return ic.batch(OpToggleSeen, folder, uids, func(uid uint32) error {
		return ic.toggleSeen(uid, seen)
	})
}

func (ic *ImapConnection) BatchMove(folder string, uids []uint32, target string) domain.BatchResult {
	return ic.batch(OpMove, folder, uids, func(uid uint32) error {
		return ic.move(uid, target)
	})
}

// BatchDelete resolves the trash once for all uids.
func (ic *ImapConnection) BatchDelete(folder string, uids []uint32) domain.BatchResult {
	trashes := []string{}
	if ic.connected() && len(uids) > 0 {
		trash := ic.ResolveFolder(catalog.TrashCandidates)
		if len(trash) > 0 {
			trashes = append(trashes, trash)
		}
	}

	return ic.batch(OpDelete, folder, uids, func(uid uint32) error {
		return ic.remove(folder, uid, trashes)
	})
}
