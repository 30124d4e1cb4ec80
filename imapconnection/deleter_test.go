// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"testing"

	"github.com/emersion/go-imap"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func deletedCriteria() *imap.SearchCriteria {
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}
	return criteria
}

func TestUidPlusExpunger_Expunge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMockuidExpungeClient(ctrl)
	expunger := uidPlusExpunger{conn}

	conn.EXPECT().
		UidExpunge(gomock.Eq(seqsetOf(1, 2, 3)), gomock.Any()).
		DoAndReturn(func(seqSet *imap.SeqSet, ch chan uint32) error {
			ch <- u32(1)
			ch <- u32(2)
			ch <- u32(3)
			close(ch)
			return nil
		})

	err := expunger.expunge(u32a(1, 2, 3))
	assert.NoError(t, err)
}

func TestUidPlusExpunger_UnexpectedCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMockuidExpungeClient(ctrl)
	expunger := uidPlusExpunger{conn}

	conn.EXPECT().
		UidExpunge(gomock.Eq(seqsetOf(1, 2)), gomock.Any()).
		DoAndReturn(func(seqSet *imap.SeqSet, ch chan uint32) error {
			ch <- u32(1)
			close(ch)
			return nil
		})

	err := expunger.expunge(u32a(1, 2))
	assert.EqualError(t, err, "unexpected number of expunges, expected 2 got 1")
}

func TestCompatibilityExpunger_ExpungeReadyOk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMocksearchAndExpungeClient(ctrl)
	expunger := compatibilityExpunger{conn}

	conn.EXPECT().
		UidSearch(gomock.Eq(deletedCriteria())).
		Return(u32a(2, 3), nil)

	notExpungeReadyReason, err := expunger.expungeReady(u32a(1, 2, 3))
	assert.NoError(t, notExpungeReadyReason)
	assert.NoError(t, err)
}

func TestCompatibilityExpunger_ExpungeReadyNotReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMocksearchAndExpungeClient(ctrl)
	expunger := compatibilityExpunger{conn}

	conn.EXPECT().
		UidSearch(gomock.Eq(deletedCriteria())).
		Return(u32a(1, 9), nil)

	notExpungeReadyReason, err := expunger.expungeReady(u32a(1))
	assert.EqualError(t, notExpungeReadyReason, "folder has previous items with delete flag set")
	assert.NoError(t, err)
}

func TestCompatibilityExpunger_Expunge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMocksearchAndExpungeClient(ctrl)
	expunger := compatibilityExpunger{conn}

	conn.EXPECT().
		UidSearch(gomock.Eq(deletedCriteria())).
		Return(u32a(1, 2), nil)

	conn.EXPECT().
		Expunge(gomock.Any()).
		DoAndReturn(func(ch chan uint32) error {
			ch <- u32(1)
			ch <- u32(1)
			close(ch)
			return nil
		})

	err := expunger.expunge(u32a(1, 2))
	assert.NoError(t, err)
}

func TestCompatibilityExpunger_KeepsForeignTombstones(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMocksearchAndExpungeClient(ctrl)
	expunger := compatibilityExpunger{conn}

	conn.EXPECT().
		UidSearch(gomock.Eq(deletedCriteria())).
		Return(u32a(1, 7), nil)

	err := expunger.expunge(u32a(1))
	assert.NoError(t, err)
}
