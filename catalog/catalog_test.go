// SPDX-License-Identifier: GPL-3.0-or-later
package catalog

import (
	"testing"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		rank int
	}{
		{"INBOX", 1},
		{"Inbox", 1},
		{"Sent", 2},
		{"Sent Items", 2},
		{"Drafts", 3},
		{"Trash", 4},
		{"Deleted TRASH", 4},
		{"Lixeira", 4},
		{"lixo eletrônico", 4},
		{"Spam", 5},
		{"Junk E-mail", 5},
		{"Projects", DefaultRank},
		{"Draft", DefaultRank},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.rank, Rank(tc.name))
		})
	}
}

func TestSort(t *testing.T) {
	folders := []*domain.Folder{
		{Name: "zeta"},
		{Name: "Junk"},
		{Name: "Alpha"},
		{Name: "Trash"},
		{Name: "Drafts"},
		{Name: "beta"},
		{Name: "Sent"},
		{Name: "INBOX"},
	}

	Sort(folders)

	names := []string{}
	for _, f := range folders {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"INBOX", "Sent", "Drafts", "Trash", "Junk", "Alpha", "beta", "zeta"}, names)
}

func TestIcon(t *testing.T) {
	tests := []struct {
		name string
		icon string
	}{
		{"INBOX", "inbox"},
		{"Sent Messages", "paper-airplane"},
		{"Draft", "pencil"},
		{"Lixeira", "trash"},
		{"Lixo", "trash"},
		{"Trash", "trash"},
		{"Junk", "exclamation-circle"},
		{"Archive 2020", "archive"},
		{"Projects", "folder"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.icon, Icon(tc.name))
		})
	}
}

func TestIsSystemFolder(t *testing.T) {
	for _, name := range []string{
		"inbox", "INBOX", "Sent", "SENT", "drafts", "Trash", "spam", "Junk",
		"INBOX.Sent", "inbox.trash", "Enviados", "Rascunhos", "LIXEIRA", "INBOX.Lixeira",
	} {
		assert.True(t, IsSystemFolder(name), name)
	}

	for _, name := range []string{"Projects", "Sent stuff", "INBOX.Projects", ""} {
		assert.False(t, IsSystemFolder(name), name)
	}
}

func TestAlternates(t *testing.T) {
	assert.Equal(t, SentCandidates, Alternates("Sent"))
	assert.Equal(t, DraftCandidates, Alternates("Drafts"))
	assert.Equal(t, TrashCandidates, Alternates("Lixeira"))
	assert.Equal(t, JunkCandidates, Alternates("Spam"))
	assert.Nil(t, Alternates("Projects"))
}
