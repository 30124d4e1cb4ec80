// SPDX-License-Identifier: GPL-3.0-or-later
package catalog

import (
	"sort"
	"strings"

	"github.com/CrawX/go-imap-webmail/domain"
)

const (
	Inbox = "INBOX"
	Sent  = "Sent"
	Draft = "Drafts"
	Trash = "Trash"
	Junk  = "Junk"

	DefaultRank = 100
)

var rankTable = []struct {
	keyword string
	rank    int
}{
	{"inbox", 1},
	{"sent", 2},
	{"drafts", 3},
	{"trash", 4},
	{"lixo", 4},
	{"lixeira", 4},
	{"spam", 5},
	{"junk", 5},
}

var iconTable = []struct {
	keywords []string
	icon     string
}{
	{[]string{"inbox"}, "inbox"},
	{[]string{"sent"}, "paper-airplane"},
	{[]string{"draft"}, "pencil"},
	{[]string{"trash", "lixo", "lixeira"}, "trash"},
	{[]string{"spam", "junk"}, "exclamation-circle"},
	{[]string{"archive"}, "archive"},
}

var (
	TrashCandidates = []string{"Trash", "INBOX.Trash", "Lixeira", "INBOX.Lixeira"}
	SentCandidates  = []string{"Sent", "INBOX.Sent", "Enviados", "INBOX.Enviados", "Sent Items", "Sent Messages", "Itens Enviados"}
	DraftCandidates = []string{"Drafts", "INBOX.Drafts", "Rascunhos", "INBOX.Rascunhos"}
	JunkCandidates  = []string{"Junk", "INBOX.Junk", "Spam", "INBOX.Spam", "Lixo Eletrônico", "INBOX.Lixo Eletrônico"}
)

var systemFolders = map[string]bool{}

func init() {
	for _, names := range [][]string{
		{"INBOX", "Sent", "Drafts", "Trash", "Spam", "Junk"},
		{"INBOX.Sent", "INBOX.Drafts", "INBOX.Trash", "INBOX.Spam", "INBOX.Junk"},
		{"Enviados", "Rascunhos", "Lixeira", "Lixo Eletrônico"},
		{"INBOX.Enviados", "INBOX.Rascunhos", "INBOX.Lixeira", "INBOX.Lixo Eletrônico"},
		{"Sent Items", "Sent Messages", "Itens Enviados", "Deleted Messages"},
	} {
		for _, name := range names {
			systemFolders[strings.ToLower(name)] = true
		}
	}
}

// Rank orders folders by meaning. The first keyword contained in the
// lowercased name wins, everything unrecognized shares DefaultRank.
func Rank(name string) int {
	lower := strings.ToLower(name)
	for _, r := range rankTable {
		if strings.Contains(lower, r.keyword) {
			return r.rank
		}
	}

	return DefaultRank
}

func Icon(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range iconTable {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.icon
			}
		}
	}

	return "folder"
}

// IsSystemFolder reports reserved names that users must not rename or delete.
func IsSystemFolder(name string) bool {
	return systemFolders[strings.ToLower(strings.TrimSpace(name))]
}

func Sort(folders []*domain.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		ri, rj := Rank(folders[i].Name), Rank(folders[j].Name)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})
}

// Alternates returns the localized and namespaced variants worth trying when
// target does not exist on the server. Unknown targets have none.
func Alternates(target string) []string {
	lower := strings.ToLower(target)
	switch {
	case strings.Contains(lower, "sent") || strings.Contains(lower, "enviad"):
		return SentCandidates
	case strings.Contains(lower, "draft") || strings.Contains(lower, "rascunho"):
		return DraftCandidates
	case strings.Contains(lower, "trash") || strings.Contains(lower, "lixeira"):
		return TrashCandidates
	case strings.Contains(lower, "junk") || strings.Contains(lower, "spam"):
		return JunkCandidates
	}

	return nil
}
