// SPDX-License-Identifier: GPL-3.0-or-later
package attachments

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"
	"github.com/CrawX/go-imap-webmail/mail"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MaxUploadSize = 10 * 1024 * 1024
	StaleAfter    = 24 * time.Hour

	sniffLength = 512
)

var (
	ErrTooLarge      = errors.New("attachment exceeds the upload limit")
	ErrForbiddenType = errors.New("attachment type is not allowed")
	ErrInvalidId     = errors.New("invalid attachment or session id")
)

var forbiddenTypes = map[string]bool{
	"application/x-httpd-php":  true,
	"text/x-php":               true,
	"application/x-php":        true,
	"application/x-executable": true,
	"application/x-sharedlib":  true,
}

var magics = []struct {
	prefix []byte
	mime   string
}{
	{[]byte("\x7fELF"), "application/x-executable"},
	{[]byte("<?php"), "application/x-httpd-php"},
}

type Upload struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	SizeHuman string `json:"size_human"`
	Mime      string `json:"mime"`
}

// Ref points at an earlier upload by id, with the name the user sees.
type Ref struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Store keeps uploads in one directory per session until the message is sent
// or the session goes stale.
type Store struct {
	root    string
	maxSize int64
	now     func() time.Time
	l       *logrus.Logger
}

func NewStore(root string) (*Store, error) {
	err := os.MkdirAll(root, 0700)
	if err != nil {
		return nil, fmt.Errorf("could not create attachment directory: %w", err)
	}

	return &Store{
		root:    root,
		maxSize: MaxUploadSize,
		now:     time.Now,
		l:       log.Logger(log.LOG_ATTACHMENTS),
	}, nil
}

func (s *Store) sessionDir(sessionId string) (string, error) {
	if _, err := uuid.Parse(sessionId); err != nil {
		return "", ErrInvalidId
	}
	return filepath.Join(s.root, sessionId), nil
}

// Save stores one upload. Oversized and dangerous files are refused before
// anything is left on disk.
func (s *Store) Save(sessionId, name string, r io.Reader) (*Upload, error) {
	dir, err := s.sessionDir(sessionId)
	if err != nil {
		return nil, err
	}

	content, err := ioutil.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}
	if int64(len(content)) > s.maxSize {
		return nil, ErrTooLarge
	}

	mimeType := detectMime(name, content)
	if forbiddenTypes[mimeType] {
		s.l.WithFields(logrus.Fields{"Name": name, "Mime": mimeType}).Warn("Refused upload")
		return nil, ErrForbiddenType
	}

	err = os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, fmt.Errorf("could not create session directory: %w", err)
	}

	id := uuid.NewString()
	err = ioutil.WriteFile(filepath.Join(dir, id+extension(name)), content, 0600)
	if err != nil {
		return nil, fmt.Errorf("could not write upload: %w", err)
	}

	s.l.WithFields(logrus.Fields{"Id": id, "Size": len(content), "Mime": mimeType}).Debug("Stored upload")

	return &Upload{
		Id:        id,
		Name:      filepath.Base(name),
		Size:      int64(len(content)),
		SizeHuman: mail.HumanSize(len(content)),
		Mime:      mimeType,
	}, nil
}

func (s *Store) find(dir, id string) (string, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}

	matches, err := filepath.Glob(filepath.Join(dir, id+"*"))
	if err != nil {
		return "", false
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, true
		}
	}
	return "", false
}

// Resolve turns references into files ready for sending. Unknown ids are
// skipped.
func (s *Store) Resolve(sessionId string, refs []Ref) []domain.OutgoingAttachment {
	dir, err := s.sessionDir(sessionId)
	if err != nil {
		return []domain.OutgoingAttachment{}
	}

	resolved := []domain.OutgoingAttachment{}
	for _, ref := range refs {
		path, ok := s.find(dir, ref.Id)
		if !ok {
			s.l.WithField("Id", ref.Id).Debug("Skipping unknown attachment")
			continue
		}

		name := ref.Name
		if len(strings.TrimSpace(name)) == 0 {
			name = ref.Id
		}

		resolved = append(resolved, domain.OutgoingAttachment{
			Path: path,
			Name: name,
			Mime: mimeOfFile(path),
		})
	}

	return resolved
}

func (s *Store) Remove(sessionId, id string) error {
	dir, err := s.sessionDir(sessionId)
	if err != nil {
		return err
	}

	path, ok := s.find(dir, id)
	if !ok {
		return nil
	}

	err = os.Remove(path)
	if err != nil {
		return fmt.Errorf("could not remove attachment: %w", err)
	}
	return nil
}

// Cleanup drops every upload of a session.
func (s *Store) Cleanup(sessionId string) error {
	dir, err := s.sessionDir(sessionId)
	if err != nil {
		return err
	}

	err = os.RemoveAll(dir)
	if err != nil {
		return fmt.Errorf("could not remove session directory: %w", err)
	}
	return nil
}

// CleanupOlderThan removes session directories untouched for longer than age
// and returns how many went away.
func (s *Store) CleanupOlderThan(age time.Duration) (int, error) {
	entries, err := ioutil.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("could not list attachment directory: %w", err)
	}

	cutoff := s.now().Add(-age)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !entry.ModTime().Before(cutoff) {
			continue
		}

		err := os.RemoveAll(filepath.Join(s.root, entry.Name()))
		if err != nil {
			s.l.WithError(err).WithField("Dir", entry.Name()).Warn("Could not remove stale session directory")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.l.WithField("Count", removed).Info("Removed stale upload directories")
	}

	return removed, nil
}

func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	for _, r := range ext[min(1, len(ext)):] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// detectMime prefers content over the file name so renamed binaries are still
// recognized.
func detectMime(name string, content []byte) string {
	for _, m := range magics {
		if bytes.HasPrefix(content, m.prefix) {
			return m.mime
		}
	}

	sniffed := http.DetectContentType(content[:min(len(content), sniffLength)])
	if !strings.HasPrefix(sniffed, "text/plain") && sniffed != "application/octet-stream" {
		return baseType(sniffed)
	}

	if byName := mime.TypeByExtension(extension(name)); len(byName) > 0 {
		return baseType(byName)
	}

	return baseType(sniffed)
}

func mimeOfFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	head := make([]byte, sniffLength)
	n, _ := io.ReadFull(f, head)
	return detectMime(path, head[:n])
}

func baseType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}
