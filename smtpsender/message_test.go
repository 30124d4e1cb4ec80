// SPDX-License-Identifier: GPL-3.0-or-later
package smtpsender

import (
	"bytes"
	"io"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type builtPart struct {
	mime     string
	filename string
	body     string
}

func readBuilt(t *testing.T, raw []byte) (mail.Header, []builtPart) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	parts := []builtPart{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		body, err := ioutil.ReadAll(p.Body)
		require.NoError(t, err)

		part := builtPart{body: string(body)}
		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			part.mime, _, _ = h.ContentType()
		case *mail.AttachmentHeader:
			part.mime, _, _ = h.ContentType()
			part.filename, _ = h.Filename()
		}
		parts = append(parts, part)
	}
	return mr.Header, parts
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload-1")
	require.NoError(t, ioutil.WriteFile(path, []byte("%PDF-1.4"), 0600))

	raw, err := Build(&Composition{
		From: domain.Address{Name: "Me", Email: "me@example.com"},
		Message: &domain.OutgoingMessage{
			To:       []domain.Address{{Name: "Ana", Email: "ana@example.com"}},
			Cc:       []domain.Address{{Email: "cc@example.com"}},
			Bcc:      []domain.Address{{Email: "hidden@example.com"}},
			Subject:  "Relatório mensal",
			HtmlBody: "<p>Olá <b>Ana</b></p><script>alert(1)</script>",
			Attachments: []domain.OutgoingAttachment{
				{Path: path, Name: "report.pdf", Mime: "application/pdf"},
				{Path: filepath.Join(dir, "gone"), Name: "gone.txt", Mime: "text/plain"},
			},
			InReplyTo:  "abc@example.com",
			References: "<first@example.com> second@example.com",
		},
		Date: time.Date(2024, 3, 15, 14, 32, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	h, parts := readBuilt(t, raw)

	subject, err := h.Subject()
	assert.NoError(t, err)
	assert.Equal(t, "Relatório mensal", subject)
	assert.Equal(t, "<abc@example.com>", h.Get("In-Reply-To"))
	assert.Equal(t, "<first@example.com> <second@example.com>", h.Get("References"))
	assert.Empty(t, h.Get("Bcc"))

	id, err := h.MessageID()
	assert.NoError(t, err)
	assert.Contains(t, id, "@example.com")

	date, err := h.Date()
	assert.NoError(t, err)
	assert.True(t, date.Equal(time.Date(2024, 3, 15, 14, 32, 0, 0, time.UTC)))

	require.Len(t, parts, 3)
	assert.Equal(t, builtPart{mime: "text/plain", body: "Olá Ana"}, parts[0])
	assert.Equal(t, "text/html", parts[1].mime)
	assert.Equal(t, builtPart{mime: "application/pdf", filename: "report.pdf", body: "%PDF-1.4"}, parts[2])
}

func TestBuild_EmptyBodiesAndDraftBcc(t *testing.T) {
	raw, err := Build(&Composition{
		From: domain.Address{Email: "me@example.com"},
		Message: &domain.OutgoingMessage{
			Bcc: []domain.Address{{Email: "hidden@example.com"}},
		},
		Date:       time.Now(),
		IncludeBcc: true,
	})
	require.NoError(t, err)

	h, parts := readBuilt(t, raw)
	assert.Contains(t, h.Get("Bcc"), "hidden@example.com")
	require.Len(t, parts, 2)
	assert.Equal(t, " ", parts[0].body)
	assert.Equal(t, " ", parts[1].body)
}

func TestHtmlToText(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"<p>Hello</p><p>World</p>", "Hello World"},
		{"<style>p{color:red}</style><div>a &amp; b</div>", "a & b"},
		{"line<br/>break", "line break"},
		{" ", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, HtmlToText(tc.in))
		})
	}
}

func TestAngle(t *testing.T) {
	assert.Equal(t, "<a@b>", angle("a@b"))
	assert.Equal(t, "<a@b>", angle(" <a@b> "))
	assert.Equal(t, "", angle("<>"))
	assert.Equal(t, "<a@b> <c@d>", angleList("a@b\r\n <c@d>"))
}
