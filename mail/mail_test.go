// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawMail(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

var alternativeMail = rawMail(
	"From: =?UTF-8?Q?Jos=C3=A9_Silva?= <jose@example.com>",
	"To: \"Maria\" <maria@example.com>, ana@example.com",
	"Subject: =?UTF-8?B?T2zDoSBtdW5kbw==?=",
	"Date: Fri, 15 Mar 2024 09:05:00 +0000",
	"Message-Id: <abc@example.com>",
	"MIME-Version: 1.0",
	"Content-Type: multipart/alternative; boundary=\"b1\"",
	"",
	"--b1",
	"Content-Type: text/plain; charset=utf-8",
	"",
	"  Hello\t\tthere,",
	"",
	"   how are   you?  ",
	"--b1",
	"Content-Type: text/html; charset=utf-8",
	"",
	"<p>Hello there</p>",
	"--b1--",
	"",
)

var relatedMail = rawMail(
	"From: sender@example.com",
	"To: maria@example.com",
	"Subject: Inline",
	"Date: Fri, 15 Mar 2024 09:05:00 +0000",
	"MIME-Version: 1.0",
	"Content-Type: multipart/related; boundary=\"b2\"",
	"",
	"--b2",
	"Content-Type: text/html; charset=utf-8",
	"",
	"<p><img src=\"cid:img1\"> and again <img src=\"cid:img1\"></p>",
	"--b2",
	"Content-Type: image/png",
	"Content-Transfer-Encoding: base64",
	"Content-Id: <img1>",
	"Content-Disposition: inline",
	"",
	"iVBORw0KGgo=",
	"--b2--",
	"",
)

var mixedMail = rawMail(
	"From: sender@example.com",
	"To: maria@example.com",
	"Subject: Report",
	"Date: Fri, 15 Mar 2024 09:05:00 +0000",
	"MIME-Version: 1.0",
	"Content-Type: multipart/mixed; boundary=\"b3\"",
	"",
	"--b3",
	"Content-Type: text/plain; charset=utf-8",
	"",
	"see attached",
	"--b3",
	"Content-Type: image/png",
	"Content-Transfer-Encoding: base64",
	"Content-Id: <logo>",
	"",
	"iVBORw0KGgo=",
	"--b3",
	"Content-Type: application/pdf; name=\"report.pdf\"",
	"Content-Disposition: attachment; filename=\"report.pdf\"",
	"",
	"fake pdf",
	"--b3",
	"Content-Type: application/octet-stream",
	"Content-Disposition: attachment",
	"",
	"blob",
	"--b3--",
	"",
)

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "Saying Hello", "Saying Hello"},
		{"base64", "=?UTF-8?B?T2zDoSBtdW5kbw==?=", "Olá mundo"},
		{"latin1", "=?ISO-8859-1?Q?Ol=E1?=", "Olá"},
		{"folded", "first\r\n second", "first second"},
		{"unknown charset", "=?x-bogus?Q?abc?= tail", "=?x-bogus?Q?abc?= tail"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DecodeHeader(tc.in))
		})
	}
}

func TestParseAddresses(t *testing.T) {
	parsed, err := Parse(alternativeMail)
	require.NoError(t, err)

	assert.Equal(t, []domain.Address{{Name: "José Silva", Email: "jose@example.com"}}, parsed.From)
	assert.Equal(t, []domain.Address{
		{Name: "Maria", Email: "maria@example.com"},
		{Name: "", Email: "ana@example.com"},
	}, parsed.To)
	assert.Equal(t, "abc@example.com", parsed.MessageId)
}

func TestLenientAddresses(t *testing.T) {
	addresses := lenientAddresses(`"Fulano" <fulano@example.com>, not-an-address, other@example.com`)
	assert.Equal(t, []domain.Address{
		{Name: "Fulano", Email: "fulano@example.com"},
		{Email: "other@example.com"},
	}, addresses)
}

func TestPreview(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 32, 0, 0, time.UTC)
	preview, err := Preview(&RawMessage{Uid: 7, Flags: []string{`\Seen`}, Body: alternativeMail}, now)
	require.NoError(t, err)

	assert.Equal(t, uint32(7), preview.Uid)
	assert.Equal(t, "Olá mundo", preview.Subject)
	assert.Equal(t, domain.Address{Name: "José Silva", Email: "jose@example.com"}, preview.From)
	assert.Equal(t, "Hello there, how are you?", preview.Preview)
	assert.Equal(t, "2024-03-15 09:05:00", preview.Date)
	assert.Equal(t, "09:05", preview.DateHuman)
	assert.True(t, preview.Seen)
	assert.False(t, preview.Flagged)
	assert.False(t, preview.HasAttachments)
}

func TestPreviewDefaults(t *testing.T) {
	internal := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	body := rawMail("Content-Type: text/plain", "", "body only")

	preview, err := Preview(&RawMessage{Uid: 1, InternalDate: internal, Body: body}, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, NoSubject, preview.Subject)
	assert.Equal(t, UnknownSender, preview.From.Name)
	assert.Equal(t, internal, preview.Time)
	assert.Equal(t, "01/06/2023", preview.DateHuman)
}

func TestPreviewText(t *testing.T) {
	long := strings.Repeat("é", 200)

	result := PreviewText(long)
	assert.Equal(t, PreviewLength, utf8.RuneCountInString(result))
	assert.True(t, utf8.ValidString(result))

	assert.Equal(t, "a b c", PreviewText("\n a \t b\r\n\r\nc  "))
	assert.Equal(t, "", PreviewText(""))
}

func TestDetailInlineImage(t *testing.T) {
	detail, err := Detail(&RawMessage{Uid: 3, Body: relatedMail}, time.UTC)
	require.NoError(t, err)

	assert.NotContains(t, detail.BodyHtml, "cid:img1")
	assert.Equal(t, 2, strings.Count(detail.BodyHtml, "data:image/png;base64,iVBORw0KGgo="))
	assert.Empty(t, detail.Attachments)
	assert.False(t, detail.HasAttachments)
}

func TestDetailAttachments(t *testing.T) {
	detail, err := Detail(&RawMessage{Uid: 4, Flags: []string{`\Flagged`}, Body: mixedMail}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "see attached", detail.BodyText)
	assert.Equal(t, "15/03/2024 às 09:05", detail.DateFormatted)
	assert.True(t, detail.Flagged)
	assert.True(t, detail.HasAttachments)
	assert.Equal(t, []*domain.AttachmentInfo{
		{Index: 1, Name: "report.pdf", Mime: "application/pdf", Size: 8, SizeHuman: "8 B"},
		{Index: 2, Name: DefaultAttName, Mime: "application/octet-stream", Size: 4, SizeHuman: "4 B"},
	}, detail.Attachments)
	assert.Equal(t, []domain.Address{}, detail.Cc)
}

var unknownCharsetMail = rawMail(
	"From: sender@example.com",
	"To: maria@example.com, \"Ana\" <ana@example.com>",
	"Reply-To: replies@example.com",
	"Subject: Legacy",
	"Date: Fri, 15 Mar 2024 09:05:00 +0000",
	"MIME-Version: 1.0",
	"Content-Type: multipart/mixed; boundary=\"b4\"",
	"",
	"--b4",
	"Content-Type: text/plain; charset=x-bogus-charset",
	"",
	"plain body",
	"--b4",
	"Content-Type: application/pdf",
	"Content-Disposition: attachment; filename=report.pdf",
	"",
	"fake pdf",
	"--b4--",
	"",
)

func TestDetailUnknownCharsetKeepsParts(t *testing.T) {
	detail, err := Detail(&RawMessage{Uid: 5, Body: unknownCharsetMail}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "plain body", detail.BodyText)
	assert.True(t, detail.HasAttachments)
	require.Len(t, detail.Attachments, 1)
	assert.Equal(t, "report.pdf", detail.Attachments[0].Name)
}

func TestDetailAddressNames(t *testing.T) {
	detail, err := Detail(&RawMessage{Uid: 5, Body: unknownCharsetMail}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []domain.Address{{Name: "sender@example.com", Email: "sender@example.com"}}, detail.From)
	assert.Equal(t, []domain.Address{
		{Name: "maria@example.com", Email: "maria@example.com"},
		{Name: "Ana", Email: "ana@example.com"},
	}, detail.To)
	assert.Equal(t, []domain.Address{{Name: "replies@example.com", Email: "replies@example.com"}}, detail.ReplyTo)
	assert.Equal(t, []domain.Address{}, detail.Cc)
}

func TestResolveInlineImagesSharedPrefix(t *testing.T) {
	parts := []*Part{
		{ContentId: "img1", Mime: "image/png", Data: []byte("A")},
		{ContentId: "img10", Mime: "image/gif", Data: []byte("B")},
	}

	html := ResolveInlineImages(`<img src="cid:img1"><img src="cid:img10"><img src='cid:img2'><div style="background:url(cid:img1)">`, parts)
	assert.Equal(t, `<img src="data:image/png;base64,QQ=="><img src="data:image/gif;base64,Qg=="><img src='cid:img2'><div style="background:url(data:image/png;base64,QQ==)">`, html)
}

func TestAttachmentAt(t *testing.T) {
	content, err := AttachmentAt(mixedMail, 1)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, "report.pdf", content.Name)
	assert.Equal(t, "application/pdf", content.Mime)
	assert.Equal(t, []byte("fake pdf"), content.Data)
	assert.Equal(t, 8, content.Size)

	content, err = AttachmentAt(mixedMail, 9)
	assert.NoError(t, err)
	assert.Nil(t, content)
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 32, 0, 0, time.UTC)
	tests := []struct {
		name     string
		date     time.Time
		now      time.Time
		expected string
	}{
		{"today", time.Date(2024, 3, 15, 14, 32, 0, 0, time.UTC), now, "14:32"},
		{"yesterday", time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC), now, Yesterday},
		{"same year", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), now, "02/01"},
		{"prior year", time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC), now, "31/12/2023"},
		{"yesterday across years", time.Date(2023, 12, 31, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Yesterday},
		{"zero", time.Time{}, now, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HumanDate(tc.date, tc.now))
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes    int
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
		{1024 * 1024 * 1024 * 1024, "1024 GB"},
	}
	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, HumanSize(tc.bytes))
		})
	}
}

func TestShortSubject(t *testing.T) {
	assert.Equal(t, "short", ShortSubject("short"))
	assert.Equal(t, strings.Repeat("ç", 30)+"...", ShortSubject(strings.Repeat("ç", 40)))
}

func TestUnwrapSpamassassinReport(t *testing.T) {
	plain := rawMail("Subject: hello", "", "body")
	result, err := UnwrapSpamassassinReport(plain)
	assert.NoError(t, err)
	assert.Equal(t, plain, result)

	wrapped := rawMail(
		"X-Spam-Flag: YES",
		"X-Spam-Status: Yes, score=9.1",
		"MIME-Version: 1.0",
		"Content-Type: multipart/mixed; boundary=\"sa\"",
		"",
		"--sa",
		"Content-Type: text/plain",
		"",
		"Spam detection software has identified this message.",
		"--sa",
		"Content-Type: message/rfc822; x-spam-type=original",
		"",
		"Subject: original",
		"",
		"hello",
		"--sa--",
		"",
	)
	result, err = UnwrapSpamassassinReport(wrapped)
	assert.NoError(t, err)
	assert.Equal(t, "Subject: original\r\n\r\nhello", string(result))
}
