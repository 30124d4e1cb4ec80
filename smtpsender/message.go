// SPDX-License-Identifier: GPL-3.0-or-later
package smtpsender

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Composition is everything needed to render one RFC 5322 message.
type Composition struct {
	From    domain.Address
	Message *domain.OutgoingMessage
	Date    time.Time
	// IncludeBcc keeps the Bcc header, which only makes sense for drafts.
	IncludeBcc bool
}

func toMailAddresses(addresses []domain.Address) []*mail.Address {
	result := []*mail.Address{}
	for _, a := range addresses {
		result = append(result, &mail.Address{Name: a.Name, Address: a.Email})
	}
	return result
}

func domainOf(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "localhost"
	}
	return email[at+1:]
}

// angle normalizes a message id to its bracketed form.
func angle(id string) string {
	id = strings.Trim(strings.TrimSpace(id), "<>")
	if len(id) == 0 {
		return ""
	}
	return "<" + id + ">"
}

func angleList(ids string) string {
	normalized := []string{}
	for _, id := range strings.Fields(ids) {
		if a := angle(id); len(a) > 0 {
			normalized = append(normalized, a)
		}
	}
	return strings.Join(normalized, " ")
}

// HtmlToText drops tags, scripts and styles and collapses whitespace.
func HtmlToText(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))
	var sb strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if tt == html.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
			}
			sb.WriteString(" ")
		case html.SelfClosingTagToken:
			sb.WriteString(" ")
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func bodies(msg *domain.OutgoingMessage) (string, string) {
	htmlBody := msg.HtmlBody
	if len(strings.TrimSpace(htmlBody)) == 0 {
		htmlBody = " "
	}

	textBody := msg.TextBody
	if len(strings.TrimSpace(textBody)) == 0 {
		textBody = HtmlToText(htmlBody)
	}
	if len(textBody) == 0 {
		textBody = " "
	}
	return htmlBody, textBody
}

func writePart(w io.WriteCloser, content string) error {
	_, err := io.WriteString(w, content)
	if err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Build renders the composition as multipart/mixed with a text/html
// alternative followed by the attachments. Attachments whose file is gone
// are skipped.
func Build(c *Composition) ([]byte, error) {
	msg := c.Message

	var h mail.Header
	h.SetDate(c.Date)
	h.SetAddressList("From", []*mail.Address{{Name: c.From.Name, Address: c.From.Email}})
	h.SetAddressList("To", toMailAddresses(msg.To))
	if len(msg.Cc) > 0 {
		h.SetAddressList("Cc", toMailAddresses(msg.Cc))
	}
	if c.IncludeBcc && len(msg.Bcc) > 0 {
		h.SetAddressList("Bcc", toMailAddresses(msg.Bcc))
	}
	h.SetSubject(msg.Subject)
	h.SetMessageID(uuid.NewString() + "@" + domainOf(c.From.Email))
	if inReplyTo := angle(msg.InReplyTo); len(inReplyTo) > 0 {
		h.Set("In-Reply-To", inReplyTo)
	}
	if references := angleList(msg.References); len(references) > 0 {
		h.Set("References", references)
	}

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("could not create message writer: %w", err)
	}

	htmlBody, textBody := bodies(msg)

	iw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("could not create alternative part: %w", err)
	}
	for _, alternative := range []struct {
		mime    string
		content string
	}{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		var ih mail.InlineHeader
		ih.SetContentType(alternative.mime, map[string]string{"charset": "utf-8"})
		w, err := iw.CreatePart(ih)
		if err != nil {
			return nil, fmt.Errorf("could not create %s part: %w", alternative.mime, err)
		}
		err = writePart(w, alternative.content)
		if err != nil {
			return nil, fmt.Errorf("could not write %s part: %w", alternative.mime, err)
		}
	}
	err = iw.Close()
	if err != nil {
		return nil, fmt.Errorf("could not close alternative part: %w", err)
	}

	for _, attachment := range msg.Attachments {
		err = attach(mw, attachment)
		if err != nil {
			return nil, err
		}
	}

	err = mw.Close()
	if err != nil {
		return nil, fmt.Errorf("could not close message: %w", err)
	}

	return buf.Bytes(), nil
}

func attach(mw *mail.Writer, attachment domain.OutgoingAttachment) error {
	f, err := os.Open(attachment.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not open attachment: %w", err)
	}
	defer f.Close()

	mimeType := attachment.Mime
	if len(mimeType) == 0 {
		mimeType = "application/octet-stream"
	}
	name := attachment.Name
	if len(name) == 0 {
		name = filepath.Base(attachment.Path)
	}

	var ah mail.AttachmentHeader
	ah.SetContentType(mimeType, nil)
	ah.SetFilename(name)
	w, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("could not create attachment part: %w", err)
	}

	_, err = io.Copy(w, f)
	if err != nil {
		w.Close()
		return fmt.Errorf("could not write attachment: %w", err)
	}
	return w.Close()
}
