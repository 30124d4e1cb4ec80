// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/emersion/go-message"
	msgmail "github.com/emersion/go-message/mail"
)

const (
	NoSubject         = "(Sem assunto)"
	UnknownSender     = "Desconhecido"
	DefaultAttName    = "anexo"
	DefaultInlineMime = "image/png"
)

// RawMessage is what the transport hands over for decoding: the full RFC 5322
// source plus the server-side metadata that is not part of it.
type RawMessage struct {
	Uid          uint32
	Flags        []string
	InternalDate time.Time
	Body         []byte
}

// Part is every leaf that is not the message text itself.
type Part struct {
	ContentId   string
	Disposition string
	Mime        string
	Name        string
	Data        []byte
}

type Parsed struct {
	Subject   string
	MessageId string
	From      []domain.Address
	To        []domain.Address
	Cc        []domain.Address
	ReplyTo   []domain.Address
	Date      time.Time
	Text      string
	Html      string
	Parts     []*Part
}

// Parse decodes a raw message. Unknown charsets and broken trailing parts do
// not fail the parse, whatever was decoded so far is kept.
func Parse(raw []byte) (*Parsed, error) {
	mr, err := msgmail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("could not parse mail: %w", err)
	}
	if mr == nil {
		return nil, fmt.Errorf("could not parse mail: no reader")
	}
	defer mr.Close()

	parsed := &Parsed{
		Subject: DecodeHeader(mr.Header.Get("Subject")),
		From:    addressList(mr.Header, "From"),
		To:      addressList(mr.Header, "To"),
		Cc:      addressList(mr.Header, "Cc"),
		ReplyTo: addressList(mr.Header, "Reply-To"),
	}

	if id, err := mr.Header.MessageID(); err == nil {
		parsed.MessageId = id
	}
	if date, err := mr.Header.Date(); err == nil {
		parsed.Date = date
	}

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			break
		}
		if p == nil {
			continue
		}

		parsed.add(p)
	}

	return parsed, nil
}

func (p *Parsed) add(part *msgmail.Part) {
	var header message.Header
	switch h := part.Header.(type) {
	case *msgmail.InlineHeader:
		header = h.Header
	case *msgmail.AttachmentHeader:
		header = h.Header
	default:
		return
	}

	data, err := ioutil.ReadAll(part.Body)
	if err != nil && len(data) == 0 {
		return
	}

	mimeType, params, err := header.ContentType()
	if err != nil || len(mimeType) == 0 {
		mimeType = "text/plain"
	}
	mimeType = strings.ToLower(mimeType)

	disposition, dispParams, _ := header.ContentDisposition()
	disposition = strings.ToLower(disposition)

	name := dispParams["filename"]
	if len(name) == 0 {
		name = params["name"]
	}

	leaf := &Part{
		ContentId:   strings.Trim(header.Get("Content-Id"), "<> "),
		Disposition: disposition,
		Mime:        mimeType,
		Name:        DecodeHeader(name),
		Data:        data,
	}

	isBody := disposition != "attachment" && len(leaf.Name) == 0 && len(leaf.ContentId) == 0
	switch {
	case isBody && mimeType == "text/plain" && len(p.Text) == 0:
		p.Text = string(data)
	case isBody && mimeType == "text/html" && len(p.Html) == 0:
		p.Html = string(data)
	default:
		p.Parts = append(p.Parts, leaf)
	}
}

func addressList(h msgmail.Header, key string) []domain.Address {
	raw := h.Get(key)
	if len(strings.TrimSpace(raw)) == 0 {
		return nil
	}

	list, err := h.AddressList(key)
	if err != nil {
		return lenientAddresses(raw)
	}

	addresses := make([]domain.Address, 0, len(list))
	for _, a := range list {
		addresses = append(addresses, domain.Address{
			Name:  cleanName(a.Name),
			Email: a.Address,
		})
	}
	return addresses
}

// lenientAddresses salvages "Name <email>" pairs from a header the strict
// parser rejected.
func lenientAddresses(raw string) []domain.Address {
	addresses := []domain.Address{}
	for _, chunk := range strings.Split(unfold(raw), ",") {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) == 0 {
			continue
		}

		lt, gt := strings.LastIndex(chunk, "<"), strings.LastIndex(chunk, ">")
		if lt >= 0 && gt > lt {
			addresses = append(addresses, domain.Address{
				Name:  cleanName(chunk[:lt]),
				Email: strings.TrimSpace(chunk[lt+1 : gt]),
			})
			continue
		}

		if strings.Contains(chunk, "@") {
			addresses = append(addresses, domain.Address{Email: chunk})
		}
	}
	return addresses
}

func cleanName(name string) string {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	return DecodeHeader(name)
}

// IsRealAttachment separates downloadable files from inline images that are
// referenced by Content-ID.
func IsRealAttachment(p *Part) bool {
	return p.Disposition == "attachment" || len(p.ContentId) == 0
}

func RealAttachments(parts []*Part) []*Part {
	attachments := []*Part{}
	for _, p := range parts {
		if IsRealAttachment(p) {
			attachments = append(attachments, p)
		}
	}
	return attachments
}
