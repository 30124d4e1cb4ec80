// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/emersion/go-imap"
)

var cidReference = regexp.MustCompile(`cid:([^"'\s)>]+)`)

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

func messageDate(parsed *Parsed, raw *RawMessage) time.Time {
	if parsed.Date.IsZero() {
		return raw.InternalDate
	}
	return parsed.Date
}

func subjectOrDefault(subject string) string {
	if len(strings.TrimSpace(subject)) == 0 {
		return NoSubject
	}
	return subject
}

func sender(from []domain.Address) domain.Address {
	if len(from) == 0 {
		return domain.Address{Name: UnknownSender}
	}

	first := from[0]
	if len(first.Name) == 0 {
		first.Name = first.Email
	}
	if len(first.Name) == 0 {
		first.Name = UnknownSender
	}
	return first
}

func hasRealAttachment(parts []*Part) bool {
	for _, p := range parts {
		if IsRealAttachment(p) {
			return true
		}
	}
	return false
}

// Preview builds the listing row for a message.
func Preview(raw *RawMessage, now time.Time) (*domain.MessagePreview, error) {
	parsed, err := Parse(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("could not decode message %d: %w", raw.Uid, err)
	}

	date := messageDate(parsed, raw)
	preview := &domain.MessagePreview{
		Uid:            raw.Uid,
		MessageId:      parsed.MessageId,
		Subject:        subjectOrDefault(parsed.Subject),
		From:           sender(parsed.From),
		DateHuman:      HumanDate(date, now),
		Seen:           hasFlag(raw.Flags, imap.SeenFlag),
		Flagged:        hasFlag(raw.Flags, imap.FlaggedFlag),
		HasAttachments: hasRealAttachment(parsed.Parts),
		Preview:        PreviewText(parsed.Text),
		Time:           date,
	}
	if !date.IsZero() {
		preview.Date = date.In(now.Location()).Format(dateLayout)
	}

	return preview, nil
}

// Detail builds the full single-message view. Inline images referenced by
// Content-ID are embedded into the HTML body as data URIs.
func Detail(raw *RawMessage, loc *time.Location) (*domain.MessageDetail, error) {
	parsed, err := Parse(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("could not decode message %d: %w", raw.Uid, err)
	}

	date := messageDate(parsed, raw)
	detail := &domain.MessageDetail{
		Uid:            raw.Uid,
		MessageId:      parsed.MessageId,
		Subject:        subjectOrDefault(parsed.Subject),
		From:           named(parsed.From),
		To:             named(parsed.To),
		Cc:             named(parsed.Cc),
		ReplyTo:        named(parsed.ReplyTo),
		Seen:           hasFlag(raw.Flags, imap.SeenFlag),
		Flagged:        hasFlag(raw.Flags, imap.FlaggedFlag),
		HasAttachments: hasRealAttachment(parsed.Parts),
		BodyHtml:       ResolveInlineImages(parsed.Html, parsed.Parts),
		BodyText:       parsed.Text,
		Attachments:    []*domain.AttachmentInfo{},
		Time:           date,
	}
	if !date.IsZero() {
		local := date.In(loc)
		detail.Date = local.Format(dateLayout)
		detail.DateFormatted = local.Format(formattedDateLayout)
	}

	for index, p := range parsed.Parts {
		if !IsRealAttachment(p) {
			continue
		}
		detail.Attachments = append(detail.Attachments, &domain.AttachmentInfo{
			Index:     index,
			Name:      attachmentName(p),
			Mime:      p.Mime,
			Size:      len(p.Data),
			SizeHuman: HumanSize(len(p.Data)),
		})
	}

	return detail, nil
}

// ResolveInlineImages replaces every cid: reference with the bytes of the
// matching part. References without a matching part are left alone.
func ResolveInlineImages(html string, parts []*Part) string {
	if len(html) == 0 {
		return html
	}

	uris := map[string]string{}
	for _, p := range parts {
		if len(p.ContentId) == 0 {
			continue
		}
		if _, ok := uris[p.ContentId]; ok {
			continue
		}

		mimeType := p.Mime
		if len(mimeType) == 0 {
			mimeType = DefaultInlineMime
		}
		uris[p.ContentId] = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
	}
	if len(uris) == 0 {
		return html
	}

	return cidReference.ReplaceAllStringFunc(html, func(ref string) string {
		if uri, ok := uris[strings.TrimPrefix(ref, "cid:")]; ok {
			return uri
		}
		return ref
	})
}

// AttachmentAt returns the part at index in decode order, or nil when there is
// none.
func AttachmentAt(rawMail []byte, index int) (*domain.AttachmentContent, error) {
	parsed, err := Parse(rawMail)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(parsed.Parts) {
		return nil, nil
	}

	p := parsed.Parts[index]
	mimeType := p.Mime
	if len(mimeType) == 0 {
		mimeType = "application/octet-stream"
	}
	return &domain.AttachmentContent{
		Name: attachmentName(p),
		Mime: mimeType,
		Data: p.Data,
		Size: len(p.Data),
	}, nil
}

func attachmentName(p *Part) string {
	if len(p.Name) == 0 {
		return DefaultAttName
	}
	return p.Name
}

// named copies addresses, showing the email where no display name was given.
func named(addresses []domain.Address) []domain.Address {
	result := make([]domain.Address, 0, len(addresses))
	for _, a := range addresses {
		if len(a.Name) == 0 {
			a.Name = a.Email
		}
		result = append(result, a)
	}
	return result
}
