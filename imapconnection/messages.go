// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io/ioutil"
	"math"
	"net/textproto"
	"sort"
	"strings"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/mail"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

var fullBodySection = &imap.BodySectionName{
	Peek: true,
}

var fullMessageItems = []imap.FetchItem{
	imap.FetchUid,
	imap.FetchFlags,
	imap.FetchInternalDate,
	fullBodySection.FetchItem(),
}

var querySanitizer = strings.NewReplacer(`"`, "", `\`, "")

// maxPage keeps page offsets far from overflowing.
const maxPage = math.MaxInt32

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func emptyPage(page, pageSize int) *domain.MessagePage {
	return &domain.MessagePage{
		Messages: []*domain.MessagePreview{},
		Page:     page,
		PageSize: pageSize,
	}
}

func totalPages(total uint32, pageSize int) int {
	return int((int64(total) + int64(pageSize) - 1) / int64(pageSize))
}

// pageRange maps a page onto sequence numbers, newest first: page 1 covers the
// last pageSize messages of the folder.
func pageRange(total uint32, page, pageSize int) (uint32, uint32, bool) {
	end := int64(total) - int64(page-1)*int64(pageSize)
	if end < 1 {
		return 0, 0, false
	}

	start := end - int64(pageSize) + 1
	if start < 1 {
		start = 1
	}
	return uint32(start), uint32(end), true
}

func sortByDate(messages []*domain.MessagePreview) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Time.After(messages[j].Time)
	})
}

// fetch collects a whole FETCH response. Message literals are buffered by the
// client, so bodies can be read after the command completed.
func (ic *ImapConnection) fetch(seqset *imap.SeqSet, items []imap.FetchItem, byUid bool) ([]*imap.Message, error) {
	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		if byUid {
			done <- ic.connection.client.UidFetch(seqset, items, messages)
		} else {
			done <- ic.connection.client.Fetch(seqset, items, messages)
		}
	}()

	results := []*imap.Message{}
	for msg := range messages {
		results = append(results, msg)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not fetch mails: %w", err)
	}

	return results, nil
}

func (ic *ImapConnection) fetchRaw(uids []uint32) ([]*mail.RawMessage, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	messages, err := ic.fetch(seqset, fullMessageItems, true)
	if err != nil {
		return nil, err
	}

	return toRaw(messages)
}

func toRaw(messages []*imap.Message) ([]*mail.RawMessage, error) {
	raws := []*mail.RawMessage{}
	for _, msg := range messages {
		r := msg.GetBody(fullBodySection)
		if r == nil {
			continue
		}

		body, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("could not read mail body: %w", err)
		}

		raws = append(raws, &mail.RawMessage{
			Uid:          msg.Uid,
			Flags:        msg.Flags,
			InternalDate: msg.InternalDate,
			Body:         body,
		})
	}
	return raws, nil
}

func (ic *ImapConnection) previews(raws []*mail.RawMessage) []*domain.MessagePreview {
	now := ic.now()
	previews := []*domain.MessagePreview{}
	for _, raw := range raws {
		preview, err := mail.Preview(raw, now)
		if err != nil {
			ic.l.WithFields(logrus.Fields{"uid": raw.Uid}).WithError(err).Warn("Could not decode message")
			continue
		}
		previews = append(previews, preview)
	}

	sortByDate(previews)
	return previews
}

func (ic *ImapConnection) ListMessages(folder string, page, pageSize int) *domain.MessagePage {
	page, pageSize = normalizePaging(page, pageSize)
	result := emptyPage(page, pageSize)
	if !ic.connected() {
		return result
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"folder": folder, "page": page})

	status, err := ic.connection.client.Select(folder, true)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder")
		return result
	}

	start, end, ok := pageRange(status.Messages, page, pageSize)
	if !ok {
		result.Total = status.Messages
		result.TotalPages = totalPages(status.Messages, pageSize)
		return result
	}

	seqset := &imap.SeqSet{}
	seqset.AddRange(start, end)
	messages, err := ic.fetch(seqset, fullMessageItems, false)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not fetch page")
		return result
	}

	raws, err := toRaw(messages)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not read page")
		return result
	}

	result.Messages = ic.previews(raws)
	result.Total = status.Messages
	result.TotalPages = totalPages(status.Messages, pageSize)
	return result
}

func (ic *ImapConnection) GetMessage(folder string, uid uint32) *domain.MessageDetail {
	if !ic.connected() {
		return nil
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"folder": folder, "uid": uid})

	_, err := ic.connection.client.Select(folder, false)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder")
		return nil
	}

	raws, err := ic.fetchRaw([]uint32{uid})
	if err != nil {
		baseLogger.WithError(err).Warn("Could not fetch message")
		return nil
	}
	raw := findRaw(raws, uid)
	if raw == nil {
		return nil
	}

	detail, err := mail.Detail(raw, ic.now().Location())
	if err != nil {
		baseLogger.WithError(err).Warn("Could not decode message")
		return nil
	}

	err = storeFlag(ic.connection.client, []uint32{uid}, imap.SeenFlag, true)
	if err != nil {
		baseLogger.WithError(err).Info("Could not mark message as seen")
	} else {
		detail.Seen = true
	}

	return detail
}

func findRaw(raws []*mail.RawMessage, uid uint32) *mail.RawMessage {
	for _, raw := range raws {
		if raw.Uid == uid {
			return raw
		}
	}
	return nil
}

func (ic *ImapConnection) GetAttachment(folder string, uid uint32, index int) *domain.AttachmentContent {
	if !ic.connected() {
		return nil
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"folder": folder, "uid": uid, "index": index})

	_, err := ic.connection.client.Select(folder, true)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder")
		return nil
	}

	raws, err := ic.fetchRaw([]uint32{uid})
	if err != nil {
		baseLogger.WithError(err).Warn("Could not fetch message")
		return nil
	}
	raw := findRaw(raws, uid)
	if raw == nil {
		return nil
	}

	attachment, err := mail.AttachmentAt(raw.Body, index)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not decode message")
		return nil
	}
	return attachment
}

func searchCriteria(query string) *imap.SearchCriteria {
	subject := imap.NewSearchCriteria()
	subject.Header = textproto.MIMEHeader{"Subject": {query}}

	from := imap.NewSearchCriteria()
	from.Header = textproto.MIMEHeader{"From": {query}}

	subjectOrFrom := imap.NewSearchCriteria()
	subjectOrFrom.Or = [][2]*imap.SearchCriteria{{subject, from}}

	body := imap.NewSearchCriteria()
	body.Body = []string{query}

	criteria := imap.NewSearchCriteria()
	criteria.Or = [][2]*imap.SearchCriteria{{subjectOrFrom, body}}
	return criteria
}

// SearchMessages matches query against subject, sender and body. Matches are
// paginated locally.
func (ic *ImapConnection) SearchMessages(folder, query string, page, pageSize int) *domain.MessagePage {
	page, pageSize = normalizePaging(page, pageSize)
	result := emptyPage(page, pageSize)

	query = strings.TrimSpace(querySanitizer.Replace(query))
	if len(query) == 0 || !ic.connected() {
		return result
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"folder": folder, "query": query})

	_, err := ic.connection.client.Select(folder, true)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder")
		return result
	}

	uids, err := ic.connection.client.UidSearch(searchCriteria(query))
	if err != nil {
		baseLogger.WithError(err).Warn("Could not search folder")
		return result
	}
	if len(uids) == 0 {
		return result
	}

	raws, err := ic.fetchRaw(uids)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not fetch matches")
		return result
	}

	matches := ic.previews(raws)
	total := uint32(len(matches))
	result.Total = total
	result.TotalPages = totalPages(total, pageSize)

	from := int64(page-1) * int64(pageSize)
	if from >= int64(len(matches)) {
		return result
	}
	to := from + int64(pageSize)
	if to > int64(len(matches)) {
		to = int64(len(matches))
	}
	result.Messages = matches[from:to]
	return result
}

// FetchRaw returns the unmodified sources of uids, skipping the ones that are
// gone.
func (ic *ImapConnection) FetchRaw(folder string, uids []uint32) [][]byte {
	bodies := [][]byte{}
	if !ic.connected() || len(uids) == 0 {
		return bodies
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"folder": folder})

	_, err := ic.connection.client.Select(folder, true)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not select folder")
		return bodies
	}

	raws, err := ic.fetchRaw(uids)
	if err != nil {
		baseLogger.WithError(err).Warn("Could not fetch messages")
		return bodies
	}

	for _, raw := range raws {
		bodies = append(bodies, raw.Body)
	}
	return bodies
}
