// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"mime/multipart"
	stdmail "net/mail"
	"strings"

	"github.com/emersion/go-message/charset"
)

var wordDecoder = &mime.WordDecoder{
	CharsetReader: charset.Reader,
}

// DecodeHeader decodes RFC 2047 encoded-words. Broken encodings fall back to
// the undecoded text rather than failing.
func DecodeHeader(value string) string {
	value = unfold(value)
	if len(value) == 0 {
		return ""
	}

	decoded, err := wordDecoder.DecodeHeader(value)
	if err != nil {
		return decodeWordByWord(value)
	}

	return decoded
}

// decodeWordByWord keeps every encoded-word that decodes and leaves the broken
// ones untouched.
func decodeWordByWord(value string) string {
	words := strings.Split(value, " ")
	for i, w := range words {
		if !strings.HasPrefix(w, "=?") || !strings.HasSuffix(w, "?=") {
			continue
		}
		decoded, err := wordDecoder.Decode(w)
		if err == nil {
			words[i] = decoded
		}
	}
	return strings.Join(words, " ")
}

func unfold(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "")
	value = strings.ReplaceAll(value, "\n", "")
	return strings.TrimSpace(value)
}

func UnwrapSpamassassinReport(rawMail []byte) ([]byte, error) {
	msg, err := stdmail.ReadMessage(bytes.NewReader(rawMail))
	if err != nil {
		return nil, fmt.Errorf("could not parse mail: %w", err)
	}

	contentType := msg.Header.Get("Content-Type")
	if len(contentType) == 0 {
		return rawMail, nil
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return rawMail, nil
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		return rawMail, nil
	}

	saHeaders := 0
	for key := range msg.Header {
		if strings.Contains(key, "X-Spam-") {
			saHeaders++
		}
	}

	if saHeaders < 2 {
		return rawMail, nil
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return rawMail, nil
		}
		if err != nil {
			return nil, fmt.Errorf("unexpected error while unwrapping: %w", err)
		}

		if strings.Contains(p.Header.Get("Content-Type"), "x-spam-type=original") {
			unwrapped, err := ioutil.ReadAll(p)
			if err != nil {
				return nil, fmt.Errorf("unexpected error while reading wrapped body: %w", err)
			}

			return unwrapped, nil
		}
	}
}

func ShortSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) > 30 {
		subject = string(runes[:30]) + "..."
	}
	return subject
}
