// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/smtp.go -package=mocks . MailSender,RateLimiter
import "time"

type OutgoingAttachment struct {
	Path string
	Name string
	Mime string
}

type OutgoingMessage struct {
	To          []Address
	Cc          []Address
	Bcc         []Address
	Subject     string
	HtmlBody    string
	TextBody    string
	Attachments []OutgoingAttachment
	InReplyTo   string
	References  string
}

type SendResult struct {
	Success    bool
	Error      string
	RetryAfter time.Duration
	RawMessage []byte
}

type MailSender interface {
	Send(creds *Credentials, msg *OutgoingMessage) *SendResult
}

// RateLimiter is a keyed counter store. Allow atomically counts one attempt
// against key and reports whether it stayed within max for the current window.
// Check and Hit split that in two for callers that only count successes.
type RateLimiter interface {
	Allow(key string, max int, window time.Duration) (bool, time.Duration)
	Check(key string, max int, window time.Duration) (bool, time.Duration)
	Hit(key string, window time.Duration)
	Clear(key string)
}
