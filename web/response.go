// SPDX-License-Identifier: GPL-3.0-or-later
package web

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/CrawX/go-imap-webmail/webmail"

	"github.com/sirupsen/logrus"
)

const (
	maxJsonBody = 1 << 20

	downloadPolicy = "default-src 'none'; img-src data:; style-src 'unsafe-inline'; sandbox"
)

var inlineTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

var statusByKind = []struct {
	kind   error
	status int
}{
	{webmail.ErrInvalidInput, http.StatusUnprocessableEntity},
	{webmail.ErrUnauthorized, http.StatusUnauthorized},
	{webmail.ErrForbidden, http.StatusForbidden},
	{webmail.ErrNotFound, http.StatusNotFound},
	{webmail.ErrRateLimited, http.StatusTooManyRequests},
	{webmail.ErrUnavailable, http.StatusServiceUnavailable},
	{webmail.ErrFailed, http.StatusUnprocessableEntity},
	{webmail.ErrInternal, http.StatusInternalServerError},
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data interface{}) {
	writeJson(w, http.StatusOK, envelope{Success: true, Data: data})
}

func okMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJson(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func jsonError(w http.ResponseWriter, status int, message string) {
	writeJson(w, status, envelope{Success: false, Message: message})
}

// respondError turns a webmail failure into its status code. Anything else is
// an internal error and its text stays in the log.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var failure *webmail.Failure
	if !errors.As(err, &failure) {
		s.l.WithError(err).WithFields(logrus.Fields{"path": r.URL.Path}).Error("Unhandled error")
		jsonError(w, http.StatusInternalServerError, "Erro interno.")
		return
	}

	status := http.StatusInternalServerError
	for _, k := range statusByKind {
		if errors.Is(failure, k.kind) {
			status = k.status
			break
		}
	}
	if failure.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(failure.RetryAfter.Seconds()))))
	}

	jsonError(w, status, failure.Message)
}

// decode reads a JSON body into v. Malformed and oversized bodies are refused.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJsonBody)).Decode(v)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "Requisição inválida.")
		return false
	}
	return true
}

// downloadName keeps letters, digits and a few separators so the name is safe
// inside a quoted header value.
func downloadName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == ' ', r == '-':
			return r
		}
		return '_'
	}, name)
	if len(strings.Trim(cleaned, "._ ")) == 0 {
		return "attachment"
	}
	return cleaned
}

func disposition(mimeType string) string {
	if inlineTypes[strings.ToLower(mimeType)] {
		return "inline"
	}
	return "attachment"
}
