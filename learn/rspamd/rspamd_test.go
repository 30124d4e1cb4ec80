// SPDX-License-Identifier: GPL-3.0-or-later
package rspamd

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controller struct {
	status   int
	paths    []string
	password string
	body     []byte
}

func (c *controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.paths = append(c.paths, r.URL.Path)
	if r.URL.Path == "/ping" {
		w.WriteHeader(http.StatusOK)
		return
	}

	c.password = r.Header.Get("Password")
	c.body, _ = ioutil.ReadAll(r.Body)
	w.WriteHeader(c.status)
}

func newTestRspamd(t *testing.T, status int) (*Rspamd, *controller) {
	c := &controller{status: status}
	server := httptest.NewServer(c)
	t.Cleanup(server.Close)

	rs, err := NewRspamd(server.URL+"/", "controller-password")
	require.NoError(t, err)
	return rs, c
}

const plainMail = "From: a@example.com\r\nSubject: hi\r\n\r\nhello\r\n"

func TestLearn(t *testing.T) {
	rs, c := newTestRspamd(t, http.StatusOK)

	assert.NoError(t, rs.Learn(domain.LearnSpam, []byte(plainMail)))
	assert.NoError(t, rs.Learn(domain.LearnHam, []byte(plainMail)))

	assert.Equal(t, []string{"/ping", "/learnspam", "/learnham"}, c.paths)
	assert.Equal(t, "controller-password", c.password)
	assert.Equal(t, plainMail, string(c.body))
}

func TestLearnAlreadyLearned(t *testing.T) {
	rs, _ := newTestRspamd(t, http.StatusAlreadyReported)
	assert.NoError(t, rs.Learn(domain.LearnSpam, []byte(plainMail)))
}

func TestLearnRejected(t *testing.T) {
	rs, _ := newTestRspamd(t, http.StatusForbidden)
	assert.EqualError(t, rs.Learn(domain.LearnSpam, []byte(plainMail)), "unexpected status 403 from rspamd, expected 200/204/208")

	assert.EqualError(t, rs.Learn(domain.LearnType("virus"), []byte(plainMail)), "unsupported learn type virus")
}

func TestPingFails(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewRspamd(server.URL, "x")
	assert.Error(t, err)
}
