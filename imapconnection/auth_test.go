// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/CrawX/go-imap-webmail/domain"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockimapClient(ctrl)
	client.EXPECT().Logout().Return(nil)

	d := &dialRecorder{link: &link{client: client}}
	a := NewAuthenticator(Settings{Host: "imap.example.com", Port: 993, Security: SecurityTLS})
	a.dial = d.dial

	assert.NoError(t, a.Authenticate("me@example.com", "secret"))
	assert.Equal(t, "secret", d.password)
}

func TestAuthenticate_Rejected(t *testing.T) {
	d := &dialRecorder{err: fmt.Errorf("could not login to imap: %w (%s)", domain.ErrAuthFailed, "NO [AUTHENTICATIONFAILED]")}
	a := NewAuthenticator(Settings{Host: "imap.example.com", Port: 993})
	a.dial = d.dial

	err := a.Authenticate("me@example.com", "wrong")
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestAuthenticate_Unreachable(t *testing.T) {
	d := &dialRecorder{err: errors.New("could not dial to imap: connection refused")}
	a := NewAuthenticator(Settings{Host: "imap.example.com", Port: 993})
	a.dial = d.dial

	err := a.Authenticate("me@example.com", "secret")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrAuthFailed))
}
