// SPDX-License-Identifier: GPL-3.0-or-later
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/CrawX/go-imap-webmail/domain"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrUnsealFailed = errors.New("could not unseal password")

var _ domain.PasswordOpener = &Keyring{}

// Keyring seals IMAP passwords so the session token never carries them in the
// clear. The sealed form is nonce || box.
type Keyring struct {
	key [32]byte
}

func NewKeyring(secret string) *Keyring {
	return &Keyring{
		key: sha256.Sum256([]byte("password-seal:" + secret)),
	}
}

func (k *Keyring) Seal(password string) ([]byte, error) {
	var nonce [nonceSize]byte
	_, err := io.ReadFull(rand.Reader, nonce[:])
	if err != nil {
		return nil, fmt.Errorf("could not generate nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], []byte(password), &nonce, &k.key), nil
}

func (k *Keyring) OpenPassword(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrUnsealFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	password, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &k.key)
	if !ok {
		return "", ErrUnsealFailed
	}

	return string(password), nil
}
