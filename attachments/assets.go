// SPDX-License-Identifier: GPL-3.0-or-later
package attachments

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/CrawX/go-imap-webmail/log"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AssetKind string

const (
	AssetLogo    AssetKind = "logo"
	AssetFavicon AssetKind = "favicon"

	assetPolicy = "default-src 'none'; sandbox"
)

var (
	ErrUnknownAsset = errors.New("unknown branding asset")
	ErrInvalidPath  = errors.New("path is outside the asset directories")
)

type assetRule struct {
	dir     string
	maxSize int64
	// types maps every accepted sniffed mime type to the stored extension.
	types map[string]string
}

var assetRules = map[AssetKind]assetRule{
	AssetLogo: {
		dir:     "logos",
		maxSize: 2 * 1024 * 1024,
		types:   map[string]string{"image/png": ".png", "image/jpeg": ".jpg", "image/webp": ".webp"},
	},
	AssetFavicon: {
		dir:     "favicons",
		maxSize: 512 * 1024,
		types:   map[string]string{"image/png": ".png", "image/x-icon": ".ico"},
	},
}

// AssetStore keeps the branding images every visitor of a domain sees. Stored
// names are slash separated and relative to the store root.
type AssetStore struct {
	root string
	l    *logrus.Logger
}

func NewAssetStore(root string) (*AssetStore, error) {
	for _, rule := range assetRules {
		err := os.MkdirAll(filepath.Join(root, rule.dir), 0755)
		if err != nil {
			return nil, fmt.Errorf("could not create asset directory: %w", err)
		}
	}

	return &AssetStore{
		root: root,
		l:    log.Logger(log.LOG_ATTACHMENTS),
	}, nil
}

func assetPrefix(domainName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return '_'
	}, strings.ToLower(domainName))
}

// Save stores one image of kind for domainName. The type is taken from the
// content only, whatever the file was called.
func (a *AssetStore) Save(domainName string, kind AssetKind, r io.Reader) (string, error) {
	rule, ok := assetRules[kind]
	if !ok {
		return "", ErrUnknownAsset
	}

	content, err := ioutil.ReadAll(io.LimitReader(r, rule.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("could not read asset: %w", err)
	}
	if int64(len(content)) > rule.maxSize {
		return "", ErrTooLarge
	}

	mimeType := baseType(http.DetectContentType(content[:min(len(content), sniffLength)]))
	ext, ok := rule.types[mimeType]
	if !ok {
		a.l.WithFields(logrus.Fields{"Kind": kind, "Mime": mimeType}).Warn("Refused branding asset")
		return "", ErrForbiddenType
	}

	name := path.Join(rule.dir, assetPrefix(domainName)+"_"+uuid.NewString()+ext)
	err = ioutil.WriteFile(filepath.Join(a.root, filepath.FromSlash(name)), content, 0644)
	if err != nil {
		return "", fmt.Errorf("could not write asset: %w", err)
	}

	a.l.WithFields(logrus.Fields{"Name": name, "Size": len(content)}).Debug("Stored branding asset")
	return name, nil
}

// resolve maps a stored name onto the file system. Only plain files directly
// inside one of the asset directories resolve.
func (a *AssetStore) resolve(name string) (string, error) {
	dir, file := path.Split(path.Clean("/" + name))
	if len(file) == 0 {
		return "", ErrInvalidPath
	}

	for _, rule := range assetRules {
		if dir == "/"+rule.dir+"/" {
			return filepath.Join(a.root, rule.dir, file), nil
		}
	}
	return "", ErrInvalidPath
}

// Remove deletes a stored asset. Deleting an asset that is already gone is
// not an error.
func (a *AssetStore) Remove(name string) error {
	full, err := a.resolve(name)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove asset: %w", err)
	}
	return nil
}

// Handler serves stored assets by name, relative to the request path. Mount it
// behind http.StripPrefix.
func (a *AssetStore) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		full, err := a.resolve(r.URL.Path)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", assetPolicy)
		http.ServeFile(w, r, full)
	})
}
