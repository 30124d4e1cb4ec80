// SPDX-License-Identifier: GPL-3.0-or-later
package attachments

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var icoHeader = []byte("\x00\x00\x01\x00\x01\x00\x10\x10")

func newTestAssetStore(t *testing.T) *AssetStore {
	a, err := NewAssetStore(filepath.Join(t.TempDir(), "public"))
	require.NoError(t, err)
	return a
}

func TestSaveAsset(t *testing.T) {
	a := newTestAssetStore(t)

	name, err := a.Save("Example.com", AssetLogo, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "logos/example.com_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	content, err := os.ReadFile(filepath.Join(a.root, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, content)

	name, err = a.Save("example.com", AssetFavicon, bytes.NewReader(icoHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "favicons/example.com_"), name)
	assert.True(t, strings.HasSuffix(name, ".ico"), name)
}

func TestSaveAssetRefused(t *testing.T) {
	a := newTestAssetStore(t)

	_, err := a.Save("example.com", AssetLogo, strings.NewReader(`<svg onload="alert(1)"></svg>`))
	assert.ErrorIs(t, err, ErrForbiddenType)

	_, err = a.Save("example.com", AssetFavicon, bytes.NewReader(append(append([]byte{}, pngHeader...), make([]byte, 512*1024)...)))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = a.Save("example.com", AssetKind("banner"), bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrUnknownAsset)

	entries, err := os.ReadDir(filepath.Join(a.root, "logos"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveAsset(t *testing.T) {
	a := newTestAssetStore(t)
	name, err := a.Save("example.com", AssetLogo, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.NoError(t, a.Remove(name))
	assert.NoFileExists(t, filepath.Join(a.root, filepath.FromSlash(name)))
	assert.NoError(t, a.Remove(name))

	outside := filepath.Join(filepath.Dir(a.root), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0600))
	for _, name := range []string{"../secret.txt", "logos/../../secret.txt", "logos/", "", "temp/x.png"} {
		assert.ErrorIs(t, a.Remove(name), ErrInvalidPath, name)
	}
	assert.FileExists(t, outside)
}

func TestAssetHandler(t *testing.T) {
	a := newTestAssetStore(t)
	name, err := a.Save("example.com", AssetLogo, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	handler := http.StripPrefix("/storage/", a.Handler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/storage/"+name, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, pngHeader, w.Body.Bytes())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/storage/logos/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/storage/logos/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
