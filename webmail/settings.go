// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/CrawX/go-imap-webmail/attachments"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/mail"
	"github.com/CrawX/go-imap-webmail/session"

	"golang.org/x/net/html"
)

const (
	maxCustomCssLength   = 10000
	maxSignatureLength   = 50000
	maxDisplayNameLength = 100
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var assetMessages = map[attachments.AssetKind]struct {
	tooLarge  string
	wrongType string
}{
	attachments.AssetLogo:    {"O logo não pode exceder 2MB.", "O logo deve ser PNG, JPG ou WebP."},
	attachments.AssetFavicon: {"O favicon não pode exceder 512KB.", "O favicon deve ser ICO ou PNG."},
}

var cssFilters = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)@import[^;]*;?`), ""},
	{regexp.MustCompile(`(?is)@font-face\s*\{[^}]*\}`), ""},
	{regexp.MustCompile(`(?i)url\s*\(\s*['"]?\s*(?:https?:|ftp:|data:|//)[^)]*\)`), "url()"},
	{regexp.MustCompile(`(?i)expression\s*\([^)]*\)`), ""},
	{regexp.MustCompile(`(?i)j\s*a\s*v\s*a\s*s\s*c\s*r\s*i\s*p\s*t\s*:`), ""},
	{regexp.MustCompile(`(?i)behavior\s*:[^;}]*;?`), ""},
	{regexp.MustCompile(`(?i)-moz-binding\s*:[^;}]*;?`), ""},
}

// FilterCss removes everything from admin supplied CSS that loads remote
// resources or runs script.
func FilterCss(css string) string {
	css = html.UnescapeString(css)
	for _, f := range cssFilters {
		css = f.pattern.ReplaceAllString(css, f.replacement)
	}
	return strings.TrimSpace(css)
}

func validateColors(colors domain.BrandingColors) error {
	for _, c := range []struct {
		value   string
		message string
	}{
		{colors.Primary, "A cor primária deve estar no formato hexadecimal (#RRGGBB)."},
		{colors.Secondary, "A cor secundária deve estar no formato hexadecimal (#RRGGBB)."},
		{colors.Background, "A cor de fundo deve estar no formato hexadecimal (#RRGGBB)."},
		{colors.Sidebar, "A cor da barra lateral deve estar no formato hexadecimal (#RRGGBB)."},
	} {
		if len(c.value) > 0 && !hexColor.MatchString(c.value) {
			return fail(ErrInvalidInput, c.message)
		}
	}
	return nil
}

func (w *Webmail) Branding(s *session.Session) (*domain.Branding, error) {
	branding, err := w.persistence.Branding(s.DomainId)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not load branding")
		return nil, fail(ErrInternal, "Erro interno.")
	}
	return branding, nil
}

func forbidden() *Failure {
	return fail(ErrForbidden, "Acesso negado. Apenas administradores do domínio podem acessar esta área.")
}

// SaveBranding replaces the colors and CSS of the session's domain. Only
// domain admins may do so. Empty colors fall back to the defaults. Logo and
// favicon only change through UploadBrandingAsset and RemoveBrandingAsset.
func (w *Webmail) SaveBranding(s *session.Session, branding *domain.Branding) (*domain.Branding, error) {
	if !s.IsAdmin {
		return nil, forbidden()
	}

	if err := validateColors(branding.Colors); err != nil {
		return nil, err
	}

	updated := *branding
	if updated.CustomCss != nil {
		if utf8.RuneCountInString(*updated.CustomCss) > maxCustomCssLength {
			return nil, fail(ErrInvalidInput, "O CSS customizado não pode exceder 10.000 caracteres.")
		}
		filtered := FilterCss(*updated.CustomCss)
		updated.CustomCss = &filtered
		if len(filtered) == 0 {
			updated.CustomCss = nil
		}
	}

	current, err := w.Branding(s)
	if err != nil {
		return nil, err
	}
	updated.Logo = current.Logo
	updated.Favicon = current.Favicon

	err = w.persistence.SaveBranding(s.DomainId, &updated)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not save branding")
		return nil, fail(ErrInternal, "Erro interno.")
	}
	w.logger(s).Info("Branding updated")

	return w.Branding(s)
}

func assetField(b *domain.Branding, kind attachments.AssetKind) **string {
	if kind == attachments.AssetFavicon {
		return &b.Favicon
	}
	return &b.Logo
}

// replaceBrandingAsset points the kind asset of the domain at name, nil
// clearing it. The file it pointed at before is removed once the new branding
// is stored, name is removed when storing fails.
func (w *Webmail) replaceBrandingAsset(s *session.Session, kind attachments.AssetKind, name *string) (*domain.Branding, error) {
	previous, err := w.storeBrandingAsset(s, kind, name)
	if err != nil {
		if name != nil {
			w.removeAsset(s, *name)
		}
		return nil, err
	}
	if previous != nil {
		w.removeAsset(s, *previous)
	}
	w.logger(s).WithField("Kind", kind).Info("Branding asset updated")

	return w.Branding(s)
}

func (w *Webmail) storeBrandingAsset(s *session.Session, kind attachments.AssetKind, name *string) (*string, error) {
	current, err := w.Branding(s)
	if err != nil {
		return nil, err
	}

	updated := *current
	field := assetField(&updated, kind)
	previous := *field
	*field = name

	err = w.persistence.SaveBranding(s.DomainId, &updated)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not save branding")
		return nil, fail(ErrInternal, "Erro interno.")
	}
	return previous, nil
}

func (w *Webmail) removeAsset(s *session.Session, name string) {
	if err := w.assets.Remove(name); err != nil {
		w.logger(s).WithError(err).WithField("Name", name).Warn("Could not remove branding asset")
	}
}

func (w *Webmail) assetAllowed(s *session.Session, kind attachments.AssetKind) error {
	if !s.IsAdmin {
		return forbidden()
	}
	if _, ok := assetMessages[kind]; !ok {
		return fail(ErrInvalidInput, "Tipo de imagem inválido.")
	}
	if w.assets == nil {
		return fail(ErrUnavailable, "O envio de imagens não está disponível.")
	}
	return nil
}

// UploadBrandingAsset stores a new logo or favicon for the session's domain
// and replaces the previous one.
func (w *Webmail) UploadBrandingAsset(s *session.Session, kind attachments.AssetKind, r io.Reader) (*domain.Branding, error) {
	if err := w.assetAllowed(s, kind); err != nil {
		return nil, err
	}

	name, err := w.assets.Save(s.Domain, kind, r)
	switch {
	case errors.Is(err, attachments.ErrTooLarge):
		return nil, fail(ErrInvalidInput, assetMessages[kind].tooLarge)
	case errors.Is(err, attachments.ErrForbiddenType):
		return nil, fail(ErrInvalidInput, assetMessages[kind].wrongType)
	case err != nil:
		w.logger(s).WithError(err).Error("Could not store branding asset")
		return nil, fail(ErrInternal, "Erro interno.")
	}

	return w.replaceBrandingAsset(s, kind, &name)
}

func (w *Webmail) RemoveBrandingAsset(s *session.Session, kind attachments.AssetKind) (*domain.Branding, error) {
	if err := w.assetAllowed(s, kind); err != nil {
		return nil, err
	}
	return w.replaceBrandingAsset(s, kind, nil)
}

// Signature returns the stored signature, or an empty one for users who never
// saved any.
func (w *Webmail) Signature(s *session.Session) (*domain.Signature, error) {
	signature, err := w.persistence.Signature(s.Email)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not load signature")
		return nil, fail(ErrInternal, "Erro interno.")
	}
	if signature == nil {
		return &domain.Signature{Email: s.Email}, nil
	}
	return signature, nil
}

func (w *Webmail) SaveSignature(s *session.Session, signatureHtml, displayName string) (*domain.Signature, error) {
	if utf8.RuneCountInString(signatureHtml) > maxSignatureLength {
		return nil, fail(ErrInvalidInput, "A assinatura não pode exceder 50.000 caracteres.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(displayName)) > maxDisplayNameLength {
		return nil, fail(ErrInvalidInput, "O nome de exibição não pode exceder 100 caracteres.")
	}

	signature := &domain.Signature{
		Email:         s.Email,
		SignatureHtml: mail.SanitizeSignatureHtml(signatureHtml),
		DisplayName:   strings.TrimSpace(displayName),
	}
	err := w.persistence.SaveSignature(signature)
	if err != nil {
		w.logger(s).WithError(err).Error("Could not save signature")
		return nil, fail(ErrInternal, "Erro interno.")
	}

	return signature, nil
}
