// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/persistence.go -package=mocks . Persistence,AdminDirectory
import (
	"context"
	"time"
)

type Domain struct {
	Id          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	DisplayName string `json:"display_name" db:"display_name"`
}

type BrandingColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Sidebar    string `json:"sidebar"`
}

type Branding struct {
	Logo      *string        `json:"logo"`
	Favicon   *string        `json:"favicon"`
	Colors    BrandingColors `json:"colors"`
	CustomCss *string        `json:"custom_css"`
}

func DefaultBranding() *Branding {
	return &Branding{
		Colors: BrandingColors{
			Primary:    "#3B82F6",
			Secondary:  "#1E40AF",
			Background: "#F9FAFB",
			Sidebar:    "#FFFFFF",
		},
	}
}

type Signature struct {
	Email         string `json:"email"`
	SignatureHtml string `json:"signature_html"`
	DisplayName   string `json:"display_name"`
}

type Persistence interface {
	Close() error

	FindOrCreateDomain(name string) (*Domain, error)
	DomainForHost(host string) (*Domain, error)
	Branding(domainId int64) (*Branding, error)
	SaveBranding(domainId int64, branding *Branding) error

	Signature(email string) (*Signature, error)
	SaveSignature(signature *Signature) error
	DisplayName(email string) string

	RevokeSession(id string, expiresAt time.Time) error
	SessionRevoked(id string) (bool, error)
	PurgeRevokedSessions(now time.Time) (int64, error)
}

// AdminDirectory is the external provisioning system deciding who administers
// a mail domain. Lookup failures count as "not an admin".
type AdminDirectory interface {
	IsDomainAdmin(ctx context.Context, email, domainName string) bool
}
