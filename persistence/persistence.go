// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"
	"github.com/CrawX/go-imap-webmail/persistence/migrations"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

var _ domain.Persistence = &Persistence{}

type Persistence struct {
	db *sqlx.DB
	l  *logrus.Logger
}

type dbBranding struct {
	LogoPath        sql.NullString `db:"logo_path"`
	FaviconPath     sql.NullString `db:"favicon_path"`
	PrimaryColor    string         `db:"primary_color"`
	SecondaryColor  string         `db:"secondary_color"`
	BackgroundColor string         `db:"background_color"`
	SidebarColor    string         `db:"sidebar_color"`
	CustomCss       sql.NullString `db:"custom_css"`
}

type dbSignature struct {
	Email         string         `db:"email"`
	SignatureHtml string         `db:"signature_html"`
	DisplayName   sql.NullString `db:"display_name"`
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Info("Connected")

	migrationSource := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.FS,
		Root:       "sql",
	}

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA synchronous=normal`,
		`PRAGMA foreign_keys=ON`,
	} {
		_, err = db.Exec(pragma)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("could not execute %q: %w", pragma, err)
		}
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db: db,
		l:  l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Info("Disconnected")
	return nil
}

// FindOrCreateDomain returns the tenant for a mail domain, creating it with the
// domain name as display name on first login.
func (p *Persistence) FindOrCreateDomain(name string) (*domain.Domain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return nil, errors.New("domain name must not be empty")
	}

	tx, err := p.db.BeginTxx(context.TODO(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	result, err := tx.Exec(
		"INSERT OR IGNORE INTO domains (name, display_name) VALUES (?, ?)",
		name, name,
	)
	if err != nil {
		return nil, txEnd(tx, fmt.Errorf("could not insert domain: %w", err))
	}

	d := &domain.Domain{}
	err = tx.Get(d, "SELECT id, name, display_name FROM domains WHERE name = ?", name)
	if err != nil {
		return nil, txEnd(tx, fmt.Errorf("could not query db: %w", err))
	}

	err = txEnd(tx, nil)
	if err != nil {
		return nil, err
	}

	if affected, _ := result.RowsAffected(); affected == 1 {
		p.l.WithFields(logrus.Fields{"Name": name, "Id": d.Id}).Info("Created domain")
	}

	return d, nil
}

// DomainForHost finds the tenant whose name is a dot-separated suffix of the
// request host, e.g. webmail.example.com belongs to example.com. The longest
// matching name wins. No match is not an error.
func (p *Persistence) DomainForHost(host string) (*domain.Domain, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	d := &domain.Domain{}
	err := p.db.Get(
		d,
		`SELECT id, name, display_name FROM domains
		WHERE ? LIKE '%.' || name
		ORDER BY length(name) DESC LIMIT 1`,
		host,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	return d, nil
}

// Branding returns the stored branding or the default palette when the domain
// never customized it.
func (p *Persistence) Branding(domainId int64) (*domain.Branding, error) {
	b := dbBranding{}
	err := p.db.Get(
		&b,
		`SELECT logo_path, favicon_path, primary_color, secondary_color, background_color, sidebar_color, custom_css
		FROM domain_branding WHERE domain_id = ?`,
		domainId,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultBranding(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	return &domain.Branding{
		Logo:    nullable(b.LogoPath),
		Favicon: nullable(b.FaviconPath),
		Colors: domain.BrandingColors{
			Primary:    b.PrimaryColor,
			Secondary:  b.SecondaryColor,
			Background: b.BackgroundColor,
			Sidebar:    b.SidebarColor,
		},
		CustomCss: nullable(b.CustomCss),
	}, nil
}

// SaveBranding replaces the branding of a domain. Empty colors fall back to
// the default palette.
func (p *Persistence) SaveBranding(domainId int64, branding *domain.Branding) error {
	defaults := domain.DefaultBranding().Colors
	colors := branding.Colors
	for _, c := range []struct {
		value    *string
		fallback string
	}{
		{&colors.Primary, defaults.Primary},
		{&colors.Secondary, defaults.Secondary},
		{&colors.Background, defaults.Background},
		{&colors.Sidebar, defaults.Sidebar},
	} {
		if len(*c.value) == 0 {
			*c.value = c.fallback
		}
	}

	_, err := p.db.Exec(
		`INSERT INTO domain_branding
			(domain_id, logo_path, favicon_path, primary_color, secondary_color, background_color, sidebar_color, custom_css, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(domain_id) DO UPDATE SET
			logo_path = excluded.logo_path,
			favicon_path = excluded.favicon_path,
			primary_color = excluded.primary_color,
			secondary_color = excluded.secondary_color,
			background_color = excluded.background_color,
			sidebar_color = excluded.sidebar_color,
			custom_css = excluded.custom_css,
			updated_at = excluded.updated_at`,
		domainId,
		branding.Logo,
		branding.Favicon,
		colors.Primary,
		colors.Secondary,
		colors.Background,
		colors.Sidebar,
		branding.CustomCss,
	)
	if err != nil {
		return fmt.Errorf("could not save branding: %w", err)
	}

	p.l.WithField("DomainId", domainId).Info("Persisted branding")
	return nil
}

// Signature returns nil without error when the user never saved one.
func (p *Persistence) Signature(email string) (*domain.Signature, error) {
	s := dbSignature{}
	err := p.db.Get(
		&s,
		"SELECT email, signature_html, display_name FROM user_signatures WHERE email = ?",
		strings.ToLower(email),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	return &domain.Signature{
		Email:         s.Email,
		SignatureHtml: s.SignatureHtml,
		DisplayName:   s.DisplayName.String,
	}, nil
}

func (p *Persistence) SaveSignature(signature *domain.Signature) error {
	var displayName sql.NullString
	if name := strings.TrimSpace(signature.DisplayName); len(name) > 0 {
		displayName = sql.NullString{String: name, Valid: true}
	}

	_, err := p.db.Exec(
		`INSERT INTO user_signatures (email, signature_html, display_name, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(email) DO UPDATE SET
			signature_html = excluded.signature_html,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at`,
		strings.ToLower(signature.Email),
		signature.SignatureHtml,
		displayName,
	)
	if err != nil {
		return fmt.Errorf("could not save signature: %w", err)
	}

	p.l.WithField("Email", signature.Email).Info("Persisted signature")
	return nil
}

// DisplayName is the sender name used for outgoing mail, empty when unknown.
func (p *Persistence) DisplayName(email string) string {
	s, err := p.Signature(email)
	if err != nil {
		p.l.WithError(err).WithField("Email", email).Warn("Could not look up display name")
		return ""
	}
	if s == nil {
		return ""
	}
	return s.DisplayName
}

// RevokeSession remembers a logged out session id until its token would have
// expired on its own.
func (p *Persistence) RevokeSession(id string, expiresAt time.Time) error {
	_, err := p.db.Exec(
		"INSERT INTO revoked_sessions (id, expires_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING",
		id,
		expiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("could not revoke session: %w", err)
	}
	return nil
}

func (p *Persistence) SessionRevoked(id string) (bool, error) {
	var count int
	err := p.db.Get(&count, "SELECT COUNT(*) FROM revoked_sessions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("could not query db: %w", err)
	}
	return count > 0, nil
}

// PurgeRevokedSessions forgets revocations whose tokens expired before now.
func (p *Persistence) PurgeRevokedSessions(now time.Time) (int64, error) {
	result, err := p.db.Exec("DELETE FROM revoked_sessions WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("could not purge revoked sessions: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not count purged sessions: %w", err)
	}
	if purged > 0 {
		p.l.WithField("Count", purged).Debug("Purged revoked sessions")
	}
	return purged, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("could not commit tx: %w", err)
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}
