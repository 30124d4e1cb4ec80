// SPDX-License-Identifier: GPL-3.0-or-later
package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	lookupTimeout = 5 * time.Second

	superAdminQuery = `SELECT EXISTS (
	SELECT 1 FROM core_user
	WHERE username = $1 AND is_superuser = true
)`

	domainAdminQuery = `SELECT EXISTS (
	SELECT 1 FROM core_user u
	JOIN core_user_groups ug ON u.id = ug.user_id
	JOIN auth_group g ON ug.group_id = g.id
	JOIN core_objectaccess oa ON u.id = oa.user_id
	JOIN django_content_type ct ON oa.content_type_id = ct.id
	JOIN admin_domain d ON oa.object_id = d.id
	WHERE g.name = 'DomainAdmins'
		AND ct.app_label = 'admin'
		AND ct.model = 'domain'
		AND u.username = $1
		AND d.name = $2
)`
)

// querier is the part of a pgx pool the lookups need.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ domain.AdminDirectory = &Modoboa{}

// Modoboa answers admin questions from the database of a Modoboa installation.
type Modoboa struct {
	db    querier
	close func()
	l     *logrus.Logger
}

func NewModoboa(ctx context.Context, dsn string) (*Modoboa, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not create modoboa pool: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not reach modoboa database: %w", err)
	}

	l := log.Logger(log.LOG_DIRECTORY)
	l.Info("Connected to modoboa database")

	return &Modoboa{
		db:    pool,
		close: pool.Close,
		l:     l,
	}, nil
}

func (m *Modoboa) Close() {
	if m.close != nil {
		m.close()
	}
}

// IsDomainAdmin is true for superusers and for DomainAdmins holding object
// access to the domain. Lookup errors deny.
func (m *Modoboa) IsDomainAdmin(ctx context.Context, email, domainName string) bool {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	domainName = strings.ToLower(strings.TrimSpace(domainName))
	baseLogger := m.l.WithFields(logrus.Fields{"email": email, "domain": domainName})

	superAdmin, err := m.exists(ctx, superAdminQuery, email)
	if err != nil {
		baseLogger.WithError(err).Error("Could not check for superuser")
		return false
	}
	if superAdmin {
		return true
	}

	domainAdmin, err := m.exists(ctx, domainAdminQuery, email, domainName)
	if err != nil {
		baseLogger.WithError(err).Error("Could not check domain access")
		return false
	}

	return domainAdmin
}

func (m *Modoboa) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	err := m.db.QueryRow(ctx, query, args...).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("could not query modoboa: %w", err)
	}
	return found, nil
}

// Nobody is the directory used when no Modoboa database is configured.
type Nobody struct{}

func (Nobody) IsDomainAdmin(context.Context, string, string) bool {
	return false
}
