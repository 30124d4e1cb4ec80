// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CrawX/go-imap-webmail/attachments"
	"github.com/CrawX/go-imap-webmail/config"
	"github.com/CrawX/go-imap-webmail/directory"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/imapconnection"
	"github.com/CrawX/go-imap-webmail/learn"
	"github.com/CrawX/go-imap-webmail/learn/rspamd"
	"github.com/CrawX/go-imap-webmail/learn/spamassassin"
	"github.com/CrawX/go-imap-webmail/log"
	"github.com/CrawX/go-imap-webmail/metrics"
	"github.com/CrawX/go-imap-webmail/persistence"
	"github.com/CrawX/go-imap-webmail/ratelimit"
	"github.com/CrawX/go-imap-webmail/session"
	"github.com/CrawX/go-imap-webmail/smtpsender"
	"github.com/CrawX/go-imap-webmail/web"
	"github.com/CrawX/go-imap-webmail/webmail"

	"github.com/sirupsen/logrus"
)

const housekeepingInterval = time.Hour

func main() {
	configFile := flag.String("config", "config.toml", "path to the TOML or YAML configuration")
	flag.Parse()

	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig(*configFile)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	p, err := persistence.NewPersistence(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer p.Close()

	uploads, err := attachments.NewStore(conf.TempDir)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not prepare attachment storage")
	}

	assets, err := attachments.NewAssetStore(conf.AssetDir)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not prepare branding storage")
	}

	var admins domain.AdminDirectory = directory.Nobody{}
	if len(conf.ModoboaDsn) > 0 {
		modoboa, err := directory.NewModoboa(context.Background(), conf.ModoboaDsn)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not connect to modoboa database")
		}
		defer modoboa.Close()
		admins = modoboa
	} else {
		logger.Info("No modoboa database configured, nobody may change branding")
	}

	var learner domain.ConcurrentSpamLearner
	switch {
	case len(conf.SpamassassinHost) > 0:
		sa, err := spamassassin.NewSpamassassin(conf.SpamassassinHost)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not start spamassassin connector")
		}
		learner = &learn.GoRoutineSpamLearner{SpamLearner: sa}
	case len(conf.RspamdController) > 0:
		rs, err := rspamd.NewRspamd(conf.RspamdController, conf.RspamdPassword)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not start rspamd connector")
		}
		learner = &learn.GoRoutineSpamLearner{SpamLearner: rs}
	default:
		logger.Info("No spam classifier configured, reports only move mails")
	}

	keyring := session.NewKeyring(conf.SessionSecret)
	issuer := session.NewIssuer(conf.SessionSecret, conf.SessionLifetime)
	limiter := ratelimit.NewStore()
	counters := metrics.NewWebmailMetrics()

	imapSettings := imapconnection.Settings{
		Host:         conf.Imap.Host,
		Port:         conf.Imap.Port,
		Security:     conf.Imap.Security,
		ValidateCert: conf.Imap.ValidateCert,
		DialTimeout:  conf.Imap.DialTimeout,
	}

	sender := smtpsender.NewSmtpSender(smtpsender.Settings{
		Host:           conf.Smtp.Host,
		Port:           conf.Smtp.Port,
		Security:       conf.Smtp.Security,
		VerifyPeerName: conf.Smtp.ValidateCert,
		DialTimeout:    conf.Smtp.DialTimeout,
		SendLimit:      conf.Smtp.SendLimit,
		SendWindow:     conf.Smtp.SendWindow,
	}, keyring, limiter, p)

	wm, err := webmail.NewWebmail(webmail.Collaborators{
		Persistence:   p,
		Directory:     admins,
		Authenticator: imapconnection.NewAuthenticator(imapSettings),
		Sealer:        keyring,
		Limiter:       limiter,
		Sender:        sender,
		Learner:       learner,
		Uploads:       uploads,
		Assets:        assets,
		Mailbox: func(creds *domain.Credentials) domain.Mailbox {
			return imapconnection.NewImapConnection(imapSettings, creds, keyring, counters)
		},
		Counters: counters,
	}, webmail.LearnConcurrency(conf.LearnConcurrency))
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start webmail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go housekeeping(ctx, p, uploads, limiter, logger)

	server := &http.Server{
		Addr:              conf.Listen,
		Handler:           web.NewServer(wm, issuer, counters.Handler(), assets.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithField("error", err).Warn("Could not shut down http server cleanly")
		}
	}()

	logger.WithFields(logrus.Fields{
		"listen":     conf.Listen,
		"imap":       conf.Imap.Host,
		"smtp":       conf.Smtp.Host,
		"classifier": learner != nil,
	}).Info("Serving webmail")
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithField("error", err).Fatal("Http server failed")
	}
}

// housekeeping drops stale uploads, expired rate limit windows and outdated
// session revocations once per interval until ctx ends.
func housekeeping(ctx context.Context, p *persistence.Persistence, uploads *attachments.Store, limiter *ratelimit.Store, logger *logrus.Logger) {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := uploads.CleanupOlderThan(attachments.StaleAfter)
			if err != nil {
				logger.WithField("error", err).Warn("Could not clean up uploads")
			}
			purged, err := p.PurgeRevokedSessions(time.Now())
			if err != nil {
				logger.WithField("error", err).Warn("Could not purge revoked sessions")
			}
			logger.WithFields(logrus.Fields{
				"uploads":    removed,
				"ratelimits": limiter.Sweep(),
				"revoked":    purged,
			}).Debug("Housekeeping done")
		}
	}
}
