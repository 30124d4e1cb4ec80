// SPDX-License-Identifier: GPL-3.0-or-later
package webmail

import (
	"github.com/CrawX/go-imap-webmail/catalog"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/session"

	"github.com/sirupsen/logrus"
)

func (w *Webmail) ReportSpam(s *session.Session, r *BatchRequest) (domain.BatchResult, error) {
	return w.report(s, domain.LearnSpam, r)
}

func (w *Webmail) ReportHam(s *session.Session, r *BatchRequest) (domain.BatchResult, error) {
	return w.report(s, domain.LearnHam, r)
}

// reportTarget is where reported messages end up: the junk folder for spam,
// creating it if the server has none, and INBOX for ham.
func reportTarget(mb domain.Mailbox, learnType domain.LearnType) string {
	if learnType == domain.LearnHam {
		return catalog.Inbox
	}

	junk := mb.ResolveFolder(catalog.JunkCandidates)
	if len(junk) == 0 && mb.CreateFolder(catalog.Junk) {
		junk = catalog.Junk
	}
	return junk
}

// report trains the classifier with the selected messages, when one is
// configured, and moves them. Training failures never block the move.
func (w *Webmail) report(s *session.Session, learnType domain.LearnType, r *BatchRequest) (domain.BatchResult, error) {
	if err := r.validate(false); err != nil {
		return domain.BatchResult{}, err
	}

	baseLogger := w.logger(s).WithFields(logrus.Fields{"folder": r.Folder, "type": learnType, "count": len(r.Uids)})

	var result domain.BatchResult
	err := w.withMailbox(s, func(mb domain.Mailbox) error {
		if w.learner != nil {
			w.learn(baseLogger, learnType, mb.FetchRaw(r.Folder, r.Uids))
		}

		target := reportTarget(mb, learnType)
		if len(target) == 0 {
			baseLogger.Warn("No junk folder available")
			result = domain.BatchResult{Total: len(r.Uids)}
			return nil
		}
		if target == r.Folder {
			result = domain.BatchResult{Succeeded: len(r.Uids), Total: len(r.Uids)}
			return nil
		}

		result = mb.BatchMove(r.Folder, r.Uids, target)
		return nil
	})
	if err != nil {
		return domain.BatchResult{}, err
	}

	baseLogger.WithFields(logrus.Fields{"moved": result.Succeeded}).Info("Reported messages")
	return result, nil
}

func (w *Webmail) learn(baseLogger *logrus.Entry, learnType domain.LearnType, mails [][]byte) {
	if len(mails) == 0 {
		return
	}

	errs := w.learner.LearnAll(learnType, mails, w.configuration.LearnConcurrency)
	learned := 0
	for _, err := range errs {
		if err == nil {
			learned++
		}
	}
	if learned < len(mails) {
		baseLogger.WithFields(logrus.Fields{"learned": learned, "fetched": len(mails)}).Warn("Some messages could not be learned")
	}
	w.counters.Reported(learnType, learned)
}
