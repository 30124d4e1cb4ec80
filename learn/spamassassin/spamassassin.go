// SPDX-License-Identifier: GPL-3.0-or-later
package spamassassin

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/mail"

	"github.com/teamwork/spamc"
)

const SpamAssassinTimeout = 20 * time.Second

var _ domain.SpamLearner = &SpamAssassin{}

type SpamAssassin struct {
	client *spamc.Client
}

func NewSpamassassin(host string) (*SpamAssassin, error) {
	client := spamc.New(host, &net.Dialer{
		Timeout: SpamAssassinTimeout,
	})
	err := client.Ping(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("could not ping SpamAssassin: %w", err)
	}

	return &SpamAssassin{client: client}, nil
}

// Learn feeds one message to the bayes database. Reports SpamAssassin wrapped
// around the original are unwrapped first.
func (sa *SpamAssassin) Learn(learnType domain.LearnType, rawMail []byte) error {
	header, err := tellHeader(learnType)
	if err != nil {
		return err
	}

	unwrapped, err := mail.UnwrapSpamassassinReport(rawMail)
	if err != nil {
		return fmt.Errorf("could not unwrap SpamAssassin-style report: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), SpamAssassinTimeout)
	defer cancel()

	_, err = sa.client.Tell(ctx, bytes.NewReader(unwrapped), header)
	if err != nil {
		return fmt.Errorf("could not learn SpamAssassin: %w", err)
	}
	return nil
}

func tellHeader(learnType domain.LearnType) (spamc.Header, error) {
	header := spamc.Header{}.Set("Set", "local")
	switch learnType {
	case domain.LearnSpam:
		return header.Set("Message-class", "spam"), nil
	case domain.LearnHam:
		return header.Set("Message-class", "ham"), nil
	}

	return header, fmt.Errorf("unsupported learn type %v", learnType)
}
