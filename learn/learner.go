// SPDX-License-Identifier: GPL-3.0-or-later
package learn

import (
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"
)

var _ domain.ConcurrentSpamLearner = &GoRoutineSpamLearner{}

// GoRoutineSpamLearner trains up to concurrency messages at once and retries
// every failed message once.
type GoRoutineSpamLearner struct {
	domain.SpamLearner
}

func (grsl *GoRoutineSpamLearner) LearnAll(learnType domain.LearnType, mails [][]byte, concurrency int) []error {
	if concurrency < 1 {
		concurrency = 1
	}

	semaphore := make(chan bool, concurrency)
	results := make([]error, len(mails))
	for i := 0; i < len(mails); i++ {
		semaphore <- true
		go func(index int) {
			results[index] = grsl.Learn(learnType, mails[index])
			if results[index] != nil {
				results[index] = grsl.Learn(learnType, mails[index])
			}
			<-semaphore
		}(i)
	}

	for i := 0; i < concurrency; i++ {
		semaphore <- true
	}

	failed := 0
	for _, err := range results {
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		log.Logger(log.LOG_LEARN).WithField("failed", failed).Warnf("Could not learn %d of %d mails as %s", failed, len(mails), learnType)
	}

	return results
}
