// SPDX-License-Identifier: GPL-3.0-or-later

//go:generate mockgen -destination=mocks/spamclassifier.go -package=mocks . SpamLearner,ConcurrentSpamLearner
package domain

type LearnType string

const (
	LearnSpam = LearnType("spam")
	LearnHam  = LearnType("ham")
)

// SpamLearner trains a classifier with a single raw message.
type SpamLearner interface {
	Learn(learnType LearnType, rawMail []byte) error
}

type ConcurrentSpamLearner interface {
	LearnAll(learnType LearnType, mails [][]byte, concurrency int) []error
}
