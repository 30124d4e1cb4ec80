// SPDX-License-Identifier: GPL-3.0-or-later
package metrics

import (
	"net/http"

	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "webmail"

const (
	ResultSuccess     = "success"
	ResultFailed      = "failed"
	ResultRateLimited = "rate_limited"
)

var _ domain.BatchObserver = &WebmailMetrics{}

// WebmailMetrics counts what the mail transports do. It doubles as the batch
// observer, so per-item failures are logged here and only aggregated upwards.
type WebmailMetrics struct {
	registry *prometheus.Registry

	batchItems   *prometheus.CounterVec
	batches      *prometheus.CounterVec
	logins       *prometheus.CounterVec
	sent         *prometheus.CounterVec
	spamReported *prometheus.CounterVec

	l *logrus.Logger
}

func NewWebmailMetrics() *WebmailMetrics {
	m := &WebmailMetrics{
		registry: prometheus.NewRegistry(),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "items_total",
			Help:      "Number of messages handled by bulk operations",
		}, []string{"op", "outcome"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "operations_total",
			Help:      "Number of bulk operations",
		}, []string{"op"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Number of login attempts",
		}, []string{"result"}),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "smtp",
			Name:      "sent_total",
			Help:      "Number of send attempts",
		}, []string{"result"}),
		spamReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "learn",
			Name:      "reported_total",
			Help:      "Number of messages reported as spam or ham",
		}, []string{"class"}),
		l: log.Logger(log.LOG_WEBMAIL),
	}

	m.registry.MustRegister(m.batchItems, m.batches, m.logins, m.sent, m.spamReported)
	return m
}

func (m *WebmailMetrics) ItemFailed(op string, uid uint32, err error) {
	m.l.WithFields(logrus.Fields{"op": op, "uid": uid}).WithError(err).Warn("Bulk operation failed for message")
	m.batchItems.WithLabelValues(op, ResultFailed).Inc()
}

func (m *WebmailMetrics) BatchCompleted(op string, result domain.BatchResult) {
	m.batches.WithLabelValues(op).Inc()
	m.batchItems.WithLabelValues(op, ResultSuccess).Add(float64(result.Succeeded))
	m.l.WithFields(logrus.Fields{"op": op, "succeeded": result.Succeeded, "total": result.Total}).Debug("Bulk operation completed")
}

func (m *WebmailMetrics) LoginAttempt(result string) {
	m.logins.WithLabelValues(result).Inc()
}

func (m *WebmailMetrics) MailSent(result string) {
	m.sent.WithLabelValues(result).Inc()
}

func (m *WebmailMetrics) Reported(learnType domain.LearnType, count int) {
	m.spamReported.WithLabelValues(string(learnType)).Add(float64(count))
}

func (m *WebmailMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
