// SPDX-License-Identifier: GPL-3.0-or-later
package web

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/CrawX/go-imap-webmail/log"
	"github.com/CrawX/go-imap-webmail/session"
	"github.com/CrawX/go-imap-webmail/webmail"

	"github.com/sirupsen/logrus"
)

const sessionCookieName = "webmail_session"

type Server struct {
	mux     *http.ServeMux
	webmail *webmail.Webmail
	issuer  *session.Issuer
	metrics http.Handler
	assets  http.Handler

	l *logrus.Logger
}

// NewServer wires the JSON API. metrics and assets may be nil, then /metrics
// and /storage/ are not served. assets receives paths below /storage/.
func NewServer(w *webmail.Webmail, issuer *session.Issuer, metrics, assets http.Handler) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		webmail: w,
		issuer:  issuer,
		metrics: metrics,
		assets:  assets,
		l:       log.Logger(log.LOG_WEB),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.Handle("POST /api/auth/logout", s.requireAuth(s.handleLogout))
	s.mux.Handle("GET /api/auth/me", s.requireAuth(s.handleMe))
	s.mux.HandleFunc("GET /api/branding", s.handleLoginBranding)

	s.mux.Handle("GET /api/folders", s.requireAuth(s.handleFolders))
	s.mux.Handle("POST /api/folders", s.requireAuth(s.handleCreateFolder))
	s.mux.Handle("PUT /api/folders", s.requireAuth(s.handleRenameFolder))
	s.mux.Handle("DELETE /api/folders", s.requireAuth(s.handleDeleteFolder))

	s.mux.Handle("GET /api/messages", s.requireAuth(s.handleMessages))
	s.mux.Handle("GET /api/messages/search", s.requireAuth(s.handleSearch))
	s.mux.Handle("GET /api/messages/{uid}", s.requireAuth(s.handleMessage))
	s.mux.Handle("GET /api/messages/{uid}/attachments/{index}", s.requireAuth(s.handleAttachment))
	s.mux.Handle("POST /api/messages/{uid}/seen", s.requireAuth(s.handleToggleSeen))
	s.mux.Handle("POST /api/messages/{uid}/move", s.requireAuth(s.handleMove))
	s.mux.Handle("DELETE /api/messages/{uid}", s.requireAuth(s.handleDelete))

	s.mux.Handle("POST /api/messages/batch/seen", s.requireAuth(s.handleBatchSeen))
	s.mux.Handle("POST /api/messages/batch/move", s.requireAuth(s.handleBatchMove))
	s.mux.Handle("POST /api/messages/batch/delete", s.requireAuth(s.handleBatchDelete))
	s.mux.Handle("POST /api/messages/batch/spam", s.requireAuth(s.handleReportSpam))
	s.mux.Handle("POST /api/messages/batch/ham", s.requireAuth(s.handleReportHam))

	s.mux.Handle("GET /api/contacts", s.requireAuth(s.handleContacts))
	s.mux.Handle("POST /api/compose/send", s.requireAuth(s.handleSend))
	s.mux.Handle("POST /api/compose/draft", s.requireAuth(s.handleSaveDraft))
	s.mux.Handle("POST /api/attachments", s.requireAuth(s.handleUpload))
	s.mux.Handle("DELETE /api/attachments/{id}", s.requireAuth(s.handleRemoveAttachment))

	s.mux.Handle("GET /api/settings/branding", s.requireAuth(s.requireAdmin(s.handleBranding)))
	s.mux.Handle("PUT /api/settings/branding", s.requireAuth(s.requireAdmin(s.handleSaveBranding)))
	s.mux.Handle("POST /api/settings/branding/{kind}", s.requireAuth(s.requireAdmin(s.handleUploadBrandingAsset)))
	s.mux.Handle("DELETE /api/settings/branding/{kind}", s.requireAuth(s.requireAdmin(s.handleRemoveBrandingAsset)))
	s.mux.Handle("GET /api/settings/signature", s.requireAuth(s.handleSignature))
	s.mux.Handle("PUT /api/settings/signature", s.requireAuth(s.handleSaveSignature))

	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}
	if s.assets != nil {
		s.mux.Handle("GET /storage/", http.StripPrefix("/storage/", s.assets))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(recorder, r)
	s.l.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   recorder.status,
		"duration": time.Since(start),
	}).Debug("Handled request")
}

type authedHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) requireAuth(next authedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if len(token) == 0 {
			jsonError(w, http.StatusUnauthorized, "Sessão expirada.")
			return
		}

		sess, err := s.issuer.Parse(token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidSession) {
				s.l.WithError(err).Warn("Could not parse session")
			}
			s.clearCookie(w, r)
			jsonError(w, http.StatusUnauthorized, "Sessão expirada.")
			return
		}

		err = s.webmail.Authorize(sess)
		if err != nil {
			if errors.Is(err, webmail.ErrUnauthorized) {
				s.clearCookie(w, r)
			}
			s.respondError(w, r, err)
			return
		}

		next(w, r, sess)
	})
}

// requireAdmin refreshes a stale admin decision, reissuing the session cookie
// when it changed, and refuses everyone who is not a domain admin.
func (s *Server) requireAdmin(next authedHandler) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
		if s.webmail.RefreshAdmin(r.Context(), sess) {
			if err := s.setSessionCookie(w, r, sess, false); err != nil {
				s.respondError(w, r, err)
				return
			}
		}
		if !sess.IsAdmin {
			jsonError(w, http.StatusForbidden, "Acesso negado. Apenas administradores do domínio podem acessar esta área.")
			return
		}
		next(w, r, sess)
	}
}

func secureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookie signs sess, with a fresh id when issue is set, and stores
// the token in the session cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sess *session.Session, issue bool) error {
	sign := s.issuer.Reissue
	if issue {
		sign = s.issuer.Issue
	}
	token, err := sign(sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.issuer.ExpiresAt(sess),
		HttpOnly: true,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Server) clearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clientIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
