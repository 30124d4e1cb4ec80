// SPDX-License-Identifier: GPL-3.0-or-later
package web

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/CrawX/go-imap-webmail/attachments"
	"github.com/CrawX/go-imap-webmail/domain"
	"github.com/CrawX/go-imap-webmail/session"
	"github.com/CrawX/go-imap-webmail/webmail"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type user struct {
	Email   string `json:"email"`
	Domain  string `json:"domain"`
	IsAdmin bool   `json:"is_admin"`
}

func userOf(sess *session.Session) user {
	return user{Email: sess.Email, Domain: sess.Domain, IsAdmin: sess.IsAdmin}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	sess, branding, err := s.webmail.Login(r.Context(), clientIp(r), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	err = s.setSessionCookie(w, r, sess, true)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ok(w, map[string]interface{}{
		"user":     userOf(sess),
		"branding": branding,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.clearCookie(w, r)
	err := s.webmail.Logout(sess, s.issuer.ExpiresAt(sess))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	ok(w, userOf(sess))
}

func (s *Server) handleLoginBranding(w http.ResponseWriter, r *http.Request) {
	ok(w, s.webmail.LoginBranding(r.Host))
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	folders, err := s.webmail.Folders(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, folders)
}

type folderRequest struct {
	Name    string `json:"name"`
	NewName string `json:"new_name"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req folderRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.webmail.CreateFolder(sess, req.Name); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Pasta criada.", nil)
}

func (s *Server) handleRenameFolder(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req folderRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.webmail.RenameFolder(sess, req.Name, req.NewName); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Pasta renomeada.", nil)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := s.webmail.DeleteFolder(sess, r.URL.Query().Get("name")); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Pasta excluída.", nil)
}

// queryInt reads an optional integer parameter. Garbage counts as absent.
func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	q := r.URL.Query()
	page, err := s.webmail.Messages(sess, q.Get("folder"), queryInt(r, "page", 1), queryInt(r, "per_page", 0))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, page)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	q := r.URL.Query()
	page, err := s.webmail.Search(sess, q.Get("folder"), q.Get("q"), queryInt(r, "page", 1), queryInt(r, "per_page", 0))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, page)
}

func pathUid(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	uid, err := strconv.ParseUint(r.PathValue("uid"), 10, 32)
	if err != nil || uid == 0 {
		jsonError(w, http.StatusUnprocessableEntity, "Mensagem inválida.")
		return 0, false
	}
	return uint32(uid), true
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	uid, valid := pathUid(w, r)
	if !valid {
		return
	}

	detail, err := s.webmail.Message(sess, r.URL.Query().Get("folder"), uid)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, detail)
}

func (s *Server) handleAttachment(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	uid, valid := pathUid(w, r)
	if !valid {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		jsonError(w, http.StatusUnprocessableEntity, "Anexo inválido.")
		return
	}

	content, err := s.webmail.Attachment(sess, r.URL.Query().Get("folder"), uid, index)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	mimeType := content.Mime
	if len(mimeType) == 0 {
		mimeType = "application/octet-stream"
	}

	h := w.Header()
	h.Set("Content-Type", mimeType)
	h.Set("Content-Length", strconv.Itoa(len(content.Data)))
	h.Set("Content-Disposition", mime.FormatMediaType(disposition(mimeType), map[string]string{"filename": downloadName(content.Name)}))
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Content-Security-Policy", downloadPolicy)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content.Data)
}

type messageActionRequest struct {
	Folder string `json:"folder"`
	Seen   bool   `json:"seen"`
	Target string `json:"target"`
}

func (s *Server) handleToggleSeen(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	uid, valid := pathUid(w, r)
	if !valid {
		return
	}
	var req messageActionRequest
	if !decode(w, r, &req) {
		return
	}

	if err := s.webmail.ToggleSeen(sess, req.Folder, uid, req.Seen); err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, nil)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	uid, valid := pathUid(w, r)
	if !valid {
		return
	}
	var req messageActionRequest
	if !decode(w, r, &req) {
		return
	}

	if err := s.webmail.Move(sess, req.Folder, uid, req.Target); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Mensagem movida.", nil)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	uid, valid := pathUid(w, r)
	if !valid {
		return
	}

	if err := s.webmail.Delete(sess, r.URL.Query().Get("folder"), uid); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Mensagem excluída.", nil)
}

type batchRequest struct {
	webmail.BatchRequest
	Seen bool `json:"seen"`
}

// batchResult answers with the aggregate counts, a batch where some items
// failed is still a successful request.
func (s *Server) batchResult(w http.ResponseWriter, r *http.Request, result domain.BatchResult, err error) {
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, result)
}

func (s *Server) handleBatchSeen(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.webmail.BatchToggleSeen(sess, &req.BatchRequest, req.Seen)
	s.batchResult(w, r, result, err)
}

func (s *Server) handleBatchMove(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.webmail.BatchMove(sess, &req.BatchRequest)
	s.batchResult(w, r, result, err)
}

func (s *Server) handleBatchDelete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.webmail.BatchDelete(sess, &req.BatchRequest)
	s.batchResult(w, r, result, err)
}

func (s *Server) handleReportSpam(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.webmail.ReportSpam(sess, &req.BatchRequest)
	s.batchResult(w, r, result, err)
}

func (s *Server) handleReportHam(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.webmail.ReportHam(sess, &req.BatchRequest)
	s.batchResult(w, r, result, err)
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	contacts, err := s.webmail.Contacts(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, contacts)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req webmail.Compose
	if !decode(w, r, &req) {
		return
	}
	if err := s.webmail.Send(sess, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "E-mail enviado com sucesso.", nil)
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req webmail.Compose
	if !decode(w, r, &req) {
		return
	}
	if err := s.webmail.SaveDraft(sess, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Rascunho salvo.", nil)
}

// handleUpload streams the "file" part of a multipart body into the upload
// store without buffering the form on disk.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	reader, err := r.MultipartReader()
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "Nenhum arquivo enviado.")
		return
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			jsonError(w, http.StatusUnprocessableEntity, "Nenhum arquivo enviado.")
			return
		}
		if part.FormName() != "file" || len(part.FileName()) == 0 {
			part.Close()
			continue
		}

		upload, err := s.webmail.Upload(sess, part.FileName(), part)
		part.Close()
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ok(w, upload)
		return
	}
}

func (s *Server) handleRemoveAttachment(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := s.webmail.RemoveAttachment(sess, r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, nil)
}

func (s *Server) handleBranding(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	branding, err := s.webmail.Branding(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, branding)
}

func (s *Server) handleSaveBranding(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req domain.Branding
	if !decode(w, r, &req) {
		return
	}
	branding, err := s.webmail.SaveBranding(sess, &req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Configurações salvas.", branding)
}

// handleUploadBrandingAsset takes the image from the multipart part named
// after the asset kind, or "file".
func (s *Server) handleUploadBrandingAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	kind := attachments.AssetKind(r.PathValue("kind"))
	reader, err := r.MultipartReader()
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "Nenhum arquivo enviado.")
		return
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			jsonError(w, http.StatusUnprocessableEntity, "Nenhum arquivo enviado.")
			return
		}
		if name := part.FormName(); name != string(kind) && name != "file" {
			part.Close()
			continue
		}

		branding, err := s.webmail.UploadBrandingAsset(sess, kind, part)
		part.Close()
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		okMessage(w, "Imagem enviada.", branding)
		return
	}
}

func (s *Server) handleRemoveBrandingAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	branding, err := s.webmail.RemoveBrandingAsset(sess, attachments.AssetKind(r.PathValue("kind")))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Imagem removida.", branding)
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	signature, err := s.webmail.Signature(sess)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ok(w, signature)
}

func (s *Server) handleSaveSignature(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req domain.Signature
	if !decode(w, r, &req) {
		return
	}
	signature, err := s.webmail.SaveSignature(sess, req.SignatureHtml, req.DisplayName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	okMessage(w, "Assinatura salva com sucesso.", signature)
}
