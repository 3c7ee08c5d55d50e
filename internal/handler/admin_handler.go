package handler

import (
	"errors"
	"net/http"

	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"

	"github.com/go-chi/chi/v5"
)

// AdminHandler holds the dependencies for the moderation dashboard.
type AdminHandler struct {
	posts    *service.PostService
	users    *service.UserService
	messages *service.MessageService
	view     *view.View
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(posts *service.PostService, users *service.UserService, messages *service.MessageService, v *view.View) *AdminHandler {
	return &AdminHandler{posts: posts, users: users, messages: messages, view: v}
}

// dashboardHandler shows the moderation queue, the user list with role
// controls and the unread message count.
func (h *AdminHandler) dashboardHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	principal := middleware.GetPrincipal(r.Context())

	pending, err := h.posts.ListPending(r.Context(), principal)
	if err != nil {
		return appError(err, "Onay kuyruğu yüklenemedi")
	}
	users, err := h.users.ListAll(r.Context(), principal)
	if err != nil {
		return appError(err, "Kullanıcılar yüklenemedi")
	}
	unread, err := h.messages.CountUnread(r.Context(), principal)
	if err != nil {
		return appError(err, "Mesajlar sayılamadı")
	}

	data := map[string]interface{}{
		"Pending":   pending,
		"Users":     users,
		"Unread":    unread,
		"Principal": principal,
	}
	if err := h.view.Render(w, "admin.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// approveHandler publishes a pending post. Approving an already
// published post is a no-op.
func (h *AdminHandler) approveHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}

	if err := h.posts.Approve(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		return appError(err, "Yazı onaylanamadı")
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

// roleHandler changes a user's role between reader and author.
func (h *AdminHandler) roleHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userID, err := idParam(r, "userID")
	if err != nil {
		return appError(err, "Kullanıcı bulunamadı")
	}
	role := data.Role(chi.URLParam(r, "role"))

	err = h.users.ChangeRole(r.Context(), middleware.GetPrincipal(r.Context()), userID, role)
	if err != nil {
		return appError(err, "Rol değiştirilemedi")
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

// messagesHandler shows the contact-form inbox.
func (h *AdminHandler) messagesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	principal := middleware.GetPrincipal(r.Context())
	messages, err := h.messages.List(r.Context(), principal)
	if err != nil {
		return appError(err, "Mesajlar yüklenemedi")
	}

	data := map[string]interface{}{
		"Messages":  messages,
		"Principal": principal,
	}
	if err := h.view.Render(w, "mesajlar.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// markReadHandler flags a message as read.
func (h *AdminHandler) markReadHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "id")
	if err != nil {
		return appError(err, "Mesaj bulunamadı")
	}

	if err := h.messages.MarkRead(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		return appError(err, "Mesaj güncellenemedi")
	}

	http.Redirect(w, r, "/admin/mesajlar", http.StatusFound)
	return nil
}

// contactFormHandler shows the public contact page.
func (h *AdminHandler) contactFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := map[string]interface{}{
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "iletisim.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// contactHandler stores a contact-form submission. Incomplete forms are
// silently redirected back.
func (h *AdminHandler) contactHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	err := h.messages.Submit(r.Context(),
		r.FormValue("isim"), r.FormValue("email"), r.FormValue("konu"), r.FormValue("mesaj"))
	if err != nil && !errors.Is(err, service.ErrInvalidInput) {
		return appError(err, "Mesaj gönderilemedi")
	}

	data := map[string]interface{}{
		"Success":   err == nil,
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "iletisim.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}
