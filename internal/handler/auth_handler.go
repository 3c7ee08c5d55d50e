package handler

import (
	"errors"
	"net/http"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/session"
	"go-blog-app/internal/storage"
	"go-blog-app/internal/view"
)

// AuthHandler holds the dependencies for authentication, registration and
// profile handlers.
type AuthHandler struct {
	users    *service.UserService
	posts    *service.PostService
	uploads  *storage.UploadStore
	sessions session.Manager
	view     *view.View
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, posts *service.PostService, uploads *storage.UploadStore, sessions session.Manager, v *view.View) *AuthHandler {
	return &AuthHandler{
		users:    users,
		posts:    posts,
		uploads:  uploads,
		sessions: sessions,
		view:     v,
	}
}

// loginFormHandler shows the login page.
func (h *AuthHandler) loginFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.view.Render(w, "giris.html", nil); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// loginHandler authenticates the credentials and establishes the session.
// The session token is renewed so a pre-login token is never carried over.
func (h *AuthHandler) loginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	principal, err := h.users.Authenticate(r.Context(), r.FormValue("email"), r.FormValue("sifre"))
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			data := map[string]interface{}{"Error": "E-posta veya şifre hatalı!"}
			if err := h.view.Render(w, "giris.html", data); err != nil {
				return appError(err, "Sayfa oluşturulamadı")
			}
			return nil
		}
		return appError(err, "Giriş başarısız")
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return appError(err, "Oturum açılamadı")
	}
	h.sessions.Put(r.Context(), session.KeyUserID, principal.UserID)
	h.sessions.Put(r.Context(), session.KeyUserName, principal.DisplayName)
	h.sessions.Put(r.Context(), session.KeyUserRole, string(principal.Role))

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// registerFormHandler shows the registration page.
func (h *AuthHandler) registerFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.view.Render(w, "kayit.html", nil); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// registerHandler creates a reader account. A duplicate email re-renders
// the form with a message instead of failing the request.
func (h *AuthHandler) registerHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	_, err := h.users.Register(r.Context(),
		r.FormValue("ad_soyad"), r.FormValue("email"), r.FormValue("sifre"))
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			data := map[string]interface{}{"Error": "Bu e-posta zaten kayıtlı!"}
			if err := h.view.Render(w, "kayit.html", data); err != nil {
				return appError(err, "Sayfa oluşturulamadı")
			}
			return nil
		}
		return appError(err, "Kayıt başarısız")
	}

	http.Redirect(w, r, "/giris", http.StatusFound)
	return nil
}

// logoutHandler destroys the session.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return appError(err, "Çıkış başarısız")
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// profileFormHandler shows the signed-in user's profile form.
func (h *AuthHandler) profileFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	principal := middleware.GetPrincipal(r.Context())
	user, err := h.users.Get(r.Context(), principal.UserID)
	if err != nil {
		return appError(err, "Profil yüklenemedi")
	}

	data := map[string]interface{}{
		"User":      user,
		"Principal": principal,
	}
	if err := h.view.Render(w, "profil_duzenle.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// profileHandler updates display name, biography and optionally the
// avatar, then refreshes the name stored in the session. A blank display
// name is silently ignored: the user is sent back without a write.
func (h *AuthHandler) profileHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	avatarFile, err := saveFormFile(r, "profil_resmi", h.uploads)
	if err != nil {
		return appError(err, "Profil resmi kaydedilemedi")
	}

	principal := middleware.GetPrincipal(r.Context())
	fullName := r.FormValue("ad_soyad")
	err = h.users.UpdateProfile(r.Context(), principal, fullName, r.FormValue("biyografi"), avatarFile)
	if err != nil && !errors.Is(err, service.ErrInvalidInput) {
		return appError(err, "Profil güncellenemedi")
	}
	if err == nil {
		h.sessions.Put(r.Context(), session.KeyUserName, fullName)
	}

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// writersHandler lists the authors and admins.
func (h *AuthHandler) writersHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	writers, err := h.users.ListWriters(r.Context())
	if err != nil {
		return appError(err, "Yazarlar yüklenemedi")
	}

	data := map[string]interface{}{
		"Writers":   writers,
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "yazarlar.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// writerDetailHandler shows one author's profile with their published
// posts.
func (h *AuthHandler) writerDetailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "id")
	if err != nil {
		return appError(err, "Yazar bulunamadı")
	}

	writer, err := h.users.Get(r.Context(), id)
	if err != nil {
		return appError(err, "Yazar bulunamadı")
	}
	posts, err := h.posts.ListByAuthor(r.Context(), id)
	if err != nil {
		return appError(err, "Yazılar yüklenemedi")
	}

	data := map[string]interface{}{
		"Writer":    writer,
		"Posts":     posts,
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "yazar_detay.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}
