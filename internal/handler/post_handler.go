package handler

import (
	"net/http"

	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/storage"
	"go-blog-app/internal/view"

	"github.com/go-chi/chi/v5"
)

// PostHandler holds the dependencies for the post handlers.
type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	uploads  *storage.UploadStore
	view     *view.View
	log      logger.Logger
}

// NewPostHandler creates a new PostHandler with the given dependencies.
func NewPostHandler(posts *service.PostService, comments *service.CommentService, uploads *storage.UploadStore, v *view.View, log logger.Logger) *PostHandler {
	return &PostHandler{
		posts:    posts,
		comments: comments,
		uploads:  uploads,
		view:     v,
		log:      log,
	}
}

// homeHandler lists all published posts, newest first.
func (h *PostHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderListing(w, r, "", "")
}

// categoryHandler lists the published posts of one category.
func (h *PostHandler) categoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderListing(w, r, chi.URLParam(r, "name"), chi.URLParam(r, "name"))
}

func (h *PostHandler) renderListing(w http.ResponseWriter, r *http.Request, category, heading string) *middleware.AppError {
	posts, err := h.posts.ListPublished(r.Context(), category)
	if err != nil {
		return appError(err, "Yazılar yüklenemedi")
	}
	categories, err := h.posts.Categories(r.Context())
	if err != nil {
		return appError(err, "Kategoriler yüklenemedi")
	}

	data := map[string]interface{}{
		"Posts":      posts,
		"Categories": categories,
		"Category":   heading,
		"Principal":  middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "index.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// detailHandler shows a single post with its comment thread. Fetching the
// post increments its view counter.
func (h *PostHandler) detailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}
	thread, err := h.comments.List(r.Context(), id)
	if err != nil {
		return appError(err, "Yorumlar yüklenemedi")
	}
	commentCount, err := h.comments.Count(r.Context(), id)
	if err != nil {
		return appError(err, "Yorumlar sayılamadı")
	}

	data := map[string]interface{}{
		"Post":         post,
		"Thread":       thread,
		"CommentCount": commentCount,
		"Principal":    middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "detay.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// newHandler displays the post submission form.
func (h *PostHandler) newHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := map[string]interface{}{
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "yeni.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// createHandler handles the post submission. Admin posts go live
// immediately; author posts await approval.
func (h *PostHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	imageFile, err := saveFormFile(r, "resim", h.uploads)
	if err != nil {
		return appError(err, "Resim kaydedilemedi")
	}

	principal := middleware.GetPrincipal(r.Context())
	_, err = h.posts.Create(r.Context(), principal,
		r.FormValue("baslik"), r.FormValue("icerik"), r.FormValue("kategori"), imageFile)
	if err != nil {
		return appError(err, "Yazı oluşturulamadı")
	}

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// editHandler displays the form for editing a post.
func (h *PostHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}

	post, err := h.posts.GetForEdit(r.Context(), middleware.GetPrincipal(r.Context()), id)
	if err != nil {
		return appError(err, "Yazı düzenlenemez")
	}

	data := map[string]interface{}{
		"Post":      post,
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "duzenle.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// updateHandler handles the edit form submission. Omitting the image
// keeps the existing one.
func (h *PostHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}

	imageFile, err := saveFormFile(r, "resim", h.uploads)
	if err != nil {
		return appError(err, "Resim kaydedilemedi")
	}

	err = h.posts.Update(r.Context(), middleware.GetPrincipal(r.Context()), id,
		r.FormValue("baslik"), r.FormValue("icerik"), r.FormValue("kategori"), imageFile)
	if err != nil {
		return appError(err, "Yazı güncellenemedi")
	}

	http.Redirect(w, r, "/"+chi.URLParam(r, "postID"), http.StatusFound)
	return nil
}

// deleteHandler removes a post together with its comments.
func (h *PostHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}

	if err := h.posts.Delete(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		return appError(err, "Yazı silinemedi")
	}

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// searchHandler performs a keyword search over published posts. An empty
// query renders an empty result page.
func (h *PostHandler) searchHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	keyword := r.URL.Query().Get("q")

	posts, err := h.posts.Search(r.Context(), keyword)
	if err != nil {
		return appError(err, "Arama başarısız")
	}

	data := map[string]interface{}{
		"Posts":     posts,
		"Keyword":   keyword,
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "arama.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// aboutHandler renders the static about page.
func (h *PostHandler) aboutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := map[string]interface{}{
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "hakkimizda.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}
