package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
)

// CommentHandler holds the dependencies for the comment handlers.
type CommentHandler struct {
	comments *service.CommentService
	view     *view.View
	log      logger.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService, v *view.View, log logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, view: v, log: log}
}

// addHandler creates a top-level comment. An empty body is silently
// ignored: the user is sent back to the post without an insert.
func (h *CommentHandler) addHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}

	_, err = h.comments.Add(r.Context(), middleware.GetPrincipal(r.Context()), postID, r.FormValue("yorum"))
	if err != nil && !errors.Is(err, service.ErrInvalidInput) {
		return appError(err, "Yorum eklenemedi")
	}

	redirectToPost(w, r, postID)
	return nil
}

// replyHandler creates a reply to an existing comment on the same post.
func (h *CommentHandler) replyHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	postID, err := idParam(r, "postID")
	if err != nil {
		return appError(err, "Yazı bulunamadı")
	}
	parentID, err := idParam(r, "parentID")
	if err != nil {
		return appError(err, "Yorum bulunamadı")
	}

	_, err = h.comments.Reply(r.Context(), middleware.GetPrincipal(r.Context()), postID, parentID, r.FormValue("yorum"))
	if err != nil && !errors.Is(err, service.ErrInvalidInput) {
		return appError(err, "Yanıt eklenemedi")
	}

	redirectToPost(w, r, postID)
	return nil
}

// editFormHandler shows the edit form for a comment the principal owns.
func (h *CommentHandler) editFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	commentID, err := idParam(r, "commentID")
	if err != nil {
		return appError(err, "Yorum bulunamadı")
	}

	comment, err := h.comments.GetForEdit(r.Context(), middleware.GetPrincipal(r.Context()), commentID)
	if err != nil {
		return appError(err, "Yorum düzenlenemez")
	}

	data := map[string]interface{}{
		"Comment":   comment,
		"Principal": middleware.GetPrincipal(r.Context()),
	}
	if err := h.view.Render(w, "yorum_duzenle.html", data); err != nil {
		return appError(err, "Sayfa oluşturulamadı")
	}
	return nil
}

// editHandler rewrites a comment's body. An empty body keeps the
// original text.
func (h *CommentHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	commentID, err := idParam(r, "commentID")
	if err != nil {
		return appError(err, "Yorum bulunamadı")
	}

	principal := middleware.GetPrincipal(r.Context())
	comment, err := h.comments.GetForEdit(r.Context(), principal, commentID)
	if err != nil {
		return appError(err, "Yorum düzenlenemez")
	}
	if err := h.comments.Edit(r.Context(), principal, commentID, r.FormValue("yorum")); err != nil {
		return appError(err, "Yorum güncellenemedi")
	}

	redirectToPost(w, r, comment.PostID)
	return nil
}

// deleteHandler removes a comment and, for a top-level comment, all of
// its replies.
func (h *CommentHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	commentID, err := idParam(r, "commentID")
	if err != nil {
		return appError(err, "Yorum bulunamadı")
	}

	postID, err := h.comments.Delete(r.Context(), middleware.GetPrincipal(r.Context()), commentID)
	if err != nil {
		return appError(err, "Yorum silinemedi")
	}

	redirectToPost(w, r, postID)
	return nil
}

func redirectToPost(w http.ResponseWriter, r *http.Request, postID int64) {
	http.Redirect(w, r, "/"+strconv.FormatInt(postID, 10), http.StatusFound)
}
