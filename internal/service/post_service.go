package service

import (
	"context"
	"strings"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"

	"github.com/microcosm-cc/bluemonday"
)

// PostRepository defines the database operations the content workflow
// engine needs.
type PostRepository interface {
	Create(ctx context.Context, post *data.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*data.Post, error)
	GetDetail(ctx context.Context, id int64) (*data.PostDetail, error)
	IncrementViews(ctx context.Context, id int64) error
	ListPublished(ctx context.Context, category string) ([]*data.Post, error)
	ListPublishedByAuthor(ctx context.Context, authorID int64) ([]*data.Post, error)
	ListPending(ctx context.Context) ([]*data.PostDetail, error)
	Search(ctx context.Context, keyword string) ([]*data.Post, error)
	ListCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id int64, title, body, category, imageFile string) error
	UpdateState(ctx context.Context, id int64, state data.PostState) error
	Delete(ctx context.Context, id int64) error
}

// PostService is the content workflow engine. It owns the post lifecycle:
// posts created by authors start pending, posts created by admins are
// published immediately, and only an admin approval moves a pending post
// to published. There is no transition back.
type PostService struct {
	repo      PostRepository
	sanitizer *bluemonday.Policy
	log       logger.Logger
}

// NewPostService creates a new PostService.
func NewPostService(repo PostRepository, log logger.Logger) *PostService {
	// UGCPolicy allows the formatting the rich-text editor produces
	// (links, lists, emphasis, images) while stripping dangerous HTML.
	return &PostService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
	}
}

// Create submits a new post. Only authors and admins may create; the
// initial state depends on the creator's role.
func (s *PostService) Create(ctx context.Context, p *auth.Principal, title, body, category, imageFile string) (int64, error) {
	if !p.CanWrite() {
		if p == nil {
			return 0, ErrNotAuthenticated
		}
		return 0, ErrForbidden
	}

	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	if title == "" || strings.TrimSpace(body) == "" || category == "" {
		return 0, ErrInvalidInput
	}

	state := data.StatePending
	if p.IsAdmin() {
		state = data.StatePublished
	}

	return s.repo.Create(ctx, &data.Post{
		AuthorID:  p.UserID,
		Title:     title,
		Body:      s.sanitizer.Sanitize(body),
		Category:  category,
		ImageFile: imageFile,
		State:     state,
	})
}

// Get returns the post with its author fields and bumps the view counter.
// The increment is a best-effort side effect: a failure is logged and the
// read proceeds.
func (s *PostService) Get(ctx context.Context, id int64) (*data.PostDetail, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.log.Error(err, "failed to increment view counter")
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}
	return detail, nil
}

// GetForEdit returns the raw post after checking that the principal may
// modify it.
func (s *PostService) GetForEdit(ctx context.Context, p *auth.Principal, id int64) (*data.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !p.IsAdmin() && !p.Owns(post.AuthorID) {
		return nil, ErrForbidden
	}
	return post, nil
}

// Update edits a post's fields. Allowed for the post's author or an
// admin. An empty imageFile keeps the existing image reference.
func (s *PostService) Update(ctx context.Context, p *auth.Principal, id int64, title, body, category, imageFile string) error {
	if _, err := s.GetForEdit(ctx, p, id); err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	if title == "" || strings.TrimSpace(body) == "" || category == "" {
		return ErrInvalidInput
	}

	return s.repo.Update(ctx, id, title, s.sanitizer.Sanitize(body), category, imageFile)
}

// Delete removes a post and its comments. Allowed for the post's author
// or an admin.
func (s *PostService) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	if _, err := s.GetForEdit(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Approve publishes a pending post. Admin only. Approving an already
// published post is a no-op, not an error.
func (s *PostService) Approve(ctx context.Context, p *auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if post.State == data.StatePublished {
		return nil
	}
	return s.repo.UpdateState(ctx, id, data.StatePublished)
}

// ListPublished returns publicly visible posts newest-first, optionally
// filtered to one category.
func (s *PostService) ListPublished(ctx context.Context, category string) ([]*data.Post, error) {
	return s.repo.ListPublished(ctx, category)
}

// ListByAuthor returns an author's published posts newest-first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]*data.Post, error) {
	return s.repo.ListPublishedByAuthor(ctx, authorID)
}

// ListPending returns the moderation queue. Admin only.
func (s *PostService) ListPending(ctx context.Context, p *auth.Principal) ([]*data.PostDetail, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListPending(ctx)
}

// Search returns published posts whose title or body contains the keyword,
// case-insensitively. An empty keyword yields an empty result, not the
// whole corpus.
func (s *PostService) Search(ctx context.Context, keyword string) ([]*data.Post, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*data.Post{}, nil
	}
	return s.repo.Search(ctx, keyword)
}

// Categories returns the distinct categories of published posts.
func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}
