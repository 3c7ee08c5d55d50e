package service

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// CommentRepository defines the database operations the thread engine needs.
type CommentRepository interface {
	Create(ctx context.Context, comment *data.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*data.Comment, error)
	ListTopLevel(ctx context.Context, postID int64) ([]*data.CommentDetail, error)
	ListReplies(ctx context.Context, postID int64) ([]*data.CommentDetail, error)
	UpdateBody(ctx context.Context, id int64, body string) error
	DeleteWithReplies(ctx context.Context, id int64) (int64, error)
	CountForPost(ctx context.Context, postID int64) (int64, error)
}

// Thread is a post's comments grouped for rendering: top-level comments
// newest-first, and each one's replies oldest-first.
type Thread struct {
	TopLevel        []*data.CommentDetail
	RepliesByParent map[int64][]*data.CommentDetail
}

// CommentService is the comment thread engine. Threads are exactly two
// levels deep: a comment is either top-level or a direct reply to a
// top-level comment, enforced at the write boundary.
type CommentService struct {
	repo      CommentRepository
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	log       logger.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo CommentRepository, log logger.Logger) *CommentService {
	return &CommentService{
		repo:      repo,
		markdown:  goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
	}
}

// Add creates a top-level comment on a post.
func (s *CommentService) Add(ctx context.Context, p *auth.Principal, postID int64, body string) (int64, error) {
	if p == nil {
		return 0, ErrNotAuthenticated
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.Create(ctx, &data.Comment{
		PostID: postID,
		UserID: p.UserID,
		Body:   body,
	})
}

// Reply creates a reply to an existing comment on the same post. The
// parent must exist and belong to postID. When the requested parent is
// itself a reply, the new comment attaches to the parent's top-level
// ancestor so the thread never grows past two levels.
func (s *CommentService) Reply(ctx context.Context, p *auth.Principal, postID, parentID int64, body string) (int64, error) {
	if p == nil {
		return 0, ErrNotAuthenticated
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, ErrInvalidInput
	}

	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return 0, err
	}
	if parent == nil || parent.PostID != postID {
		return 0, ErrNotFound
	}
	if !parent.TopLevel() {
		parentID = *parent.ParentID
	}

	return s.repo.Create(ctx, &data.Comment{
		PostID:   postID,
		UserID:   p.UserID,
		Body:     body,
		ParentID: &parentID,
	})
}

// List returns the post's comment thread with bodies rendered for display.
func (s *CommentService) List(ctx context.Context, postID int64) (*Thread, error) {
	topLevel, err := s.repo.ListTopLevel(ctx, postID)
	if err != nil {
		return nil, err
	}
	replies, err := s.repo.ListReplies(ctx, postID)
	if err != nil {
		return nil, err
	}

	byParent := make(map[int64][]*data.CommentDetail, len(topLevel))
	for _, reply := range replies {
		reply.HTMLBody = s.renderBody(reply.Body)
		byParent[*reply.ParentID] = append(byParent[*reply.ParentID], reply)
	}
	for _, c := range topLevel {
		c.HTMLBody = s.renderBody(c.Body)
	}

	return &Thread{TopLevel: topLevel, RepliesByParent: byParent}, nil
}

// Count returns the total number of comments on a post, replies included.
func (s *CommentService) Count(ctx context.Context, postID int64) (int64, error) {
	return s.repo.CountForPost(ctx, postID)
}

// Edit rewrites a comment's body. Allowed for the comment's owner or an
// admin. An empty new body is a no-op: the original is retained.
func (s *CommentService) Edit(ctx context.Context, p *auth.Principal, commentID int64, newBody string) error {
	comment, err := s.getOwned(ctx, p, commentID)
	if err != nil {
		return err
	}
	newBody = strings.TrimSpace(newBody)
	if newBody == "" {
		return nil
	}
	return s.repo.UpdateBody(ctx, comment.ID, newBody)
}

// Delete removes a comment. Allowed for the comment's owner or an admin.
// Deleting a top-level comment also removes all of its replies; deleting
// a reply removes only that reply. It returns the ID of the post the
// comment belonged to so callers can redirect back to it.
func (s *CommentService) Delete(ctx context.Context, p *auth.Principal, commentID int64) (int64, error) {
	comment, err := s.getOwned(ctx, p, commentID)
	if err != nil {
		return 0, err
	}
	if _, err := s.repo.DeleteWithReplies(ctx, comment.ID); err != nil {
		return 0, err
	}
	return comment.PostID, nil
}

// GetForEdit returns the raw comment after checking ownership, for the
// edit form.
func (s *CommentService) GetForEdit(ctx context.Context, p *auth.Principal, commentID int64) (*data.Comment, error) {
	return s.getOwned(ctx, p, commentID)
}

func (s *CommentService) getOwned(ctx context.Context, p *auth.Principal, commentID int64) (*data.Comment, error) {
	if p == nil {
		return nil, ErrNotAuthenticated
	}
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if !p.IsAdmin() && !p.Owns(comment.UserID) {
		return nil, ErrForbidden
	}
	return comment, nil
}

// renderBody converts a plain-text/markdown comment body to sanitized
// HTML. A render failure falls back to the escaped raw text.
func (s *CommentService) renderBody(body string) template.HTML {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		s.log.Error(err, "failed to render comment body")
		return template.HTML(template.HTMLEscapeString(body))
	}
	return template.HTML(s.sanitizer.Sanitize(buf.String()))
}
