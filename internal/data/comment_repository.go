package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CommentRepository handles database operations for comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment and returns its ID.
func (r *CommentRepository) Create(ctx context.Context, comment *Comment) (int64, error) {
	query := `INSERT INTO yorumlar (post_id, user_id, yorum, parent_id)
	          VALUES (:post_id, :user_id, :yorum, :parent_id)`
	res, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created comment id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a comment by ID. Returns nil when no comment exists.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	err := r.db.GetContext(ctx, &comment, `SELECT * FROM yorumlar WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return &comment, nil
}

// ListTopLevel returns the post's top-level comments newest-first,
// joined with author names.
func (r *CommentRepository) ListTopLevel(ctx context.Context, postID int64) ([]*CommentDetail, error) {
	var comments []*CommentDetail
	query := `SELECT yorumlar.*, users.ad_soyad
	          FROM yorumlar JOIN users ON yorumlar.user_id = users.id
	          WHERE post_id = ? AND (parent_id IS NULL OR parent_id = 0)
	          ORDER BY yorumlar.id DESC`
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list top-level comments: %w", err)
	}
	return comments, nil
}

// ListReplies returns the post's replies in chronological order,
// joined with author names.
func (r *CommentRepository) ListReplies(ctx context.Context, postID int64) ([]*CommentDetail, error) {
	var comments []*CommentDetail
	query := `SELECT yorumlar.*, users.ad_soyad
	          FROM yorumlar JOIN users ON yorumlar.user_id = users.id
	          WHERE post_id = ? AND parent_id IS NOT NULL AND parent_id != 0
	          ORDER BY yorumlar.id`
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return comments, nil
}

// UpdateBody rewrites the comment's body.
func (r *CommentRepository) UpdateBody(ctx context.Context, id int64, body string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE yorumlar SET yorum = ? WHERE id = ?`, body, id)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// DeleteWithReplies removes the comment and every comment whose parent it
// is. The single statement keeps the cascade atomic, and since it matches
// the replies directly the returned count covers every removed row.
// SQLite checks immediate foreign keys at the end of the statement, so
// removing a parent and its replies together never trips the self
// reference on parent_id.
func (r *CommentRepository) DeleteWithReplies(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM yorumlar WHERE id = ? OR parent_id = ?`, id, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// CountForPost returns the number of comments on a post.
func (r *CommentRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM yorumlar WHERE post_id = ?`, postID); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
