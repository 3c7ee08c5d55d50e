package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostRepository handles database operations for posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postDetailColumns = `yazilar.*, users.ad_soyad, users.profil_resmi, users.biyografi`

// Create inserts a new post and returns its ID.
func (r *PostRepository) Create(ctx context.Context, post *Post) (int64, error) {
	query := `INSERT INTO yazilar (author_id, baslik, icerik, kategori, resim, durum)
	          VALUES (:author_id, :baslik, :icerik, :kategori, :resim, :durum)`
	res, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created post id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a post by ID. Returns nil when no post exists.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	var post Post
	err := r.db.GetContext(ctx, &post, `SELECT * FROM yazilar WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return &post, nil
}

// GetDetail retrieves a post joined with its author's display fields.
// Returns nil when no post exists.
func (r *PostRepository) GetDetail(ctx context.Context, id int64) (*PostDetail, error) {
	var detail PostDetail
	query := `SELECT ` + postDetailColumns + `
	          FROM yazilar JOIN users ON yazilar.author_id = users.id
	          WHERE yazilar.id = ?`
	err := r.db.GetContext(ctx, &detail, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post detail: %w", err)
	}
	return &detail, nil
}

// IncrementViews bumps the post's view counter.
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE yazilar SET goruntulenme = goruntulenme + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// ListPublished returns published posts newest-first, optionally filtered
// by category. Identifiers are assigned monotonically, so ordering by id
// descending matches creation order.
func (r *PostRepository) ListPublished(ctx context.Context, category string) ([]*Post, error) {
	var posts []*Post
	var err error
	if category == "" {
		err = r.db.SelectContext(ctx, &posts,
			`SELECT * FROM yazilar WHERE durum = ? ORDER BY id DESC`, StatePublished)
	} else {
		err = r.db.SelectContext(ctx, &posts,
			`SELECT * FROM yazilar WHERE durum = ? AND kategori = ? ORDER BY id DESC`, StatePublished, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	return posts, nil
}

// ListPublishedByAuthor returns the author's published posts newest-first.
func (r *PostRepository) ListPublishedByAuthor(ctx context.Context, authorID int64) ([]*Post, error) {
	var posts []*Post
	query := `SELECT * FROM yazilar WHERE author_id = ? AND durum = ? ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &posts, query, authorID, StatePublished); err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	return posts, nil
}

// ListPending returns posts awaiting approval, oldest submission first.
func (r *PostRepository) ListPending(ctx context.Context) ([]*PostDetail, error) {
	var posts []*PostDetail
	query := `SELECT ` + postDetailColumns + `
	          FROM yazilar JOIN users ON yazilar.author_id = users.id
	          WHERE durum = ? ORDER BY yazilar.id`
	if err := r.db.SelectContext(ctx, &posts, query, StatePending); err != nil {
		return nil, fmt.Errorf("failed to list pending posts: %w", err)
	}
	return posts, nil
}

// Search returns published posts whose title or body contains the keyword,
// case-insensitively, newest-first.
func (r *PostRepository) Search(ctx context.Context, keyword string) ([]*Post, error) {
	var posts []*Post
	pattern := "%" + keyword + "%"
	query := `SELECT * FROM yazilar
	          WHERE durum = ? AND (baslik LIKE ? OR icerik LIKE ?)
	          ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &posts, query, StatePublished, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, nil
}

// ListCategories returns the distinct categories of published posts.
func (r *PostRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	query := `SELECT DISTINCT kategori FROM yazilar WHERE durum = ? ORDER BY kategori`
	if err := r.db.SelectContext(ctx, &categories, query, StatePublished); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Update writes the post's editable fields. An empty image filename
// preserves the stored one.
func (r *PostRepository) Update(ctx context.Context, id int64, title, body, category, imageFile string) error {
	var res sql.Result
	var err error
	if imageFile != "" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE yazilar SET baslik = ?, icerik = ?, kategori = ?, resim = ? WHERE id = ?`,
			title, body, category, imageFile, id)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE yazilar SET baslik = ?, icerik = ?, kategori = ? WHERE id = ?`,
			title, body, category, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return requireRow(res, id)
}

// UpdateState sets the post's visibility state.
func (r *PostRepository) UpdateState(ctx context.Context, id int64, state PostState) error {
	res, err := r.db.ExecContext(ctx, `UPDATE yazilar SET durum = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("failed to update post state: %w", err)
	}
	return requireRow(res, id)
}

// Delete removes the post and all of its comments in one transaction,
// so no comment is left referencing a missing post.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM yorumlar WHERE post_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete post comments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM yazilar WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	return tx.Commit()
}

// requireRow converts a zero-row update/delete into sql.ErrNoRows so the
// service layer can map it to its not-found error.
func requireRow(res sql.Result, id int64) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
