package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MessageRepository handles database operations for contact messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create stores a contact-form submission.
func (r *MessageRepository) Create(ctx context.Context, msg *ContactMessage) (int64, error) {
	query := `INSERT INTO mesajlar (isim, email, konu, mesaj) VALUES (:isim, :email, :konu, :mesaj)`
	res, err := r.db.NamedExecContext(ctx, query, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to create message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created message id: %w", err)
	}
	return id, nil
}

// ListAll returns every message, newest-first.
func (r *MessageRepository) ListAll(ctx context.Context) ([]*ContactMessage, error) {
	var messages []*ContactMessage
	if err := r.db.SelectContext(ctx, &messages, `SELECT * FROM mesajlar ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// CountUnread returns the number of unread messages.
func (r *MessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM mesajlar WHERE okundu = 0`); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkRead flags a message as read.
func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE mesajlar SET okundu = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}
