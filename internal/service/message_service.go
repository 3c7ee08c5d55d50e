package service

import (
	"context"
	"strings"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/data"
)

// MessageRepository defines the database operations for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *data.ContactMessage) (int64, error)
	ListAll(ctx context.Context) ([]*data.ContactMessage, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64) error
}

// MessageService handles the anonymous contact form and the admin inbox.
type MessageService struct {
	repo MessageRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Submit stores a contact-form submission. No authentication required.
func (s *MessageService) Submit(ctx context.Context, name, email, subject, body string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if name == "" || email == "" || subject == "" || body == "" {
		return ErrInvalidInput
	}
	_, err := s.repo.Create(ctx, &data.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Body:    body,
	})
	return err
}

// List returns all messages. Admin only.
func (s *MessageService) List(ctx context.Context, p *auth.Principal) ([]*data.ContactMessage, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

// CountUnread returns the unread message count. Admin only.
func (s *MessageService) CountUnread(ctx context.Context, p *auth.Principal) (int64, error) {
	if !p.IsAdmin() {
		return 0, ErrForbidden
	}
	return s.repo.CountUnread(ctx)
}

// MarkRead flags a message as read. Admin only.
func (s *MessageService) MarkRead(ctx context.Context, p *auth.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return s.repo.MarkRead(ctx, id)
}
