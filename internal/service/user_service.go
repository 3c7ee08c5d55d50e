package service

import (
	"context"
	"fmt"
	"strings"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/data"
)

// UserRepository defines the database operations the identity service needs.
type UserRepository interface {
	Create(ctx context.Context, user *data.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*data.User, error)
	GetByEmail(ctx context.Context, email string) (*data.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, fullName, bio, avatarFile string) error
	UpdateRole(ctx context.Context, id int64, role data.Role) error
	ListWriters(ctx context.Context) ([]*data.User, error)
	ListAll(ctx context.Context) ([]*data.User, error)
}

// UserService provides registration, authentication and profile logic.
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a reader account. The email is pre-checked so a
// duplicate registration surfaces as ErrEmailTaken instead of leaking a
// constraint violation.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (int64, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))
	if fullName == "" || email == "" || password == "" {
		return 0, ErrInvalidInput
	}

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(ctx, &data.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         data.RoleReader,
	})
}

// Authenticate checks the credentials and returns the matching principal.
// It returns ErrBadCredentials for both an unknown email and a wrong
// password, so the two cases are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*auth.Principal, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return &auth.Principal{
		UserID:      user.ID,
		DisplayName: user.FullName,
		Role:        user.Role,
	}, nil
}

// Get returns the user with the given ID, or ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*data.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile updates the principal's own display name, biography and,
// when a new file was uploaded, avatar.
func (s *UserService) UpdateProfile(ctx context.Context, p *auth.Principal, fullName, bio, avatarFile string) error {
	if p == nil {
		return ErrNotAuthenticated
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ErrInvalidInput
	}
	return s.repo.UpdateProfile(ctx, p.UserID, fullName, bio, avatarFile)
}

// ChangeRole sets a user's role. Only admins may promote or demote, and
// only between reader and author; the admin role is never granted here.
func (s *UserService) ChangeRole(ctx context.Context, p *auth.Principal, userID int64, role data.Role) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if role != data.RoleReader && role != data.RoleAuthor {
		return ErrInvalidInput
	}
	target, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}
	// An existing admin cannot be demoted through this path.
	if target.Role == data.RoleAdmin {
		return ErrForbidden
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// ListWriters returns the users shown on the authors page.
func (s *UserService) ListWriters(ctx context.Context) ([]*data.User, error) {
	return s.repo.ListWriters(ctx)
}

// ListAll returns every account, for the admin dashboard.
func (s *UserService) ListAll(ctx context.Context, p *auth.Principal) ([]*data.User, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

// EnsureAdmin creates the configured admin account if no account with the
// given email exists yet. Run once at startup.
func (s *UserService) EnsureAdmin(ctx context.Context, fullName, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	_, err = s.repo.Create(ctx, &data.User{
		FullName:     fullName,
		Email:        strings.TrimSpace(strings.ToLower(email)),
		PasswordHash: hash,
		Role:         data.RoleAdmin,
	})
	return err
}
