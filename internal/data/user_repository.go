package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UserRepository handles database operations for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, user *User) (int64, error) {
	query := `INSERT INTO users (ad_soyad, email, sifre, rol, profil_resmi, biyografi)
	          VALUES (:ad_soyad, :email, :sifre, :rol, :profil_resmi, :biyografi)`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created user id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a user by ID. Returns nil when no user exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email. Returns nil when no user exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// EmailExists reports whether an account with the given email exists.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE email = ?`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile updates the user's display name and biography. An empty
// avatar filename preserves the stored one.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, fullName, bio, avatarFile string) error {
	var err error
	if avatarFile != "" {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET ad_soyad = ?, biyografi = ?, profil_resmi = ? WHERE id = ?`,
			fullName, bio, avatarFile, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET ad_soyad = ?, biyografi = ? WHERE id = ?`,
			fullName, bio, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdateRole sets the user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET rol = ? WHERE id = ?`, role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListWriters returns all users who can publish, i.e. authors and admins.
func (r *UserRepository) ListWriters(ctx context.Context) ([]*User, error) {
	var users []*User
	query := `SELECT * FROM users WHERE rol IN (?, ?) ORDER BY ad_soyad`
	if err := r.db.SelectContext(ctx, &users, query, RoleAdmin, RoleAuthor); err != nil {
		return nil, fmt.Errorf("failed to list writers: %w", err)
	}
	return users, nil
}

// ListAll returns every user, newest registration first.
func (r *UserRepository) ListAll(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := r.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
