package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Navneet-kaur7/todo-app/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The unique index on email is authoritative for duplicates.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := r.db.dialect.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if r.db.dialect.isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByEmail retrieves a user by their (already normalized) email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := r.db.dialect.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := r.db.dialect.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

// UpdateProfile stores the name and email of user.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := r.db.dialect.Rebind(`UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.UpdatedAt, user.ID)
	if err != nil {
		if r.db.dialect.isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return expectOneRow(result, ErrUserNotFound)
}

// UpdatePasswordHash replaces the stored password hash of a user.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, user *model.User) error {
	query := r.db.dialect.Rebind(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, user.PasswordHash, user.UpdatedAt, user.ID)
	if err != nil {
		return err
	}

	return expectOneRow(result, ErrUserNotFound)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return user, nil
}

// expectOneRow turns a zero RowsAffected into notFound.
func expectOneRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
