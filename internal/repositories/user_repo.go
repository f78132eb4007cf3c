package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	intdb "github.com/devteam-creator/hushryd-app-sub001/internal/db"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepo) Create(ctx context.Context, u models.User) error {
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO users (id, name, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.Status)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r UserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getBy(ctx, "id", id)
}

// getBy reads one user by column, which must be a trusted identifier.
func (r UserRepo) getBy(ctx context.Context, column, value string) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, email, phone, password_hash, role, status, created_at, updated_at
		FROM users
		WHERE `+column+` = ?
		LIMIT 1`, value).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", ID: idForError(column, value), Err: err}
		}
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// idForError keeps email addresses out of error messages.
func idForError(column, value string) string {
	if column == "id" {
		return value
	}
	return ""
}

// Count is used by the db-check endpoint.
func (r UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
