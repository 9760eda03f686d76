package repository

import (
	"context"
	"database/sql"

	"github.com/roomgrid/roombook/internal/model"
)

// UserRepo provides data access to the users table.  Users are created
// and refreshed from OAuth provider profiles; there is no local
// registration path.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UpsertFromProfile creates a user row for the given provider identity or
// refreshes the stored email and name if the row already exists.  It
// returns the application user id.  The is_admin flag is never touched
// here; promotion to admin is an operator action on the table itself.
func (r *UserRepo) UpsertFromProfile(ctx context.Context, providerID, email, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (provider_id, email, name)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE email = VALUES(email), name = VALUES(name)`,
		providerID, email, name,
	)
	if err != nil {
		return 0, err
	}
	// LastInsertId is only meaningful for a fresh insert; on the update
	// path MySQL reports 0 or the existing id depending on configuration,
	// so resolve the id with an explicit lookup instead.
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		return uint64(id), nil
	}
	var id uint64
	err = r.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE provider_id = ?`, providerID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns a user by application id.  sql.ErrNoRows is passed
// through when the user does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	const q = `SELECT id, provider_id, email, name, is_admin, created_at, updated_at
	           FROM users WHERE id = ?`
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.ProviderID, &u.Email, &u.Name, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}
