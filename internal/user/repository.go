package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(ctx context.Context, user *User) (*User, error) {
	var id int
	query := `INSERT INTO users (username, password, firstname, lastname, timecreated)
		VALUES ($1, $2, $3, $4, EXTRACT(EPOCH FROM NOW())::BIGINT) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.Password, user.FirstName, user.LastName).Scan(&id)
	if err != nil {
		return nil, err
	}

	user.ID = id
	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}
	query := "SELECT id, username, password, firstname, lastname FROM users WHERE username = $1"

	err := r.db.GetContext(ctx, u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// GetUserByID returns (nil, nil) when no user has the id.
func (r *Repository) GetUserByID(ctx context.Context, id int) (*User, error) {
	u := &User{}
	query := "SELECT id, username, firstname, lastname FROM users WHERE id = $1"

	err := r.db.GetContext(ctx, u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}
