package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"example.com/musicbox/internal/apperr"
	"example.com/musicbox/internal/models"
)

// UserRepository implements service.UserStore on Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Get(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "querying user")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $1, email = $2 WHERE id = $3`,
		u.Username, u.Email, u.ID)
	if isUniqueViolation(err) {
		return apperr.Validation("username or email already taken")
	}
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
