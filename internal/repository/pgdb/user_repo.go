package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/grocery-backend/internal/domain"
	"github.com/DRSN-tech/grocery-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolationCode = "23505"

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
// Операции одиночные, поэтому выполняются напрямую через пул.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create сохраняет нового пользователя. Занятое имя — ErrUsernameTaken.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, role
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, user.Username, user.PasswordHash, string(user.Role)).Scan(
		&model.ID, &model.Username, &model.PasswordHash, &model.Role,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUsernameTaken)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToUserEntity(&model), nil
}

// GetByUsername возвращает пользователя по имени.
func (u *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, role FROM users WHERE username = $1`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, username).Scan(
		&model.ID, &model.Username, &model.PasswordHash, &model.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToUserEntity(&model), nil
}

// GetByID возвращает пользователя по идентификатору.
func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, password_hash, role FROM users WHERE id = $1`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Username, &model.PasswordHash, &model.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return converter.ToUserEntity(&model), nil
}
