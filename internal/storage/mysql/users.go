package mysql

import (
	"context"
	"database/sql"
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"

	"matzip_radar/internal/domain"
)

const insertUserSQL = `
INSERT INTO users (username, password_hash)
VALUES (?, ?)
`

const getUserSQL = `
SELECT id, username, password_hash
FROM users
WHERE username = ?
`

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateUser(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash)
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == 1062 { // ER_DUP_ENTRY
		return domain.ErrDuplicateUser
	}
	return err
}

func (r *Repo) GetUser(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, getUserSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
