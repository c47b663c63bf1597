package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"bloglist/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. ErrUsernameTaken is returned when the username
// is already in use.
func (r *UserRepository) Create(ctx context.Context, username, name, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, name, password_hash) VALUES (?, ?, ?)`,
		username, name, passwordHash)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:       id,
		Username: username,
		Name:     name,
		Blogs:    []models.BlogRef{},
	}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Blogs = []models.BlogRef{}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Blogs = []models.BlogRef{}
	return &u, nil
}

// ListWithBlogs returns all users, each populated with its owned blogs.
func (r *UserRepository) ListWithBlogs(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.name, b.id, b.title, b.author, b.url
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.id, b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var (
			u      models.User
			blogID sql.NullInt64
			title  sql.NullString
			author sql.NullString
			url    sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &blogID, &title, &author, &url); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != u.ID {
			u.Blogs = []models.BlogRef{}
			out = append(out, u)
		}
		if blogID.Valid {
			last := &out[len(out)-1]
			last.Blogs = append(last.Blogs, models.BlogRef{
				ID:     blogID.Int64,
				Title:  title.String,
				Author: author.String,
				URL:    url.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
