package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloglist/internal/models"
)

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create inserts a blog owned by userID and returns it with the owner
// populated. The foreign key is the single source of the User-Blog link, so
// the insert is atomic for both sides of the relationship.
func (r *BlogRepository) Create(ctx context.Context, title, author, url string, likes int, userID int64) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (title, author, url, likes, user_id) VALUES (?, ?, ?, ?, ?)`,
		title, author, url, likes, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, id)
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.getByID(ctx, id)
}

func (r *BlogRepository) getByID(ctx context.Context, id int64) (*models.Blog, error) {
	var b models.Blog
	err := r.db.QueryRowContext(ctx, `
		SELECT b.id, b.title, b.author, b.url, b.likes, u.username, u.name, u.id
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE b.id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.User.Username, &b.User.Name, &b.User.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListWithUsers returns all blogs, each populated with its owner's
// username, name and id.
func (r *BlogRepository) ListWithUsers(ctx context.Context) ([]models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.author, b.url, b.likes, u.username, u.name, u.id
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Blog{}
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.User.Username, &b.User.Name, &b.User.ID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a blog. ErrBlogNotFound is returned
// when no blog has the given id.
func (r *BlogRepository) Update(ctx context.Context, id int64, title, author, url string, likes int) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET title = ?, author = ?, url = ?, likes = ? WHERE id = ?`,
		title, author, url, likes, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrBlogNotFound
	}
	return r.getByID(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBlogNotFound
	}
	return nil
}
