package repository

import (
	"context"

	"github.com/abim/abim-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlogRepository handles blog post data access.
type BlogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, content, summary, author, category, image_url, read_time,
	is_published, published_at, created_at, updated_at`

func scanBlog(row interface{ Scan(...any) error }) (*model.Blog, error) {
	b := &model.Blog{}
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Summary, &b.Author, &b.Category, &b.ImageURL, &b.ReadTime,
		&b.IsPublished, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// List returns every post, newest first.
func (r *BlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}

// GetByID retrieves a post by ID.
func (r *BlogRepository) GetByID(ctx context.Context, id int) (*model.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
}

// Create inserts a published post stamped with the current time.
func (r *BlogRepository) Create(ctx context.Context, b *model.Blog) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO blogs (title, content, summary, author, category, image_url, read_time, is_published, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW())
		 RETURNING id, is_published, published_at, created_at, updated_at`,
		b.Title, b.Content, b.Summary, b.Author, b.Category, b.ImageURL, b.ReadTime,
	).Scan(&b.ID, &b.IsPublished, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt)
}

// Update overwrites the editable columns of a post.
func (r *BlogRepository) Update(ctx context.Context, b *model.Blog) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE blogs
		 SET title = $1, content = $2, summary = $3, author = $4, category = $5, image_url = $6, read_time = $7,
		     updated_at = NOW()
		 WHERE id = $8
		 RETURNING is_published, published_at, created_at, updated_at`,
		b.Title, b.Content, b.Summary, b.Author, b.Category, b.ImageURL, b.ReadTime, b.ID,
	).Scan(&b.IsPublished, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt)
	return notFound(err)
}

// Delete removes a post for good.
func (r *BlogRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountPublished counts published posts.
func (r *BlogRepository) CountPublished(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs WHERE is_published = TRUE`).Scan(&n)
	return n, err
}
