package repository

import (
	"context"

	"github.com/abim/abim-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BannerRepository struct {
	pool *pgxpool.Pool
}

func NewBannerRepository(pool *pgxpool.Pool) *BannerRepository {
	return &BannerRepository{pool: pool}
}

func (r *BannerRepository) List(ctx context.Context) ([]model.Banner, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, subtitle, image_url, link_url, is_active, "order", created_at, updated_at
		 FROM banners ORDER BY "order" ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := []model.Banner{}
	for rows.Next() {
		var b model.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.IsActive, &b.Order,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *BannerRepository) Create(ctx context.Context, b *model.Banner) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO banners (title, subtitle, image_url, link_url, is_active, "order")
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.IsActive, b.Order,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BannerRepository) Update(ctx context.Context, b *model.Banner) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE banners
		 SET title = $1, subtitle = $2, image_url = $3, link_url = $4, is_active = $5, "order" = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING created_at, updated_at`,
		b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.IsActive, b.Order, b.ID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	return notFound(err)
}

func (r *BannerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
