package repository

import (
	"context"
	"time"

	"github.com/abim/abim-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, main_title, subtitle, image_url, ders_gunleri, to_char(ders_saati, 'HH24:MI:SS'),
	egitim_baslangic, egitim_bitis, mufredat, is_active, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.MainTitle, &c.Subtitle, &c.ImageURL, &c.DersGunleri, &c.DersSaati,
		&c.EgitimBaslangic, &c.EgitimBitis, &c.Mufredat, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListVisible returns active courses whose date range contains day, newest first.
func (r *CourseRepository) ListVisible(ctx context.Context, day time.Time) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE is_active = TRUE AND egitim_baslangic <= $1::date AND egitim_bitis >= $1::date
		 ORDER BY created_at DESC, id DESC`, model.DateOnly(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// GetActiveByID retrieves an active course regardless of its date range.
func (r *CourseRepository) GetActiveByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1 AND is_active = TRUE`, id))
}

// GetByID retrieves a course whatever its state.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// Create inserts a course. Lists must already be encoded and the clock normalized.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (main_title, subtitle, image_url, ders_gunleri, ders_saati,
		                      egitim_baslangic, egitim_bitis, mufredat, is_active)
		 VALUES ($1, $2, $3, $4, $5::time, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		c.MainTitle, c.Subtitle, c.ImageURL, c.DersGunleri, c.DersSaati,
		c.EgitimBaslangic, c.EgitimBitis, c.Mufredat, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites every editable column of the course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE courses
		 SET main_title = $1, subtitle = $2, image_url = $3, ders_gunleri = $4, ders_saati = $5::time,
		     egitim_baslangic = $6, egitim_bitis = $7, mufredat = $8, is_active = $9, updated_at = NOW()
		 WHERE id = $10
		 RETURNING updated_at`,
		c.MainTitle, c.Subtitle, c.ImageURL, c.DersGunleri, c.DersSaati,
		c.EgitimBaslangic, c.EgitimBitis, c.Mufredat, c.IsActive, c.ID,
	).Scan(&c.UpdatedAt)
	return notFound(err)
}

// SetActive changes only is_active and updated_at.
func (r *CourseRepository) SetActive(ctx context.Context, id int, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE courses SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns the admin overview of every course, newest first.
func (r *CourseRepository) ListAll(ctx context.Context) ([]model.CourseAdminItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, main_title, is_active, created_at, updated_at FROM courses ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.CourseAdminItem{}
	for rows.Next() {
		var it model.CourseAdminItem
		if err := rows.Scan(&it.ID, &it.MainTitle, &it.IsActive, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountVisible counts the courses that ListVisible would return for day.
func (r *CourseRepository) CountVisible(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM courses
		 WHERE is_active = TRUE AND egitim_baslangic <= $1::date AND egitim_bitis >= $1::date`,
		model.DateOnly(day)).Scan(&n)
	return n, err
}

// TitleByID returns the main title of a course.
func (r *CourseRepository) TitleByID(ctx context.Context, id int) (string, error) {
	var title string
	err := r.pool.QueryRow(ctx, `SELECT main_title FROM courses WHERE id = $1`, id).Scan(&title)
	return title, notFound(err)
}
