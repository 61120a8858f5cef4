package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/abim/abim-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationRepository handles course application data access, including the
// student view derived from it.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// ExistsByEmail reports whether the course already has an application from email.
func (r *ApplicationRepository) ExistsByEmail(ctx context.Context, courseID int, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM course_applications WHERE course_id = $1 AND email = $2)`,
		courseID, email).Scan(&exists)
	return exists, err
}

// ExistsByPhone reports whether the course already has an application from phone.
func (r *ApplicationRepository) ExistsByPhone(ctx context.Context, courseID int, phone string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM course_applications WHERE course_id = $1 AND phone = $2)`,
		courseID, phone).Scan(&exists)
	return exists, err
}

// Create inserts a pending application. Constraint violations come back as
// ErrDuplicateEmail, ErrDuplicatePhone or ErrUnknownCourse.
func (r *ApplicationRepository) Create(ctx context.Context, a *model.CourseApplication) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO course_applications (course_id, name, email, phone, notes, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')
		 RETURNING id, status, created_at, updated_at`,
		a.CourseID, a.Name, a.Email, a.Phone, a.Notes,
	).Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return translateApplicationInsert(err)
	}
	return nil
}

// List returns applications of still active courses, newest first. A missing
// table yields an empty list.
func (r *ApplicationRepository) List(ctx context.Context) ([]model.ApplicationListItem, error) {
	var present bool
	if err := r.pool.QueryRow(ctx,
		`SELECT to_regclass('public.course_applications') IS NOT NULL`).Scan(&present); err != nil {
		return nil, err
	}
	items := []model.ApplicationListItem{}
	if !present {
		return items, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.course_id, c.main_title, a.name, a.email, a.phone, a.notes, a.status, a.created_at, a.updated_at
		 FROM course_applications a
		 JOIN courses c ON c.id = a.course_id AND c.is_active = TRUE
		 ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it model.ApplicationListItem
		if err := rows.Scan(&it.ID, &it.CourseID, &it.CourseName, &it.Name, &it.Email, &it.Phone, &it.Message,
			&it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetStatus updates one application. ErrNotFound when no row matched.
func (r *ApplicationRepository) SetStatus(ctx context.Context, id int, status model.ApplicationStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE course_applications SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatusByEmail updates every application of email and returns the number of rows changed.
func (r *ApplicationRepository) SetStatusByEmail(ctx context.Context, email string, status model.ApplicationStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE course_applications SET status = $1, updated_at = NOW() WHERE email = $2`, status, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListStudents groups filtered applications by email, most recently active first.
func (r *ApplicationRepository) ListStudents(ctx context.Context, f model.StudentFilter) ([]model.Student, int, error) {
	where, args := studentWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT a.email) FROM course_applications a`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT (array_agg(a.name ORDER BY a.created_at DESC))[1],
	                 a.email,
	                 (array_agg(a.phone ORDER BY a.created_at DESC))[1],
	                 array_agg(COALESCE(c.main_title, '') ORDER BY a.created_at),
	                 array_agg(a.status::text ORDER BY a.created_at),
	                 COUNT(*),
	                 MIN(a.created_at),
	                 MAX(a.created_at)
	          FROM course_applications a
	          LEFT JOIN courses c ON c.id = a.course_id` + where + `
	          GROUP BY a.email
	          ORDER BY MAX(a.created_at) DESC, a.email
	          LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		var statuses []string
		if err := rows.Scan(&s.Name, &s.Email, &s.Phone, &s.Courses, &statuses, &s.ApplicationCount,
			&s.FirstApplicationAt, &s.LastApplicationAt); err != nil {
			return nil, 0, err
		}
		s.Statuses = make([]model.ApplicationStatus, len(statuses))
		for i, st := range statuses {
			s.Statuses[i] = model.ApplicationStatus(st)
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

func studentWhere(f model.StudentFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	status := f.Status
	if status == "" {
		status = string(model.StatusApproved)
	}
	if status != model.StatusFilterAll {
		conds = append(conds, "a.status = "+next(status))
	}
	if f.CourseID != nil {
		conds = append(conds, "a.course_id = "+next(*f.CourseID))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := next("%" + escapeLike(s) + "%")
		conds = append(conds, "(a.name ILIKE "+p+" OR a.email ILIKE "+p+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// StudentByEmail returns the student's identity and approved applications,
// newest first. ErrNotFound when the email has no approved application.
func (r *ApplicationRepository) StudentByEmail(ctx context.Context, email string) (*model.StudentDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.course_id, COALESCE(c.main_title, ''), a.name, a.phone, a.notes, a.status,
		        a.created_at, a.updated_at
		 FROM course_applications a
		 LEFT JOIN courses c ON c.id = a.course_id
		 WHERE a.email = $1 AND a.status = 'approved'
		 ORDER BY a.created_at DESC, a.id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := &model.StudentDetail{Email: email, Applications: []model.StudentApplication{}}
	for rows.Next() {
		var app model.StudentApplication
		var name, phone string
		if err := rows.Scan(&app.ID, &app.CourseID, &app.CourseName, &name, &phone, &app.Notes, &app.Status,
			&app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		if len(detail.Applications) == 0 {
			detail.Name, detail.Phone = name, phone
		}
		detail.Applications = append(detail.Applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(detail.Applications) == 0 {
		return nil, ErrNotFound
	}
	return detail, nil
}

// CountApprovedStudents counts distinct approved applicant emails. A non-nil
// before restricts the count to applications created before that instant.
func (r *ApplicationRepository) CountApprovedStudents(ctx context.Context, before *time.Time) (int, error) {
	query := `SELECT COUNT(DISTINCT email) FROM course_applications WHERE status = 'approved'`
	var args []any
	if before != nil {
		query += ` AND created_at < $1`
		args = append(args, *before)
	}
	var n int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}
