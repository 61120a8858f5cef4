package service

import (
	"context"
	"time"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
)

// Persistence contracts the services depend on. The repository package
// provides the PostgreSQL implementations.

type UserStore interface {
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	TouchLastLogin(ctx context.Context, id int) error
}

type CourseStore interface {
	ListVisible(ctx context.Context, day time.Time) ([]model.Course, error)
	GetActiveByID(ctx context.Context, id int) (*model.Course, error)
	GetByID(ctx context.Context, id int) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	SetActive(ctx context.Context, id int, active bool) error
	ListAll(ctx context.Context) ([]model.CourseAdminItem, error)
	CountVisible(ctx context.Context, day time.Time) (int, error)
	TitleByID(ctx context.Context, id int) (string, error)
}

type BlogStore interface {
	List(ctx context.Context) ([]model.Blog, error)
	GetByID(ctx context.Context, id int) (*model.Blog, error)
	Create(ctx context.Context, b *model.Blog) error
	Update(ctx context.Context, b *model.Blog) error
	Delete(ctx context.Context, id int) error
	CountPublished(ctx context.Context) (int, error)
}

type BannerStore interface {
	List(ctx context.Context) ([]model.Banner, error)
	Create(ctx context.Context, b *model.Banner) error
	Update(ctx context.Context, b *model.Banner) error
	Delete(ctx context.Context, id int) error
}

type ApplicationStore interface {
	ExistsByEmail(ctx context.Context, courseID int, email string) (bool, error)
	ExistsByPhone(ctx context.Context, courseID int, phone string) (bool, error)
	Create(ctx context.Context, a *model.CourseApplication) error
	List(ctx context.Context) ([]model.ApplicationListItem, error)
	SetStatus(ctx context.Context, id int, status model.ApplicationStatus) error
	SetStatusByEmail(ctx context.Context, email string, status model.ApplicationStatus) (int64, error)
	ListStudents(ctx context.Context, f model.StudentFilter) ([]model.Student, int, error)
	StudentByEmail(ctx context.Context, email string) (*model.StudentDetail, error)
	CountApprovedStudents(ctx context.Context, before *time.Time) (int, error)
}

type ActivityStore interface {
	Create(ctx context.Context, a *model.Activity) error
	Recent(ctx context.Context, limit int) ([]model.Activity, error)
}

var (
	_ UserStore        = (*repository.UserRepository)(nil)
	_ CourseStore      = (*repository.CourseRepository)(nil)
	_ BlogStore        = (*repository.BlogRepository)(nil)
	_ BannerStore      = (*repository.BannerRepository)(nil)
	_ ApplicationStore = (*repository.ApplicationRepository)(nil)
	_ ActivityStore    = (*repository.ActivityRepository)(nil)
)
