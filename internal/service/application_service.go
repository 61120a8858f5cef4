package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/rs/zerolog"
)

const (
	DefaultStudentsPerPage = 20
	MaxStudentsPerPage     = 100
)

// StudentPage is one page of the derived student listing.
type StudentPage struct {
	Students []model.Student
	Page     int
	PerPage  int
	Total    int
}

// ApplicationService handles course application intake, review and the
// student view derived from applications.
type ApplicationService struct {
	repo       ApplicationStore
	courses    CourseStore
	activities ActivityLogger
	log        zerolog.Logger
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(repo ApplicationStore, courses CourseStore, activities ActivityLogger, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		repo:       repo,
		courses:    courses,
		activities: activities,
		log:        log.With().Str("component", "application_service").Logger(),
	}
}

// Submit stores a pending application and returns its ID. The email check runs
// before the phone check; the unique constraints on (course_id, email) and
// (course_id, phone) turn a lost race into the same duplicate errors.
func (s *ApplicationService) Submit(ctx context.Context, req *model.SubmitApplicationRequest) (int, error) {
	a := &model.CourseApplication{
		CourseID: req.CourseID,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Notes:    strings.TrimSpace(req.Notes),
	}

	exists, err := s.repo.ExistsByEmail(ctx, a.CourseID, a.Email)
	if err != nil {
		return 0, fmt.Errorf("check duplicate email: %w", err)
	}
	if exists {
		return 0, ErrDuplicateEmail
	}

	exists, err = s.repo.ExistsByPhone(ctx, a.CourseID, a.Phone)
	if err != nil {
		return 0, fmt.Errorf("check duplicate phone: %w", err)
	}
	if exists {
		return 0, ErrDuplicatePhone
	}

	if err := s.repo.Create(ctx, a); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return 0, ErrDuplicateEmail
		case errors.Is(err, repository.ErrDuplicatePhone):
			return 0, ErrDuplicatePhone
		case errors.Is(err, repository.ErrUnknownCourse):
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("create application: %w", err)
	}

	title, err := s.courses.TitleByID(ctx, a.CourseID)
	if err != nil {
		s.log.Warn().Err(err).Int("course_id", a.CourseID).Msg("Failed to resolve course title for activity")
		title = fmt.Sprintf("#%d", a.CourseID)
	}
	s.record(ctx, fmt.Sprintf("<strong>%s</strong>, <strong>%s</strong> kursuna başvurdu", a.Name, title))

	return a.ID, nil
}

// List returns applications of active courses, newest first.
func (s *ApplicationService) List(ctx context.Context) ([]model.ApplicationListItem, error) {
	return s.repo.List(ctx)
}

// SetStatus changes the status of one application. This path writes no activity.
func (s *ApplicationService) SetStatus(ctx context.Context, id int, status model.ApplicationStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("set application status: %w", err)
	}
	return nil
}

// SetStatusByEmail changes the status of every application of email and logs
// the new status once.
func (s *ApplicationService) SetStatusByEmail(ctx context.Context, email string, status model.ApplicationStatus) (int64, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}
	email = strings.TrimSpace(email)
	n, err := s.repo.SetStatusByEmail(ctx, email, status)
	if err != nil {
		return 0, fmt.Errorf("set status by email: %w", err)
	}
	if n == 0 {
		return 0, ErrApplicationNotFound
	}

	s.record(ctx, fmt.Sprintf("<strong>%s</strong> öğrencisinin durumu <strong>%s</strong> olarak güncellendi", email, status.Label()))
	return n, nil
}

// ListStudents returns one page of students grouped by email.
func (s *ApplicationService) ListStudents(ctx context.Context, f model.StudentFilter) (*StudentPage, error) {
	if f.Status == "" {
		f.Status = string(model.StatusApproved)
	}
	if f.Status != model.StatusFilterAll && !model.ApplicationStatus(f.Status).Valid() {
		return nil, ErrInvalidStatus
	}
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PerPage < 1:
		f.PerPage = DefaultStudentsPerPage
	case f.PerPage > MaxStudentsPerPage:
		f.PerPage = MaxStudentsPerPage
	}

	students, total, err := s.repo.ListStudents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return &StudentPage{Students: students, Page: f.Page, PerPage: f.PerPage, Total: total}, nil
}

// GetStudent returns the approved application history of email.
func (s *ApplicationService) GetStudent(ctx context.Context, email string) (*model.StudentDetail, error) {
	d, err := s.repo.StudentByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *ApplicationService) record(ctx context.Context, message string) {
	if err := s.activities.Log(ctx, model.ActivityStudent, message); err != nil {
		s.log.Error().Err(err).Msg("Failed to record activity")
	}
}
