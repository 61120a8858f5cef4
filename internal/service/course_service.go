package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/rs/zerolog"
)

// CourseService handles course business logic.
type CourseService struct {
	repo       CourseStore
	activities ActivityLogger
	log        zerolog.Logger
	now        func() time.Time
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo CourseStore, activities ActivityLogger, log zerolog.Logger) *CourseService {
	return &CourseService{
		repo:       repo,
		activities: activities,
		log:        log.With().Str("component", "course_service").Logger(),
		now:        time.Now,
	}
}

// ListPublicCourses returns the courses visible today, newest first.
func (s *CourseService) ListPublicCourses(ctx context.Context) ([]model.CourseView, error) {
	courses, err := s.repo.ListVisible(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list visible courses: %w", err)
	}

	views := make([]model.CourseView, 0, len(courses))
	for i := range courses {
		v, err := courses[i].View()
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// GetCourse returns one active course.
func (s *CourseService) GetCourse(ctx context.Context, id int) (*model.CourseView, error) {
	c, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, courseErr(err)
	}
	return c.View()
}

// CreateCourse validates and stores a new active course and returns its ID.
func (s *CourseService) CreateCourse(ctx context.Context, req *model.CreateCourseRequest) (int, error) {
	errs := fieldErrors{}
	c := &model.Course{
		MainTitle: strings.TrimSpace(req.MainTitle),
		Subtitle:  strings.TrimSpace(req.Subtitle),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		IsActive:  true,
	}
	if c.MainTitle == "" {
		errs.add("mainTitle", "mainTitle is a required field")
	}
	if c.Subtitle == "" {
		errs.add("subtitle", "subtitle is a required field")
	}
	if c.ImageURL == "" {
		errs.add("imageUrl", "imageUrl is a required field")
	}

	days := validWeekdays(req.DersGunleri, errs)
	clock, err := model.NormalizeClock(req.DersSaati)
	if err != nil {
		errs.add("dersSaati", "dersSaati must be a time of day (HH:MM or HH:MM:SS)")
	}
	c.DersSaati = clock

	rawStart, rawEnd := req.Content.Period()
	c.EgitimBaslangic, c.EgitimBitis = parsePeriod(rawStart, rawEnd, errs)

	curriculum := validCurriculum(req.Content.Mufredat, errs)
	if err := errs.err(); err != nil {
		return 0, err
	}

	if c.DersGunleri, err = model.EncodeStringList(days); err != nil {
		return 0, err
	}
	if c.Mufredat, err = model.EncodeStringList(curriculum); err != nil {
		return 0, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return 0, fmt.Errorf("create course: %w", err)
	}

	s.record(ctx, model.ActivityCourseCreated, fmt.Sprintf("Yeni kurs eklendi: <strong>%s</strong>", c.MainTitle))
	return c.ID, nil
}

// UpdateCourse applies a patch. A patch carrying only isActive touches nothing
// else; any other patch is merged over the stored row and logged.
func (s *CourseService) UpdateCourse(ctx context.Context, id int, req *model.UpdateCourseRequest) error {
	if req.ActiveOnly() {
		if err := s.repo.SetActive(ctx, id, *req.IsActive); err != nil {
			return courseErr(err)
		}
		return nil
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return courseErr(err)
	}

	errs := fieldErrors{}
	mergeText(&c.MainTitle, req.MainTitle, "mainTitle", errs)
	mergeText(&c.Subtitle, req.Subtitle, "subtitle", errs)
	mergeText(&c.ImageURL, req.ImageURL, "imageUrl", errs)

	if req.DersGunleri != nil {
		if days := validWeekdays(req.DersGunleri, errs); days != nil {
			if c.DersGunleri, err = model.EncodeStringList(days); err != nil {
				return err
			}
		}
	}
	if req.DersSaati != nil {
		clock, err := model.NormalizeClock(*req.DersSaati)
		if err != nil {
			errs.add("dersSaati", "dersSaati must be a time of day (HH:MM or HH:MM:SS)")
		}
		c.DersSaati = clock
	}
	if req.Content != nil {
		rawStart, rawEnd := req.Content.Period()
		if rawStart == "" {
			rawStart = c.EgitimBaslangic.Format(model.DateLayout)
		}
		if rawEnd == "" {
			rawEnd = c.EgitimBitis.Format(model.DateLayout)
		}
		c.EgitimBaslangic, c.EgitimBitis = parsePeriod(rawStart, rawEnd, errs)

		if req.Content.Mufredat != nil {
			if curriculum := validCurriculum(req.Content.Mufredat, errs); curriculum != nil {
				if c.Mufredat, err = model.EncodeStringList(curriculum); err != nil {
					return err
				}
			}
		}
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := errs.err(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return courseErr(err)
	}

	s.record(ctx, model.ActivityCourse, fmt.Sprintf("<strong>%s</strong> kursu güncellendi", c.MainTitle))
	return nil
}

// DeactivateCourse hides a course without deleting it.
func (s *CourseService) DeactivateCourse(ctx context.Context, id int) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return courseErr(err)
	}
	return nil
}

// ListAllCoursesForAdmin returns every course regardless of state or dates.
func (s *CourseService) ListAllCoursesForAdmin(ctx context.Context) ([]model.CourseAdminItem, error) {
	return s.repo.ListAll(ctx)
}

func (s *CourseService) record(ctx context.Context, kind model.ActivityType, message string) {
	if err := s.activities.Log(ctx, kind, message); err != nil {
		s.log.Error().Err(err).Str("type", string(kind)).Msg("Failed to record activity")
	}
}

func courseErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCourseNotFound
	}
	return err
}

func mergeText(dst *string, src *string, field string, errs fieldErrors) {
	if src == nil {
		return
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		errs.add(field, field+" cannot be empty")
		return
	}
	*dst = v
}

// validWeekdays returns the trimmed weekday list, or nil after recording a problem.
func validWeekdays(days []string, errs fieldErrors) []string {
	if len(days) == 0 {
		errs.add("dersGunleri", "dersGunleri must contain at least 1 item")
		return nil
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.TrimSpace(d)
		if !model.IsWeekday(d) {
			errs.add("dersGunleri", fmt.Sprintf("%q is not a weekday", d))
			return nil
		}
		out = append(out, d)
	}
	return out
}

// validCurriculum returns the non-blank topics, or nil after recording a problem.
func validCurriculum(topics []string, errs fieldErrors) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		errs.add("content.mufredat", "mufredat must contain at least 1 topic")
		return nil
	}
	return out
}

func parsePeriod(rawStart, rawEnd string, errs fieldErrors) (start, end time.Time) {
	var err error
	if start, err = model.ParseDate(rawStart); err != nil {
		errs.add("content.egitimSuresi", "Başlangıç must be a date (YYYY-MM-DD)")
		return
	}
	if end, err = model.ParseDate(rawEnd); err != nil {
		errs.add("content.egitimSuresi", "Bitiş must be a date (YYYY-MM-DD)")
		return
	}
	if end.Before(start) {
		errs.add("content.egitimSuresi", "Bitiş must not be before Başlangıç")
	}
	return
}
