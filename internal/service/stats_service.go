package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abim/abim-backend/internal/model"
)

// StatsService computes the dashboard counters.
type StatsService struct {
	applications ApplicationStore
	courses      CourseStore
	blogs        BlogStore
	now          func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(applications ApplicationStore, courses CourseStore, blogs BlogStore) *StatsService {
	return &StatsService{applications: applications, courses: courses, blogs: blogs, now: time.Now}
}

// ComputeStats gathers the student, course and blog counters.
func (s *StatsService) ComputeStats(ctx context.Context) (*model.Stats, error) {
	now := s.now()

	total, err := s.applications.CountApprovedStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	monthAgo := now.AddDate(0, -1, 0)
	prior, err := s.applications.CountApprovedStudents(ctx, &monthAgo)
	if err != nil {
		return nil, fmt.Errorf("count students last month: %w", err)
	}
	courses, err := s.courses.CountVisible(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	blogs, err := s.blogs.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	return &model.Stats{
		TotalStudents:     total,
		StudentsLastMonth: prior,
		StudentGrowth:     Growth(total, prior),
		TotalCourses:      courses,
		TotalBlogs:        blogs,
	}, nil
}

// Growth is the percentage change from prior to current rounded to one
// decimal. A zero prior count yields 0.
func Growth(current, prior int) float64 {
	if prior <= 0 {
		return 0
	}
	pct := float64(current-prior) / float64(prior) * 100
	return math.Round(pct*10) / 10
}
