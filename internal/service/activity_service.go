package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/metrics"
	"github.com/abim/abim-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 50
)

// ActivityLogger records feed entries. Implemented by ActivityService.
type ActivityLogger interface {
	Log(ctx context.Context, kind model.ActivityType, message string) error
}

// Publisher is the subset of the Redis client used for feed fan-out.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// presentation maps an activity type to the dashboard icon and colour.
var presentation = map[model.ActivityType][2]string{
	model.ActivityStudent:       {"FaUsers", "text-blue-500"},
	model.ActivityBlog:          {"FaNewspaper", "text-green-500"},
	model.ActivityBlogUpdated:   {"FaEdit", "text-yellow-500"},
	model.ActivityCourse:        {"FaBook", "text-purple-500"},
	model.ActivityCourseCreated: {"FaPlus", "text-indigo-500"},
}

// ActivityService appends to the activity feed and serves it to the dashboard.
type ActivityService struct {
	repo ActivityStore
	pub  Publisher
	log  zerolog.Logger
	now  func() time.Time
}

// NewActivityService creates a new ActivityService. pub may be nil, which
// disables live fan-out.
func NewActivityService(repo ActivityStore, pub Publisher, log zerolog.Logger) *ActivityService {
	return &ActivityService{
		repo: repo,
		pub:  pub,
		log:  log.With().Str("component", "activity_service").Logger(),
		now:  time.Now,
	}
}

// Log appends an activity and publishes it on the feed channel. Publishing is
// best effort; only the insert can fail the call.
func (s *ActivityService) Log(ctx context.Context, kind model.ActivityType, message string) error {
	a := &model.Activity{Type: kind, Message: message}
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	metrics.RecordActivity(string(kind))

	if s.pub == nil {
		return nil
	}
	payload, err := json.Marshal(a)
	if err != nil {
		s.log.Warn().Err(err).Int("activity_id", a.ID).Msg("Failed to encode activity for publish")
		return nil
	}
	if err := s.pub.Publish(ctx, config.CacheKey.ActivityFeedChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("activity_id", a.ID).Msg("Failed to publish activity")
	}
	return nil
}

// Recent returns the newest activities enriched for presentation. A limit
// outside 1..MaxActivityLimit falls back to the default or is capped.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]model.ActivityView, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}

	rows, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	now := s.now()
	views := make([]model.ActivityView, 0, len(rows))
	for _, a := range rows {
		views = append(views, Present(a, now))
	}
	return views, nil
}

// Present enriches an activity with its relative time label, icon and colour.
func Present(a model.Activity, now time.Time) model.ActivityView {
	icon, color := "FaBell", "text-gray-500"
	if p, ok := presentation[a.Type]; ok {
		icon, color = p[0], p[1]
	}
	return model.ActivityView{
		Activity: a,
		Time:     TimeAgo(now.Sub(a.CreatedAt)),
		Icon:     icon,
		Color:    color,
	}
}

// TimeAgo renders an elapsed duration as a Turkish relative label.
func TimeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "Az önce"
	case d < time.Hour:
		return fmt.Sprintf("%d dakika önce", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d saat önce", int(d/time.Hour))
	default:
		return fmt.Sprintf("%d gün önce", int(d/(24*time.Hour)))
	}
}
