package service

import (
	"context"
	"sync"
	"time"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockCourseStore is a mock implementation of CourseStore.
type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) ListVisible(ctx context.Context, day time.Time) ([]model.Course, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseStore) GetActiveByID(ctx context.Context, id int) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseStore) GetByID(ctx context.Context, id int) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseStore) Create(ctx context.Context, c *model.Course) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourseStore) Update(ctx context.Context, c *model.Course) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourseStore) SetActive(ctx context.Context, id int, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockCourseStore) ListAll(ctx context.Context) ([]model.CourseAdminItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CourseAdminItem), args.Error(1)
}

func (m *MockCourseStore) CountVisible(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func (m *MockCourseStore) TitleByID(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockBlogStore is a mock implementation of BlogStore.
type MockBlogStore struct {
	mock.Mock
}

func (m *MockBlogStore) List(ctx context.Context) ([]model.Blog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogStore) GetByID(ctx context.Context, id int) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogStore) Create(ctx context.Context, b *model.Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBlogStore) Update(ctx context.Context, b *model.Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBlogStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogStore) CountPublished(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockApplicationStore is a mock implementation of ApplicationStore.
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) ExistsByEmail(ctx context.Context, courseID int, email string) (bool, error) {
	args := m.Called(ctx, courseID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationStore) ExistsByPhone(ctx context.Context, courseID int, phone string) (bool, error) {
	args := m.Called(ctx, courseID, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationStore) Create(ctx context.Context, a *model.CourseApplication) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationStore) List(ctx context.Context) ([]model.ApplicationListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationListItem), args.Error(1)
}

func (m *MockApplicationStore) SetStatus(ctx context.Context, id int, status model.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockApplicationStore) SetStatusByEmail(ctx context.Context, email string, status model.ApplicationStatus) (int64, error) {
	args := m.Called(ctx, email, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationStore) ListStudents(ctx context.Context, f model.StudentFilter) ([]model.Student, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Student), args.Int(1), args.Error(2)
}

func (m *MockApplicationStore) StudentByEmail(ctx context.Context, email string) (*model.StudentDetail, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudentDetail), args.Error(1)
}

func (m *MockApplicationStore) CountApprovedStudents(ctx context.Context, before *time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

// MockActivityLogger is a mock implementation of ActivityLogger.
type MockActivityLogger struct {
	mock.Mock
}

func (m *MockActivityLogger) Log(ctx context.Context, kind model.ActivityType, message string) error {
	args := m.Called(ctx, kind, message)
	return args.Error(0)
}

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) TouchLastLogin(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memoryActivities is an in-memory ActivityStore.
type memoryActivities struct {
	mu     sync.Mutex
	rows   []model.Activity
	clock  func() time.Time
	nextID int
}

func (s *memoryActivities) Create(_ context.Context, a *model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = s.clock()
	s.rows = append(s.rows, *a)
	return nil
}

func (s *memoryActivities) Recent(_ context.Context, limit int) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Activity{}
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.rows[i])
	}
	return out, nil
}

// memoryApplications enforces the (course, email) and (course, phone)
// uniqueness atomically on Create, as the database constraints do.
type memoryApplications struct {
	MockApplicationStore
	mu   sync.Mutex
	rows []model.CourseApplication
}

func (s *memoryApplications) ExistsByEmail(_ context.Context, courseID int, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.CourseID == courseID && r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryApplications) ExistsByPhone(_ context.Context, courseID int, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.CourseID == courseID && r.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryApplications) Create(_ context.Context, a *model.CourseApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.CourseID == a.CourseID && r.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
		if r.CourseID == a.CourseID && r.Phone == a.Phone {
			return repository.ErrDuplicatePhone
		}
	}
	a.ID = len(s.rows) + 1
	a.Status = model.StatusPending
	s.rows = append(s.rows, *a)
	return nil
}

// memorySessions is an in-memory SessionStore.
type memorySessions struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (s *memorySessions) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value.(string)
	s.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (s *memorySessions) Get(_ context.Context, key string) *redis.StringCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *memorySessions) Del(_ context.Context, keys ...string) *redis.IntCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// recordingPublisher captures published messages.
type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
	messages [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	p.messages = append(p.messages, message.([]byte))
	return redis.NewIntResult(1, p.err)
}

// MockBannerStore is a mock implementation of BannerStore.
type MockBannerStore struct {
	mock.Mock
}

func (m *MockBannerStore) List(ctx context.Context) ([]model.Banner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Banner), args.Error(1)
}

func (m *MockBannerStore) Create(ctx context.Context, b *model.Banner) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBannerStore) Update(ctx context.Context, b *model.Banner) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBannerStore) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
