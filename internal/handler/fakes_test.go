package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

var errStoreDown = errors.New("connection refused")

// fakeCourses is an in-memory service.CourseStore.
type fakeCourses struct {
	mu      sync.Mutex
	courses map[int]*model.Course
	nextID  int
}

func newFakeCourses(courses ...*model.Course) *fakeCourses {
	f := &fakeCourses{courses: map[int]*model.Course{}, nextID: 100}
	for _, c := range courses {
		f.courses[c.ID] = c
	}
	return f
}

// visibleOn mirrors the ListVisible query: active, start <= day <= end by calendar date.
func visibleOn(c *model.Course, day time.Time) bool {
	d := model.DateOnly(day)
	return c.IsActive && !model.DateOnly(c.EgitimBaslangic).After(d) && !model.DateOnly(c.EgitimBitis).Before(d)
}

func (f *fakeCourses) ListVisible(_ context.Context, day time.Time) ([]model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Course
	for _, c := range f.courses {
		if visibleOn(c, day) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourses) GetActiveByID(_ context.Context, id int) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok || !c.IsActive {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourses) GetByID(_ context.Context, id int) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourses) Create(_ context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourses) Update(_ context.Context, c *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourses) SetActive(_ context.Context, id int, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (f *fakeCourses) ListAll(_ context.Context) ([]model.CourseAdminItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.CourseAdminItem{}
	for _, c := range f.courses {
		out = append(out, model.CourseAdminItem{ID: c.ID, MainTitle: c.MainTitle, IsActive: c.IsActive})
	}
	return out, nil
}

func (f *fakeCourses) CountVisible(ctx context.Context, day time.Time) (int, error) {
	visible, _ := f.ListVisible(ctx, day)
	return len(visible), nil
}

func (f *fakeCourses) TitleByID(_ context.Context, id int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return c.MainTitle, nil
}

// fakeApplications is an in-memory service.ApplicationStore keyed like the
// table's unique constraints.
type fakeApplications struct {
	mu      sync.Mutex
	rows    []model.CourseApplication
	courses *fakeCourses
}

func (f *fakeApplications) ExistsByEmail(_ context.Context, courseID int, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.CourseID == courseID && r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) ExistsByPhone(_ context.Context, courseID int, phone string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.CourseID == courseID && r.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) Create(ctx context.Context, a *model.CourseApplication) error {
	if _, err := f.courses.GetByID(ctx, a.CourseID); err != nil {
		return repository.ErrUnknownCourse
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = len(f.rows) + 1
	a.Status = model.StatusPending
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeApplications) List(_ context.Context) ([]model.ApplicationListItem, error) {
	return []model.ApplicationListItem{}, nil
}

func (f *fakeApplications) SetStatus(_ context.Context, id int, status model.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeApplications) SetStatusByEmail(_ context.Context, email string, status model.ApplicationStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.rows {
		if f.rows[i].Email == email {
			f.rows[i].Status = status
			n++
		}
	}
	return n, nil
}

func (f *fakeApplications) ListStudents(_ context.Context, filter model.StudentFilter) ([]model.Student, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byEmail := map[string]*model.Student{}
	var order []string
	for _, r := range f.rows {
		if filter.Status != model.StatusFilterAll && string(r.Status) != filter.Status {
			continue
		}
		s, ok := byEmail[r.Email]
		if !ok {
			s = &model.Student{Name: r.Name, Email: r.Email, Phone: r.Phone}
			byEmail[r.Email] = s
			order = append(order, r.Email)
		}
		s.ApplicationCount++
		s.Statuses = append(s.Statuses, r.Status)
	}

	start := (filter.Page - 1) * filter.PerPage
	out := []model.Student{}
	for i := start; i < len(order) && i < start+filter.PerPage; i++ {
		out = append(out, *byEmail[order[i]])
	}
	return out, len(order), nil
}

func (f *fakeApplications) StudentByEmail(_ context.Context, email string) (*model.StudentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var d *model.StudentDetail
	for _, r := range f.rows {
		if r.Email != email || r.Status != model.StatusApproved {
			continue
		}
		if d == nil {
			d = &model.StudentDetail{Name: r.Name, Email: r.Email, Phone: r.Phone}
		}
		d.Applications = append(d.Applications, model.StudentApplication{ID: r.ID, CourseID: r.CourseID, Status: r.Status})
	}
	if d == nil {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeApplications) CountApprovedStudents(_ context.Context, _ *time.Time) (int, error) {
	return 0, nil
}

// fakeActivities is an in-memory service.ActivityStore.
type fakeActivities struct {
	mu   sync.Mutex
	rows []model.Activity
}

func (f *fakeActivities) Create(_ context.Context, a *model.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = len(f.rows) + 1
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeActivities) Recent(_ context.Context, limit int) ([]model.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Activity{}
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.rows[i])
	}
	return out, nil
}

// brokenBlogs fails every call, standing in for an unreachable database.
type brokenBlogs struct{}

func (brokenBlogs) List(context.Context) ([]model.Blog, error) { return nil, errStoreDown }
func (brokenBlogs) GetByID(context.Context, int) (*model.Blog, error) { return nil, repository.ErrNotFound }
func (brokenBlogs) Create(context.Context, *model.Blog) error { return errStoreDown }
func (brokenBlogs) Update(context.Context, *model.Blog) error { return errStoreDown }
func (brokenBlogs) Delete(context.Context, int) error { return repository.ErrNotFound }
func (brokenBlogs) CountPublished(context.Context) (int, error) { return 0, errStoreDown }

// channelFeed is a Feed driven by the test.
type channelFeed struct {
	messages chan []byte
}

func (f *channelFeed) Listen(ctx context.Context) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-f.messages:
				select {
				case out <- m:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// fakeUsers is an in-memory service.UserStore.
type fakeUsers struct {
	users map[string]*model.User
}

func (f *fakeUsers) GetActiveByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok || !u.IsActive {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id int) error {
	return nil
}

// memorySessions implements service.SessionStore.
type memorySessions struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memorySessions) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *memorySessions) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memorySessions) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.values[k]; ok {
			delete(m.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
