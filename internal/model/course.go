package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Keys of the two entries in content.egitimSuresi.
const (
	PeriodStartKey = "Başlangıç"
	PeriodEndKey   = "Bitiş"
)

// DateLayout is the wire and storage format of course dates.
const DateLayout = "2006-01-02"

// Weekdays lists the accepted values of dersGunleri.
var Weekdays = []string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar"}

// ErrMalformedList is returned when a stored JSON list column cannot be decoded.
var ErrMalformedList = errors.New("malformed stored list")

// Course is a row of the courses table. DersGunleri and Mufredat hold the
// encoded text form (see EncodeStringList).
type Course struct {
	ID              int
	MainTitle       string
	Subtitle        string
	ImageURL        string
	DersGunleri     string
	DersSaati       string // HH:MM:SS
	EgitimBaslangic time.Time
	EgitimBitis     time.Time
	Mufredat        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CourseContent is the nested content block used by the admin form and the public pages.
type CourseContent struct {
	EgitimSuresi []map[string]string `json:"egitimSuresi"`
	Mufredat     []string            `json:"mufredat"`
}

// Period returns the raw start and end values carried in egitimSuresi.
func (c *CourseContent) Period() (start, end string) {
	for _, entry := range c.EgitimSuresi {
		if v, ok := entry[PeriodStartKey]; ok && start == "" {
			start = v
		}
		if v, ok := entry[PeriodEndKey]; ok && end == "" {
			end = v
		}
	}
	return start, end
}

// CourseView is the client view model of a course.
type CourseView struct {
	ID          int           `json:"id"`
	MainTitle   string        `json:"mainTitle"`
	Subtitle    string        `json:"subtitle"`
	ImageURL    string        `json:"imageUrl"`
	DersGunleri []string      `json:"dersGunleri"`
	DersSaati   string        `json:"dersSaati"`
	Mufredat    []string      `json:"mufredat"`
	Content     CourseContent `json:"content"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CourseAdminItem is the lightweight admin overview row.
type CourseAdminItem struct {
	ID        int       `json:"id"`
	MainTitle string    `json:"mainTitle"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCourseRequest is the admin form payload for a new course.
type CreateCourseRequest struct {
	MainTitle   string        `json:"mainTitle" binding:"required,max=255"`
	Subtitle    string        `json:"subtitle" binding:"required"`
	ImageURL    string        `json:"imageUrl" binding:"required,max=500"`
	DersGunleri []string      `json:"dersGunleri" binding:"required,min=1,dive,weekday"`
	DersSaati   string        `json:"dersSaati" binding:"required,clock"`
	Content     CourseContent `json:"content"`
}

// UpdateCourseRequest is a partial update. Nil fields keep their stored value.
type UpdateCourseRequest struct {
	MainTitle   *string        `json:"mainTitle" binding:"omitempty,max=255"`
	Subtitle    *string        `json:"subtitle"`
	ImageURL    *string        `json:"imageUrl" binding:"omitempty,max=500"`
	DersGunleri []string       `json:"dersGunleri" binding:"omitempty,dive,weekday"`
	DersSaati   *string        `json:"dersSaati" binding:"omitempty,clock"`
	Content     *CourseContent `json:"content"`
	IsActive    *bool          `json:"isActive"`
}

// ActiveOnly reports whether the patch only toggles the active flag.
func (r *UpdateCourseRequest) ActiveOnly() bool {
	return r.IsActive != nil &&
		r.MainTitle == nil && r.Subtitle == nil && r.ImageURL == nil &&
		r.DersGunleri == nil && r.DersSaati == nil && r.Content == nil
}

// View decodes the stored lists and reshapes the row for clients.
func (c *Course) View() (*CourseView, error) {
	days, err := DecodeStringList(c.DersGunleri)
	if err != nil {
		return nil, fmt.Errorf("course %d ders_gunleri: %w", c.ID, err)
	}
	curriculum, err := DecodeStringList(c.Mufredat)
	if err != nil {
		return nil, fmt.Errorf("course %d mufredat: %w", c.ID, err)
	}

	return &CourseView{
		ID:          c.ID,
		MainTitle:   c.MainTitle,
		Subtitle:    c.Subtitle,
		ImageURL:    c.ImageURL,
		DersGunleri: days,
		DersSaati:   ShortClock(c.DersSaati),
		Mufredat:    curriculum,
		Content: CourseContent{
			EgitimSuresi: []map[string]string{
				{PeriodStartKey: c.EgitimBaslangic.Format(DateLayout)},
				{PeriodEndKey: c.EgitimBitis.Format(DateLayout)},
			},
			Mufredat: curriculum,
		},
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

// EncodeStringList serializes a list column. A nil list is stored as "[]".
func EncodeStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeStringList parses a stored list column. Empty text decodes to an empty list.
func DecodeStringList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM:SS".
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("invalid time of day %q", s)
}

// ShortClock truncates a stored "HH:MM:SS" value to minute precision.
func ShortClock(stored string) string {
	if len(stored) >= 5 {
		return stored[:5]
	}
	return stored
}

// ParseDate parses a YYYY-MM-DD date; full RFC 3339 timestamps are accepted
// and reduced to their date part.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOnly(t), nil
}

// DateOnly drops the clock part and returns the calendar date of t at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekday reports whether s is one of Weekdays.
func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}
