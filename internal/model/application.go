package model

import "time"

// ApplicationStatus is the review state of a course application.
// Any state may move to any other; there is no terminal state.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Label returns the Turkish label shown in the admin panel.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusApproved:
		return "Onaylandı"
	case StatusRejected:
		return "Reddedildi"
	default:
		return "Beklemede"
	}
}

// CourseApplication is a row of course_applications.
type CourseApplication struct {
	ID        int               `json:"id"`
	CourseID  int               `json:"course_id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Notes     string            `json:"notes"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ApplicationListItem is an application joined with its course title.
type ApplicationListItem struct {
	ID         int               `json:"id"`
	CourseID   int               `json:"course_id"`
	CourseName string            `json:"course_name"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Message    string            `json:"message"`
	Status     ApplicationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// SubmitApplicationRequest is the public application form payload.
type SubmitApplicationRequest struct {
	CourseID int    `json:"courseId" binding:"required,gt=0"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"required,min=3,max=30"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// UpdateStatusRequest carries a new application status. The value itself is
// checked by the service so an unknown status yields INVALID_STATUS.
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" binding:"required"`
}
