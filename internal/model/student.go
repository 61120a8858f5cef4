package model

import "time"

// StatusFilterAll disables the status filter of the student listing.
const StatusFilterAll = "all"

// Student is derived from applications grouped by applicant email.
type Student struct {
	Name               string              `json:"name"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	Courses            []string            `json:"courses"`
	Statuses           []ApplicationStatus `json:"statuses"`
	ApplicationCount   int                 `json:"application_count"`
	FirstApplicationAt time.Time           `json:"first_application_at"`
	LastApplicationAt  time.Time           `json:"last_application_at"`
}

// StudentApplication is one entry of a student's history.
type StudentApplication struct {
	ID         int               `json:"id"`
	CourseID   int               `json:"course_id"`
	CourseName string            `json:"course_name"`
	Notes      string            `json:"notes"`
	Status     ApplicationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// StudentDetail is a student's identity with their approved applications.
type StudentDetail struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Applications []StudentApplication `json:"applications"`
}

// StudentFilter narrows the student listing. Status is one of the
// application statuses or StatusFilterAll; empty means approved.
type StudentFilter struct {
	Page     int
	PerPage  int
	Search   string
	Status   string
	CourseID *int
}
