package service

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors returned by the services and mapped to response codes by handlers.
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrBlogNotFound        = errors.New("blog not found")
	ErrBannerNotFound      = errors.New("banner not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrDuplicateEmail      = errors.New("duplicate application email for course")
	ErrDuplicatePhone      = errors.New("duplicate application phone for course")
	ErrInvalidStatus       = errors.New("invalid application status")
)

// ValidationError carries field-level input problems detected after binding.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects validation problems; err returns nil when there are none.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
