package model

import "time"

// ActivityType classifies a feed entry.
type ActivityType string

const (
	ActivityStudent       ActivityType = "student"
	ActivityBlog          ActivityType = "blog"
	ActivityBlogUpdated   ActivityType = "blog_updated"
	ActivityCourse        ActivityType = "course"
	ActivityCourseCreated ActivityType = "course_created"
)

// Activity is an append-only feed row. Message may contain <strong> markup.
type Activity struct {
	ID        int          `json:"id"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
}

// ActivityView is an activity enriched for the dashboard.
type ActivityView struct {
	Activity
	Time  string `json:"time"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
