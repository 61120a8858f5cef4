package model

// Stats are the dashboard counters. StudentGrowth is the percentage change of
// distinct approved students against one month ago, rounded to one decimal.
type Stats struct {
	TotalStudents     int     `json:"totalStudents"`
	StudentsLastMonth int     `json:"studentsLastMonth"`
	StudentGrowth     float64 `json:"studentGrowth"`
	TotalCourses      int     `json:"totalCourses"`
	TotalBlogs        int     `json:"totalBlogs"`
}
