package models

// CourseCode is an immutable reference row mapping a course to the numeric
// code embedded in student roll numbers. Seeded administratively, never
// mutated by the allocator.
type CourseCode struct {
	ID     int64  `json:"id" db:"id" example:"1"`
	Code   string `json:"code" db:"course_code" example:"CS"`              // Display code
	Name   string `json:"name" db:"course_name" example:"Computer Science"`
	Number string `json:"number" db:"course_number" example:"070"`         // Fixed-width numeric code
}
