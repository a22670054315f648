package dto

// CourseOption backs the course selection dropdown.
type CourseOption struct {
	ID   int64  `json:"id" example:"1"`
	Code string `json:"code" example:"CS"`
	Name string `json:"name" example:"Computer Science"`
}

// DepartmentOption backs the department selection dropdown.
type DepartmentOption struct {
	ID   int64  `json:"id" example:"5"`
	Code string `json:"code" example:"ADM"`
	Name string `json:"name" example:"Administration"`
}
