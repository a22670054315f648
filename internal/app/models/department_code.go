package models

// DepartmentCode is an immutable reference row mapping a department to the
// numeric code embedded in staff roll numbers.
type DepartmentCode struct {
	ID     int64  `json:"id" db:"id" example:"5"`
	Code   string `json:"code" db:"department_code" example:"ADM"`               // Display code
	Name   string `json:"name" db:"department_name" example:"Administration"`
	Number string `json:"number" db:"department_number" example:"248"`           // Fixed-width numeric code
}
