package models

// UserType defines the portal role of a user account.
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeTeacher UserType = "teacher"
	UserTypeFaculty UserType = "faculty"
	UserTypeAdmin   UserType = "admin"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeStudent, UserTypeTeacher, UserTypeFaculty, UserTypeAdmin:
		return true
	}
	return false
}

// IsStudent reports whether the type belongs to the student roll number path.
func (t UserType) IsStudent() bool {
	return t == UserTypeStudent
}

// IsStaff reports whether the type belongs to the staff roll number path.
func (t UserType) IsStaff() bool {
	switch t {
	case UserTypeTeacher, UserTypeFaculty, UserTypeAdmin:
		return true
	}
	return false
}

// TypeLetter returns the letter embedded in staff roll numbers.
// Student roll numbers carry no letter.
func (t UserType) TypeLetter() string {
	switch t {
	case UserTypeAdmin:
		return "A"
	case UserTypeFaculty:
		return "F"
	case UserTypeTeacher:
		return "T"
	}
	return ""
}
