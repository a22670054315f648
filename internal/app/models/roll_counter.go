package models

import "time"

// CounterKey scopes roll number serial uniqueness. UserType already
// discriminates the unit kind: student keys carry a course number, staff keys
// a department number, so the two namespaces cannot collide on the same key
// even when a course and a department share a numeric code.
type CounterKey struct {
	Year          int
	OrgUnitNumber string
	UserType      UserType
}

// SequenceCounter mirrors a 'roll_number_counters' row: the last serial issued
// for a key. Rows are created on first allocation, incremented on every
// subsequent one, and never deleted. A year rollover implicitly starts a fresh
// key with serials from 1.
type SequenceCounter struct {
	Year          int       `json:"year" db:"year"`
	OrgUnitNumber string    `json:"orgUnitNumber" db:"org_unit_number"`
	UserType      UserType  `json:"userType" db:"user_type"`
	Counter       int       `json:"counter" db:"counter"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
