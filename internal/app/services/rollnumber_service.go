package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
)

// serialWidth is the zero-padded width of the serial segment in every issued
// roll number. One width is used for both the student and staff paths so
// issued numbers stay fixed-length parseable.
const serialWidth = 4

// CourseNumberResolver resolves a course id to the numeric code embedded in
// student roll numbers.
type CourseNumberResolver interface {
	ResolveNumber(ctx context.Context, id int64) (string, error)
}

// DepartmentNumberResolver resolves a department id to the numeric code
// embedded in staff roll numbers.
type DepartmentNumberResolver interface {
	ResolveNumber(ctx context.Context, id int64) (string, error)
}

// SerialIssuer atomically issues the next serial for a counter key. Issued
// serials for a key are exactly 1..N with no gaps or duplicates, including
// under concurrent callers; any failure leaves the stored counter unchanged.
type SerialIssuer interface {
	NextSerial(ctx context.Context, key models.CounterKey) (int, error)
}

// RollNumberService allocates structured roll numbers for new user accounts.
//
// Student numbers are {year}{courseNumber}{serial}; staff numbers are
// {year}{departmentNumber}{typeLetter}{serial}, with the serial zero-padded to
// serialWidth digits. Serial uniqueness is scoped to the
// (year, orgUnitNumber, userType) counter key, so each course and department
// restarts at 1 every calendar year.
//
// The service holds no mutable state; any number of instances may allocate
// concurrently across processes. Correctness rests entirely on the
// SerialIssuer's atomic increment.
type RollNumberService struct {
	courses     CourseNumberResolver
	departments DepartmentNumberResolver
	counters    SerialIssuer
	now         func() time.Time
	logger      zerolog.Logger
}

// NewRollNumberService creates a new roll number allocation service
func NewRollNumberService(
	courses CourseNumberResolver,
	departments DepartmentNumberResolver,
	counters SerialIssuer,
	logger zerolog.Logger,
) *RollNumberService {
	return &RollNumberService{
		courses:     courses,
		departments: departments,
		counters:    counters,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock overrides the time source. Tests pin the year with this.
func (s *RollNumberService) WithClock(now func() time.Time) *RollNumberService {
	s.now = now
	return s
}

// Allocate issues the next roll number for a user of the given type.
//
// Students require courseID, staff (teacher/faculty/admin) require
// departmentID; a missing reference fails with a validation error and an
// unresolvable one with a not-found error, in both cases before the counter
// is touched. A counter-store failure surfaces as ErrAllocationFailed with
// the cause wrapped; no retry is performed here, that is the caller's call.
func (s *RollNumberService) Allocate(ctx context.Context, userType models.UserType, courseID, departmentID *int64) (string, error) {
	if !userType.Valid() {
		return "", apperrors.ErrInvalidUserType
	}

	year := s.now().Year()

	orgNumber, err := s.resolveOrgUnitNumber(ctx, userType, courseID, departmentID)
	if err != nil {
		return "", err
	}

	key := models.CounterKey{
		Year:          year,
		OrgUnitNumber: orgNumber,
		UserType:      userType,
	}

	serial, err := s.counters.NextSerial(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).
			Int("year", year).
			Str("orgUnitNumber", orgNumber).
			Str("userType", string(userType)).
			Msg("Roll number serial issue failed")
		return "", apperrors.NewAllocationFailedError(err)
	}

	rollNumber := formatRollNumber(year, orgNumber, userType, serial)

	s.logger.Debug().
		Str("rollNumber", rollNumber).
		Int("serial", serial).
		Msg("Roll number allocated")

	return rollNumber, nil
}

// resolveOrgUnitNumber reads the registry code for the org unit the user type
// requires: course for students, department for staff.
func (s *RollNumberService) resolveOrgUnitNumber(ctx context.Context, userType models.UserType, courseID, departmentID *int64) (string, error) {
	if userType.IsStudent() {
		if courseID == nil || *courseID <= 0 {
			return "", apperrors.ErrCourseRequired
		}
		return s.courses.ResolveNumber(ctx, *courseID)
	}

	if departmentID == nil || *departmentID <= 0 {
		return "", apperrors.ErrDepartmentRequired
	}
	return s.departments.ResolveNumber(ctx, *departmentID)
}

// formatRollNumber renders the structured identifier. Staff numbers carry the
// user type letter between the org unit code and the serial.
func formatRollNumber(year int, orgNumber string, userType models.UserType, serial int) string {
	if userType.IsStudent() {
		return fmt.Sprintf("%d%s%0*d", year, orgNumber, serialWidth, serial)
	}
	return fmt.Sprintf("%d%s%s%0*d", year, orgNumber, userType.TypeLetter(), serialWidth, serial)
}
