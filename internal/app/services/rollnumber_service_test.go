package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
)

// fakeRegistry is an in-memory number resolver for either registry table.
type fakeRegistry struct {
	numbers    map[int64]string
	missingErr error
}

func (f *fakeRegistry) ResolveNumber(_ context.Context, id int64) (string, error) {
	if number, ok := f.numbers[id]; ok {
		return number, nil
	}
	return "", f.missingErr
}

// fakeCounterStore mimics the durable counter table: insert-or-increment per
// key under a lock. When failWith is set it fails without touching the
// counter, matching the store's rollback guarantee.
type fakeCounterStore struct {
	mu       sync.Mutex
	counters map[models.CounterKey]int
	failWith error
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counters: make(map[models.CounterKey]int)}
}

func (f *fakeCounterStore) NextSerial(_ context.Context, key models.CounterKey) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return 0, f.failWith
	}

	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCounterStore) current(key models.CounterKey) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key]
}

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
}

func newTestService(counters SerialIssuer) *RollNumberService {
	courses := &fakeRegistry{
		numbers:    map[int64]string{1: "070", 2: "081"},
		missingErr: apperrors.ErrCourseNotFound,
	}
	departments := &fakeRegistry{
		numbers:    map[int64]string{5: "248", 6: "113"},
		missingErr: apperrors.ErrDepartmentNotFound,
	}
	return NewRollNumberService(courses, departments, counters, zerolog.Nop()).
		WithClock(fixedClock(2025))
}

func ptr(v int64) *int64 { return &v }

func TestAllocateStudentFormat(t *testing.T) {
	svc := newTestService(newFakeCounterStore())

	first, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "20250700001", first)

	second, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "20250700002", second)
}

func TestAllocateStaffFormat(t *testing.T) {
	tests := []struct {
		name     string
		userType models.UserType
		want     string
	}{
		{name: "admin letter A", userType: models.UserTypeAdmin, want: "2025248A0001"},
		{name: "faculty letter F", userType: models.UserTypeFaculty, want: "2025248F0001"},
		{name: "teacher letter T", userType: models.UserTypeTeacher, want: "2025248T0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeCounterStore())

			got, err := svc.Allocate(context.Background(), tt.userType, nil, ptr(5))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocateValidation(t *testing.T) {
	tests := []struct {
		name         string
		userType     models.UserType
		courseID     *int64
		departmentID *int64
		wantErr      error
	}{
		{name: "student without course", userType: models.UserTypeStudent, wantErr: apperrors.ErrCourseRequired},
		{name: "student with zero course id", userType: models.UserTypeStudent, courseID: ptr(0), wantErr: apperrors.ErrCourseRequired},
		{name: "teacher without department", userType: models.UserTypeTeacher, wantErr: apperrors.ErrDepartmentRequired},
		{name: "admin without department", userType: models.UserTypeAdmin, wantErr: apperrors.ErrDepartmentRequired},
		{name: "unknown user type", userType: models.UserType("janitor"), wantErr: apperrors.ErrInvalidUserType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeCounterStore()
			svc := newTestService(store)

			_, err := svc.Allocate(context.Background(), tt.userType, tt.courseID, tt.departmentID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.counters, "counter must not be touched on validation failure")
		})
	}
}

func TestAllocateUnknownOrgUnit(t *testing.T) {
	store := newFakeCounterStore()
	svc := newTestService(store)

	_, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(999999), nil)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = svc.Allocate(context.Background(), models.UserTypeTeacher, nil, ptr(999999))
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)

	assert.Empty(t, store.counters, "counter must not be touched when the org unit does not resolve")
}

func TestAllocateConcurrentSameKey(t *testing.T) {
	const n = 100

	store := newFakeCounterStore()
	svc := newTestService(store)

	results := make(chan string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rollNumber, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
			if err != nil {
				errs <- err
				return
			}
			results <- rollNumber
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, results, n)

	// Issued serials must be exactly {1..n}: no gaps, no duplicates.
	serials := make([]string, 0, n)
	for rollNumber := range results {
		require.Len(t, rollNumber, 11)
		assert.Equal(t, "2025070", rollNumber[:7])
		serials = append(serials, rollNumber[7:])
	}
	sort.Strings(serials)
	for i, serial := range serials {
		assert.Equal(t, formatRollNumber(2025, "070", models.UserTypeStudent, i+1)[7:], serial)
	}
}

func TestAllocateDistinctKeysIndependent(t *testing.T) {
	store := newFakeCounterStore()
	svc := newTestService(store)

	student, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)

	otherCourse, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(2), nil)
	require.NoError(t, err)

	teacher, err := svc.Allocate(context.Background(), models.UserTypeTeacher, nil, ptr(5))
	require.NoError(t, err)

	faculty, err := svc.Allocate(context.Background(), models.UserTypeFaculty, nil, ptr(5))
	require.NoError(t, err)

	// Each key starts its own sequence at 1, including two staff types
	// sharing a department number.
	assert.Equal(t, "20250700001", student)
	assert.Equal(t, "20250810001", otherCourse)
	assert.Equal(t, "2025248T0001", teacher)
	assert.Equal(t, "2025248F0001", faculty)
}

func TestAllocateCounterFailure(t *testing.T) {
	store := newFakeCounterStore()
	svc := newTestService(store)

	// Seed one committed serial, then force the store to abort.
	_, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)

	key := models.CounterKey{Year: 2025, OrgUnitNumber: "070", UserType: models.UserTypeStudent}
	store.failWith = errors.New("canceling statement due to lock timeout")

	_, err = svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	assert.ErrorIs(t, err, apperrors.ErrAllocationFailed)
	assert.Equal(t, 1, store.current(key), "aborted allocation must not advance the counter")

	// Recovery continues the sequence without a gap.
	store.failWith = nil
	next, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "20250700002", next)
}

func TestAllocateYearScopesKey(t *testing.T) {
	store := newFakeCounterStore()
	svc := newTestService(store)

	first, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "20250700001", first)

	// Rolling the clock over starts a fresh key; the serial resets to 1.
	svc.WithClock(fixedClock(2026))
	next, err := svc.Allocate(context.Background(), models.UserTypeStudent, ptr(1), nil)
	require.NoError(t, err)
	assert.Equal(t, "20260700001", next)
}
