package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/app/models/dto"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
	"github.com/keremaydin/acadport/internal/pkg/auth"
)

// fakeAllocator replays a scripted sequence of allocation results.
type fakeAllocator struct {
	results []allocResult
	calls   int
}

type allocResult struct {
	rollNumber string
	err        error
}

func (f *fakeAllocator) Allocate(_ context.Context, _ models.UserType, _, _ *int64) (string, error) {
	if f.calls >= len(f.results) {
		return "", apperrors.ErrAllocationFailed
	}
	r := f.results[f.calls]
	f.calls++
	return r.rollNumber, r.err
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context, userType models.UserType, _ uint64, _ int) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		if userType == "" || user.UserType == userType {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserStore) CountUsers(_ context.Context, userType models.UserType) (int64, error) {
	users, _ := f.ListUsers(context.Background(), userType, 0, 0)
	return int64(len(users)), nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newUserService(store *fakeUserStore, allocator *fakeAllocator) *UserService {
	return NewUserService(store, allocator, zerolog.Nop())
}

func studentRequest() *dto.CreateUserRequest {
	return &dto.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.edu",
		UserType: "student",
		CourseID: ptr(1),
	}
}

func TestCreateUserProvisionsAccount(t *testing.T) {
	store := newFakeUserStore()
	allocator := &fakeAllocator{results: []allocResult{{rollNumber: "20250700001"}}}
	svc := newUserService(store, allocator)

	created, err := svc.CreateUser(context.Background(), studentRequest())
	require.NoError(t, err)

	assert.Equal(t, "20250700001", created.RollNumber)
	assert.Len(t, created.TemporaryPassword, 12)

	stored, err := store.GetUserByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, created.TemporaryPassword, stored.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(stored.Password, created.TemporaryPassword))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	allocator := &fakeAllocator{results: []allocResult{{rollNumber: "20250700001"}}}
	svc := newUserService(store, allocator)

	_, err := svc.CreateUser(context.Background(), studentRequest())
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), studentRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, 1, allocator.calls, "no roll number may be burned on a duplicate email")
}

func TestCreateUserInvalidType(t *testing.T) {
	svc := newUserService(newFakeUserStore(), &fakeAllocator{})

	req := studentRequest()
	req.UserType = "janitor"

	_, err := svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserType)
}

func TestCreateUserBadDateOfBirth(t *testing.T) {
	svc := newUserService(newFakeUserStore(), &fakeAllocator{})

	bad := "01/02/2003"
	req := studentRequest()
	req.DateOfBirth = &bad

	_, err := svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateUserAllocationFailureLeavesNoRow(t *testing.T) {
	store := newFakeUserStore()
	allocator := &fakeAllocator{results: []allocResult{
		{err: apperrors.NewAllocationFailedError(assert.AnError)},
	}}
	svc := newUserService(store, allocator)

	_, err := svc.CreateUser(context.Background(), studentRequest())
	assert.ErrorIs(t, err, apperrors.ErrAllocationFailed)
	assert.Empty(t, store.users, "a failed allocation must not leave a user row")
	assert.Equal(t, 1, allocator.calls, "non-transient failures are not retried")
}

func TestCreateUserRetriesTransientAllocationFailure(t *testing.T) {
	store := newFakeUserStore()
	transient := apperrors.NewAllocationFailedError(&pgconn.PgError{Code: "40001"})
	allocator := &fakeAllocator{results: []allocResult{
		{err: transient},
		{rollNumber: "20250700002"},
	}}
	svc := newUserService(store, allocator)

	created, err := svc.CreateUser(context.Background(), studentRequest())
	require.NoError(t, err)
	assert.Equal(t, "20250700002", created.RollNumber)
	assert.Equal(t, 2, allocator.calls)
}

func TestCreateUserRetriesOnlyOnce(t *testing.T) {
	transient := apperrors.NewAllocationFailedError(&pgconn.PgError{Code: "55P03"})
	allocator := &fakeAllocator{results: []allocResult{
		{err: transient},
		{err: transient},
		{rollNumber: "20250700003"},
	}}
	svc := newUserService(newFakeUserStore(), allocator)

	_, err := svc.CreateUser(context.Background(), studentRequest())
	assert.ErrorIs(t, err, apperrors.ErrAllocationFailed)
	assert.Equal(t, 2, allocator.calls)
}

func TestListUsersFilter(t *testing.T) {
	store := newFakeUserStore()
	allocator := &fakeAllocator{results: []allocResult{
		{rollNumber: "20250700001"},
		{rollNumber: "2025248T0001"},
	}}
	svc := newUserService(store, allocator)

	_, err := svc.CreateUser(context.Background(), studentRequest())
	require.NoError(t, err)

	staffReq := &dto.CreateUserRequest{
		Name:         "Grace Hopper",
		Email:        "grace@example.edu",
		UserType:     "teacher",
		DepartmentID: ptr(5),
	}
	_, err = svc.CreateUser(context.Background(), staffReq)
	require.NoError(t, err)

	all, total, err := svc.ListUsers(context.Background(), "all", 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), total)

	students, total, err := svc.ListUsers(context.Background(), "student", 0, 10)
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "20250700001", students[0].RollNumber)

	_, _, err = svc.ListUsers(context.Background(), "janitor", 0, 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserType)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	store := newFakeUserStore()
	allocator := &fakeAllocator{results: []allocResult{{rollNumber: "20250700001"}}}
	svc := newUserService(store, allocator)

	created, err := svc.CreateUser(context.Background(), studentRequest())
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateUser(context.Background(), created.ID, &dto.UpdateUserRequest{
		Name:     "Ada King",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "20250700001", updated.RollNumber, "roll number never changes after issue")

	require.NoError(t, svc.DeleteUser(context.Background(), created.ID))
	_, err = svc.GetUser(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
