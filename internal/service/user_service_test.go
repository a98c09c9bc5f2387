package service

import (
	"context"
	"errors"
	"testing"

	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*UserService, *memUserStore, *model.School) {
	t.Helper()
	auth, users, schools := newAuthFixture(t)
	school := &model.School{Name: "Green Valley", Code: "GV01"}
	require.NoError(t, schools.Create(context.Background(), school))
	return NewUserService(users, schools, auth), users, school
}

func TestCreateUserGeneratesTempPassword(t *testing.T) {
	svc, users, school := newUserFixture(t)

	user, temp, err := svc.CreateUser(context.Background(), model.Faculty, CreateUserRequest{Name: "Ravi", Email: "ravi@example.com", SchoolID: &school.ID})
	require.NoError(t, err)
	assert.Len(t, temp, 12)
	assert.Equal(t, model.Student, user.Role)

	stored, _ := users.FindByID(context.Background(), user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(temp)))
}

func TestFacultyCannotCreateStaff(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, _, err := svc.CreateUser(context.Background(), model.Faculty, CreateUserRequest{Name: "X", Email: "x@example.com", Role: "admin"})
	assert.True(t, errors.Is(err, util.ErrPermissionDenied))

	user, _, err := svc.CreateUser(context.Background(), model.Admin, CreateUserRequest{Name: "Y", Email: "y@example.com", Role: "faculty", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, model.Faculty, user.Role)

	_, _, err = svc.CreateUser(context.Background(), model.Admin, CreateUserRequest{Name: "Z", Email: "z@example.com", Password: "short"})
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestUpdateUserRespectsSchoolScope(t *testing.T) {
	svc, _, school := newUserFixture(t)
	ctx := context.Background()

	user, _, err := svc.CreateUser(ctx, model.Admin, CreateUserRequest{Name: "Ravi", Email: "ravi@example.com", SchoolID: &school.ID})
	require.NoError(t, err)

	other := school.ID + 1
	disabled := true
	_, err = svc.UpdateUser(ctx, user.ID, &other, UpdateUserRequest{Disabled: &disabled})
	assert.True(t, errors.Is(err, util.ErrUserNotFound))

	updated, err := svc.UpdateUser(ctx, user.ID, &school.ID, UpdateUserRequest{Disabled: &disabled})
	require.NoError(t, err)
	assert.True(t, updated.Disabled)

	_, err = svc.ResetPassword(ctx, user.ID, &other)
	assert.True(t, errors.Is(err, util.ErrUserNotFound))

	temp, err := svc.ResetPassword(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, temp)
}

func TestListUsersFiltersBySchool(t *testing.T) {
	svc, _, school := newUserFixture(t)
	ctx := context.Background()

	_, _, err := svc.CreateUser(ctx, model.Admin, CreateUserRequest{Name: "In", Email: "in@example.com", SchoolID: &school.ID})
	require.NoError(t, err)
	_, _, err = svc.CreateUser(ctx, model.Admin, CreateUserRequest{Name: "Out", Email: "out@example.com"})
	require.NoError(t, err)

	users, total, err := svc.ListUsers(ctx, UserFilter{Role: model.Student, SchoolID: &school.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "In", users[0].Name)
}
