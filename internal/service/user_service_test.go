package service

import (
	"testing"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (UserService, AuthService, repository.JournalRepository) {
	t.Helper()
	db := testutil.OpenDB(t)
	userRepo := repository.NewUserRepo(db)
	journalRepo := repository.NewJournalRepo(db)
	return NewUserService(db, userRepo, journalRepo), NewAuthService(userRepo), journalRepo
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	users, auth, journal := newUserFixture(t)

	password, created, err := users.BootstrapAdmin()
	require.NoError(t, err)
	require.True(t, created)
	require.Len(t, password, 16)

	// The generated password works, the legacy fixed one does not.
	_, err = auth.Authenticate(BootstrapAdminName, password)
	require.NoError(t, err)
	_, err = auth.Authenticate(BootstrapAdminName, "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Second call is a no-op.
	again, created, err := users.BootstrapAdmin()
	require.NoError(t, err)
	require.False(t, created)
	require.Empty(t, again)

	count, err := journal.CountByAction(model.ActionBootstrap)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestBootstrapSkippedWhenAdminExists(t *testing.T) {
	users, _, _ := newUserFixture(t)

	_, err := users.CreateUser(&CreateUserRequest{
		Name:     "boss",
		Role:     model.RoleAdministrator,
		Password: "hunter2",
	}, nil)
	require.NoError(t, err)

	_, created, err := users.BootstrapAdmin()
	require.NoError(t, err)
	require.False(t, created)
}

func TestAuthenticateFailuresAreIndistinct(t *testing.T) {
	users, auth, _ := newUserFixture(t)

	admin, err := users.CreateUser(&CreateUserRequest{
		Name:     "alice",
		Role:     model.RoleAdministrator,
		Password: "correct-horse",
	}, nil)
	require.NoError(t, err)

	_, err = auth.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Authenticate("nobody", "correct-horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := auth.Authenticate("alice", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, admin.ID, got.ID)
}

func TestLoginIssuesToken(t *testing.T) {
	users, auth, _ := newUserFixture(t)

	_, err := users.CreateUser(&CreateUserRequest{
		Name:     "bob",
		Role:     model.RoleSeller,
		Password: "pass",
	}, nil)
	require.NoError(t, err)

	resp, err := auth.Login("bob", "pass")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "bob", resp.User.Name)
	require.Equal(t, model.RoleSeller, resp.User.Role)
}

func TestCreateUserValidation(t *testing.T) {
	users, _, journal := newUserFixture(t)

	creator := uuid.New()
	_, err := users.CreateUser(&CreateUserRequest{
		Name:     "carol",
		Role:     model.RoleSeller,
		Password: "pass",
	}, &creator)
	require.NoError(t, err)

	// Duplicate name.
	_, err = users.CreateUser(&CreateUserRequest{
		Name:     "carol",
		Role:     model.RoleAdministrator,
		Password: "other",
	}, &creator)
	require.True(t, apperr.IsValidation(err))

	// Role outside the closed set.
	_, err = users.CreateUser(&CreateUserRequest{
		Name:     "dave",
		Role:     model.Role("Manager"),
		Password: "pass",
	}, &creator)
	require.True(t, apperr.IsValidation(err))

	count, err := journal.CountByAction(model.ActionUserCreated)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestChangePassword(t *testing.T) {
	users, auth, _ := newUserFixture(t)

	created, err := users.CreateUser(&CreateUserRequest{
		Name:     "erin",
		Role:     model.RoleSeller,
		Password: "old-pass",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, users.ChangePassword(created.ID, "new-pass"))

	_, err = auth.Authenticate("erin", "old-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Authenticate("erin", "new-pass")
	require.NoError(t, err)

	require.True(t, apperr.IsNotFound(users.ChangePassword(uuid.New(), "whatever")))
}

func TestDeleteUser(t *testing.T) {
	users, _, journal := newUserFixture(t)

	created, err := users.CreateUser(&CreateUserRequest{
		Name:     "frank",
		Role:     model.RoleSeller,
		Password: "pass",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(created.ID, nil))
	_, err = users.GetUserByID(created.ID)
	require.True(t, apperr.IsNotFound(err))

	require.True(t, apperr.IsNotFound(users.DeleteUser(uuid.New(), nil)))

	count, err := journal.CountByAction(model.ActionUserDeleted)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestListUsersNeverExposesHashes(t *testing.T) {
	users, _, _ := newUserFixture(t)

	_, err := users.CreateUser(&CreateUserRequest{
		Name:     "grace",
		Role:     model.RoleAdministrator,
		Password: "pass",
	}, nil)
	require.NoError(t, err)

	list, err := users.ListUsers()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "grace", list[0].Name)
}
