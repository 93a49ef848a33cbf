package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-hire/internal/domain/company"
	"skill-hire/internal/domain/user"
	ucauth "skill-hire/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterInput {
	return RegisterInput{
		Email:     "  Jane@Example.com ",
		Password:  "secret1",
		Role:      "job_seeker",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestRegister_Success(t *testing.T) {
	users := newFakeUsers()
	uc := NewAuthUsecase(users, newFakeCompanies(), fakeJWT{}, nil)

	res, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, user.RoleJobSeeker, res.User.Role)
	assert.Empty(t, res.User.PasswordHash)
	assert.Equal(t, "token-job_seeker", res.Token)

	stored := users.byID[res.User.ID]
	assert.True(t, ucauth.ComparePassword(stored.PasswordHash, "secret1"))
	assert.True(t, stored.IsActive)
	assert.Contains(t, users.profiles, res.User.ID)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		message string
	}{
		{"missing first name", func(in *RegisterInput) { in.FirstName = " " }, "Missing required fields"},
		{"bad email", func(in *RegisterInput) { in.Email = "jane" }, "Invalid email format"},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }, "Password must be at least 6 characters"},
		{"admin role", func(in *RegisterInput) { in.Role = "admin" }, "Invalid role"},
		{"unknown role", func(in *RegisterInput) { in.Role = "recruiter" }, "Invalid role"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegister()
			tc.mutate(&in)
			_, err := NewAuthUsecase(newFakeUsers(), nil, fakeJWT{}, nil).Register(context.Background(), in)

			var inErr *InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, tc.message, inErr.Message)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUsers(user.User{ID: 1, Email: "jane@example.com"})
	_, err := NewAuthUsecase(users, nil, fakeJWT{}, nil).Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func newLoginFixture(t *testing.T, active bool) *Auth {
	t.Helper()
	hash, err := ucauth.HashPassword("secret1")
	require.NoError(t, err)
	users := newFakeUsers(user.User{ID: 1, Email: "jane@example.com", PasswordHash: hash, Role: user.RoleEmployer, IsActive: active})
	return NewAuthUsecase(users, newFakeCompanies(), fakeJWT{}, nil)
}

func TestLogin(t *testing.T) {
	uc := newLoginFixture(t, true)
	ctx := context.Background()

	res, err := uc.Login(ctx, LoginInput{Email: "JANE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-employer", res.Token)
	assert.Empty(t, res.User.PasswordHash)

	_, err = uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, LoginInput{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_UnknownEmailStillComparesHash(t *testing.T) {
	uc := newLoginFixture(t, true)
	var hashes []string
	uc.comparePassword = func(hash, pw string) bool {
		hashes = append(hashes, hash)
		return ucauth.ComparePassword(hash, pw)
	}

	_, err := uc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	assert.Equal(t, ucauth.DummyHash(), hashes[0])
}

func TestLogin_Deactivated(t *testing.T) {
	uc := newLoginFixture(t, false)

	_, err := uc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	// a wrong password never reveals the account state
	_, err = uc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RepositoryFailure(t *testing.T) {
	users := newFakeUsers()
	users.err = errBoom
	_, err := NewAuthUsecase(users, nil, fakeJWT{}, nil).Login(context.Background(), LoginInput{Email: "a@b.co", Password: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestMe(t *testing.T) {
	users := newFakeUsers(
		user.User{ID: 1, Role: user.RoleJobSeeker, PasswordHash: "h"},
		user.User{ID: 2, Role: user.RoleEmployer},
		user.User{ID: 3, Role: user.RoleAdmin},
	)
	users.profiles[1] = user.SeekerProfile{UserID: 1, ExperienceYears: 4}
	companies := newFakeCompanies()
	companies.byUser[2] = company.Company{ID: 9, UserID: 2, CompanyName: "Acme"}
	uc := NewAuthUsecase(users, companies, fakeJWT{}, nil)
	ctx := context.Background()

	acc, err := uc.Me(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, acc.Seeker)
	assert.Equal(t, 4, acc.Seeker.ExperienceYears)
	assert.Nil(t, acc.Company)
	assert.Empty(t, acc.User.PasswordHash)

	acc, err = uc.Me(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, acc.Company)
	assert.Equal(t, "Acme", acc.Company.CompanyName)

	acc, err = uc.Me(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, acc.Seeker)
	assert.Nil(t, acc.Company)

	_, err = uc.Me(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
