package usecase

import (
	"context"
	"strings"
	"testing"

	"skill-hire/internal/config"
	"skill-hire/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile_SeekerWithUploads(t *testing.T) {
	oldPhoto := "/uploads/profiles/old.png"
	seeker := user.User{ID: 5, Role: user.RoleJobSeeker, FirstName: "Jane", ProfilePhoto: &oldPhoto}
	users := newFakeUsers(seeker)
	users.profiles[5] = user.SeekerProfile{UserID: 5}
	files := newMemFiles()
	uc := NewUserUsecase(users, nil, files, config.StorageConfig{MaxFileSize: 1024}, nil)
	first := " Janet "
	years := 3

	acc, err := uc.UpdateProfile(context.Background(), seeker, UpdateProfileInput{
		FirstName:       &first,
		ExperienceYears: &years,
		ProfilePhoto:    &Upload{Filename: "me.jpg", Data: []byte("jpg")},
		// not a readable PDF: stored, but no text is extracted
		Resume: &Upload{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("not a pdf")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Janet", acc.User.FirstName)
	require.NotNil(t, acc.User.ProfilePhoto)
	assert.True(t, strings.HasPrefix(*acc.User.ProfilePhoto, "/uploads/profiles/"))
	require.NotNil(t, acc.Seeker)
	require.NotNil(t, acc.Seeker.ResumePath)
	assert.True(t, strings.HasSuffix(*acc.Seeker.ResumePath, ".pdf"))
	assert.Nil(t, acc.Seeker.ResumeText)

	assert.Len(t, files.saved, 2)
	assert.Equal(t, []string{oldPhoto}, files.deleted)
	require.Len(t, users.updates, 1)
	assert.Equal(t, 3, *users.updates[0].ExperienceYears)
}

func TestUpdateProfile_EmployerCannotUploadResume(t *testing.T) {
	employer := user.User{ID: 2, Role: user.RoleEmployer}
	files := newMemFiles()
	uc := NewUserUsecase(newFakeUsers(employer), nil, files, config.StorageConfig{}, nil)

	_, err := uc.UpdateProfile(context.Background(), employer, UpdateProfileInput{
		Resume: &Upload{Filename: "cv.pdf", Data: []byte("x")},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, files.saved)
}

func TestUpdateProfile_EmployerIgnoresSeekerFields(t *testing.T) {
	employer := user.User{ID: 2, Role: user.RoleEmployer}
	users := newFakeUsers(employer)
	uc := NewUserUsecase(users, newFakeCompanies(), newMemFiles(), config.StorageConfig{}, nil)
	bio := "hello"

	_, err := uc.UpdateProfile(context.Background(), employer, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	require.Len(t, users.updates, 1)
	assert.Nil(t, users.updates[0].Bio)
}

func TestUpdateProfile_BadResumeCleansUpPhoto(t *testing.T) {
	seeker := user.User{ID: 5, Role: user.RoleJobSeeker}
	files := newMemFiles()
	uc := NewUserUsecase(newFakeUsers(seeker), nil, files, config.StorageConfig{MaxFileSize: 1024}, nil)

	_, err := uc.UpdateProfile(context.Background(), seeker, UpdateProfileInput{
		ProfilePhoto: &Upload{Filename: "me.png", Data: []byte("png")},
		Resume:       &Upload{Filename: "cv.txt", Data: []byte("plain")},
	})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Len(t, files.deleted, 1)
}

func TestUpdateProfile_Validation(t *testing.T) {
	seeker := user.User{ID: 5, Role: user.RoleJobSeeker}
	uc := NewUserUsecase(newFakeUsers(seeker), nil, newMemFiles(), config.StorageConfig{}, nil)
	blank := "  "
	negative := -1

	_, err := uc.UpdateProfile(context.Background(), seeker, UpdateProfileInput{FirstName: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.UpdateProfile(context.Background(), seeker, UpdateProfileInput{ExperienceYears: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
