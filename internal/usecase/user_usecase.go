package usecase

import (
	"context"
	"errors"
	"log"

	"skill-hire/internal/config"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/infrastructure/resume"
	"skill-hire/internal/infrastructure/storage"
	"skill-hire/internal/repository"
)

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string

	Bio             *string
	CurrentPosition *string
	ExperienceYears *int
	EducationLevel  *string
	Location        *string

	ProfilePhoto *Upload
	Resume       *Upload
}

type UserUsecase interface {
	Profile(ctx context.Context, userID int64) (Account, error)
	UpdateProfile(ctx context.Context, caller user.User, in UpdateProfileInput) (Account, error)
}

type Users struct {
	users     user.Repository
	companies repository.CompanyRepository
	files     FileStore
	photo     uploadKind
	resume    uploadKind
	logger    *log.Logger
}

func NewUserUsecase(users user.Repository, companies repository.CompanyRepository, files FileStore, cfg config.StorageConfig, logger *log.Logger) *Users {
	return &Users{
		users:     users,
		companies: companies,
		files:     files,
		photo:     uploadKind{folder: "profiles", exts: imageTypes, maxSize: cfg.MaxFileSize},
		resume:    uploadKind{folder: "resumes", exts: resumeTypes, maxSize: cfg.MaxFileSize},
		logger:    logger,
	}
}

func (u *Users) Profile(ctx context.Context, userID int64) (Account, error) {
	return loadAccount(ctx, u.users, u.companies, userID)
}

func (u *Users) UpdateProfile(ctx context.Context, caller user.User, in UpdateProfileInput) (Account, error) {
	if in.FirstName != nil && trimmedOrNil(in.FirstName) == nil {
		return Account{}, invalid("First name cannot be empty")
	}
	if in.LastName != nil && trimmedOrNil(in.LastName) == nil {
		return Account{}, invalid("Last name cannot be empty")
	}
	if in.ExperienceYears != nil && *in.ExperienceYears < 0 {
		return Account{}, invalid("Experience years must not be negative")
	}

	isSeeker := false
	switch caller.Role {
	case user.RoleJobSeeker:
		isSeeker = true
	case user.RoleEmployer, user.RoleAdmin:
		if in.Resume != nil {
			return Account{}, invalid("Only job seekers can upload a resume")
		}
	}

	upd := user.ProfileUpdate{
		FirstName: trimmedOrNil(in.FirstName),
		LastName:  trimmedOrNil(in.LastName),
		Phone:     in.Phone,
	}
	if isSeeker {
		upd.Bio = in.Bio
		upd.CurrentPosition = in.CurrentPosition
		upd.ExperienceYears = in.ExperienceYears
		upd.EducationLevel = in.EducationLevel
		upd.Location = in.Location
	}

	var saved []string
	cleanup := func() {
		for _, ref := range saved {
			if err := u.files.Delete(context.WithoutCancel(ctx), ref); err != nil {
				u.logf("[Users] orphan upload cleanup failed ref=%s err=%v", ref, err)
			}
		}
	}

	if in.ProfilePhoto != nil {
		url, _, err := u.store(ctx, u.photo, *in.ProfilePhoto)
		if err != nil {
			return Account{}, err
		}
		saved = append(saved, url)
		upd.ProfilePhoto = &url
	}

	if in.Resume != nil {
		url, ct, err := u.store(ctx, u.resume, *in.Resume)
		if err != nil {
			cleanup()
			return Account{}, err
		}
		saved = append(saved, url)
		upd.ResumePath = &url

		text, err := resume.ExtractText(ct, in.Resume.Data)
		if err != nil {
			u.logf("[Users] resume text extraction failed user_id=%d err=%v", caller.ID, err)
		} else {
			upd.ResumeText = &text
		}
	}

	if err := u.users.UpdateProfile(ctx, caller.ID, upd); err != nil {
		cleanup()
		if errors.Is(err, user.ErrNotFound) {
			return Account{}, ErrUserNotFound
		}
		u.logf("[Users] profile update failed user_id=%d err=%v", caller.ID, err)
		return Account{}, ErrInternal
	}

	if in.ProfilePhoto != nil && caller.ProfilePhoto != nil && *caller.ProfilePhoto != "" {
		if err := u.files.Delete(ctx, *caller.ProfilePhoto); err != nil {
			u.logf("[Users] old photo cleanup failed user_id=%d err=%v", caller.ID, err)
		}
	}

	return loadAccount(ctx, u.users, u.companies, caller.ID)
}

// store returns the public URL and the content type the file was saved as.
func (u *Users) store(ctx context.Context, kind uploadKind, up Upload) (string, string, error) {
	ext, ct, err := kind.check(up)
	if err != nil {
		return "", "", err
	}
	url, err := u.files.Save(ctx, storage.ObjectKey(kind.folder, ext), ct, up.Data)
	if err != nil {
		u.logf("[Users] upload failed folder=%s err=%v", kind.folder, err)
		return "", "", ErrInternal
	}
	return url, ct, nil
}

func (u *Users) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
