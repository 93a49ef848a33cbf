package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"skill-hire/internal/config"
	"skill-hire/internal/domain/company"
	"skill-hire/internal/infrastructure/storage"
	"skill-hire/internal/repository"
)

type CompanyInput struct {
	CompanyName        string
	CompanyDescription *string
	Industry           *string
	Website            *string
	Location           *string
	EmployeeCount      *string
	FoundedYear        *int
	Logo               *Upload
}

type CompanyUsecase interface {
	Mine(ctx context.Context, userID int64) (*company.Company, error)
	Get(ctx context.Context, id int64) (company.Company, error)
	// Save creates the employer's company or updates it; created reports which.
	Save(ctx context.Context, userID int64, in CompanyInput) (c company.Company, created bool, err error)
}

type Companies struct {
	companies repository.CompanyRepository
	files     FileStore
	logo      uploadKind
	logger    *log.Logger
	now       func() time.Time
}

func NewCompanyUsecase(companies repository.CompanyRepository, files FileStore, cfg config.StorageConfig, logger *log.Logger) *Companies {
	return &Companies{
		companies: companies,
		files:     files,
		logo:      uploadKind{folder: "logos", exts: imageTypes, maxSize: cfg.MaxLogoSize},
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Companies) Mine(ctx context.Context, userID int64) (*company.Company, error) {
	c, err := u.companies.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, ErrInternal
	}
	return &c, nil
}

func (u *Companies) Get(ctx context.Context, id int64) (company.Company, error) {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return company.Company{}, ErrCompanyNotFound
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) Save(ctx context.Context, userID int64, in CompanyInput) (company.Company, bool, error) {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return company.Company{}, false, invalid("Company name is required")
	}
	if in.FoundedYear != nil && (*in.FoundedYear < 1800 || *in.FoundedYear > u.now().Year()) {
		return company.Company{}, false, invalid("Invalid founded year")
	}

	existing, err := u.companies.GetByUserID(ctx, userID)
	exists := err == nil
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return company.Company{}, false, ErrInternal
	}

	c := company.Company{
		UserID:             userID,
		CompanyName:        name,
		CompanyDescription: trimmedOrNil(in.CompanyDescription),
		Industry:           trimmedOrNil(in.Industry),
		Website:            trimmedOrNil(in.Website),
		Location:           trimmedOrNil(in.Location),
		EmployeeCount:      trimmedOrNil(in.EmployeeCount),
		FoundedYear:        in.FoundedYear,
	}

	var newLogo string
	if in.Logo != nil {
		ext, ct, err := u.logo.check(*in.Logo)
		if err != nil {
			return company.Company{}, false, err
		}
		newLogo, err = u.files.Save(ctx, storage.ObjectKey(u.logo.folder, ext), ct, in.Logo.Data)
		if err != nil {
			u.logf("[Companies] logo upload failed user_id=%d err=%v", userID, err)
			return company.Company{}, false, ErrInternal
		}
		c.Logo = &newLogo
	}

	var out company.Company
	if exists {
		c.ID = existing.ID
		out, err = u.companies.Update(ctx, c)
	} else {
		out, err = u.companies.Create(ctx, c)
	}
	if err != nil {
		if newLogo != "" {
			_ = u.files.Delete(context.WithoutCancel(ctx), newLogo)
		}
		// two concurrent first saves; the loser retries as an update
		if !exists && repository.IsUniqueViolation(err) {
			return u.Save(ctx, userID, in)
		}
		u.logf("[Companies] save failed user_id=%d err=%v", userID, err)
		return company.Company{}, false, ErrInternal
	}

	if newLogo != "" && exists && existing.Logo != nil && *existing.Logo != "" {
		if err := u.files.Delete(ctx, *existing.Logo); err != nil {
			u.logf("[Companies] old logo cleanup failed company_id=%d err=%v", existing.ID, err)
		}
	}
	return out, !exists, nil
}

func (u *Companies) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
