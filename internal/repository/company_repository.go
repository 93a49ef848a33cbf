package repository

import (
	"context"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/company"
)

type CompanyRepository interface {
	GetByUserID(ctx context.Context, userID int64) (company.Company, error)
	GetByID(ctx context.Context, id int64) (company.Company, error)
	Create(ctx context.Context, c company.Company) (company.Company, error)
	Update(ctx context.Context, c company.Company) (company.Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, user_id, company_name, company_description, industry, website, logo, location,
	employee_count, founded_year, created_at, updated_at`

func (r *PostgresCompanyRepository) GetByUserID(ctx context.Context, userID int64) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID))
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id int64) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`INSERT INTO companies (user_id, company_name, company_description, industry, website, logo, location,
		                        employee_count, founded_year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+companyColumns,
		c.UserID, c.CompanyName, c.CompanyDescription, c.Industry, c.Website, c.Logo, c.Location,
		c.EmployeeCount, c.FoundedYear,
	))
}

// Update keeps the stored logo when c.Logo is nil.
func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`UPDATE companies
		 SET company_name = $1, company_description = $2, industry = $3, website = $4,
		     logo = COALESCE($5, logo), location = $6, employee_count = $7, founded_year = $8,
		     updated_at = now()
		 WHERE user_id = $9
		 RETURNING `+companyColumns,
		c.CompanyName, c.CompanyDescription, c.Industry, c.Website, c.Logo, c.Location,
		c.EmployeeCount, c.FoundedYear, c.UserID,
	))
}

func scanCompany(row rowScanner) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.UserID, &c.CompanyName, &c.CompanyDescription, &c.Industry, &c.Website, &c.Logo,
		&c.Location, &c.EmployeeCount, &c.FoundedYear, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}
