package dto

import (
	"time"

	"skill-hire/internal/domain/company"
)

type CompanyResponse struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	CompanyDescription *string   `json:"company_description"`
	Industry           *string   `json:"industry"`
	Website            *string   `json:"website"`
	Logo               *string   `json:"logo"`
	Location           *string   `json:"location"`
	EmployeeCount      *string   `json:"employee_count"`
	FoundedYear        *int      `json:"founded_year"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FromCompany(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		CompanyName:        c.CompanyName,
		CompanyDescription: c.CompanyDescription,
		Industry:           c.Industry,
		Website:            c.Website,
		Logo:               c.Logo,
		Location:           c.Location,
		EmployeeCount:      c.EmployeeCount,
		FoundedYear:        c.FoundedYear,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
