package company

import "time"

type Company struct {
	ID                 int64
	UserID             int64
	CompanyName        string
	CompanyDescription *string
	Industry           *string
	Website            *string
	Logo               *string
	Location           *string
	EmployeeCount      *string
	FoundedYear        *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
