package repository

import (
	"testing"

	"skill-hire/internal/domain/job"

	"github.com/stretchr/testify/assert"
)

func TestActiveListWhere_OnlyStatusByDefault(t *testing.T) {
	where, args := activeListWhere(JobListFilter{})
	assert.Equal(t, "WHERE j.status = 'active'", where)
	assert.Empty(t, args)
}

func TestActiveListWhere_AllFilters(t *testing.T) {
	minSalary := 50000.0
	where, args := activeListWhere(JobListFilter{
		Category:       "Engineering",
		JobType:        "full-time",
		Location:       "Pune",
		SearchVariants: []string{"backend", "back end"},
		MinSalary:      &minSalary,
	})

	assert.Equal(t,
		"WHERE j.status = 'active' AND j.category = $1 AND j.job_type = $2 AND j.location ILIKE $3"+
			" AND (j.title ILIKE $4 OR j.description ILIKE $4 OR j.title ILIKE $5 OR j.description ILIKE $5)"+
			" AND j.salary_min >= $6",
		where,
	)
	assert.Equal(t, []any{"Engineering", "full-time", "%Pune%", "%backend%", "%back end%", 50000.0}, args)
}

func TestAdminListWhere(t *testing.T) {
	where, args := adminListWhere(JobAdminFilter{})
	assert.Empty(t, where)
	assert.Nil(t, args)

	st := job.StatusPending
	where, args = adminListWhere(JobAdminFilter{Status: &st})
	assert.Equal(t, "WHERE j.status = $1", where)
	assert.Equal(t, []any{"pending"}, args)
}
