package usecase

import (
	"context"
	"log"
	"sort"

	"skill-hire/internal/domain/job"
	"skill-hire/internal/domain/matching"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/repository"
)

const (
	// RecommendationCandidatePool bounds how many of the most recently
	// posted active jobs are scored. Older jobs are never recommended.
	RecommendationCandidatePool = 50
	RecommendationLimit         = 10

	MsgNoSkillsForRecommendations = "No skills found. Add skills to get recommendations."
)

type Recommendation struct {
	JobWithSkills
	MatchScore    int
	MatchedSkills []int64
}

type RecommendationResult struct {
	Jobs    []Recommendation
	Message string
}

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, caller user.User, userID int64) (RecommendationResult, error)
}

type JobRecommendation struct {
	jobs       repository.JobRepository
	jobSkills  repository.JobSkillRepository
	userSkills repository.UserSkillRepository
	logger     *log.Logger
}

func NewJobRecommendationUsecase(jobs repository.JobRepository, jobSkills repository.JobSkillRepository, userSkills repository.UserSkillRepository, logger *log.Logger) *JobRecommendation {
	return &JobRecommendation{jobs: jobs, jobSkills: jobSkills, userSkills: userSkills, logger: logger}
}

func canViewRecommendations(caller user.User, userID int64) bool {
	switch caller.Role {
	case user.RoleAdmin:
		return true
	case user.RoleJobSeeker, user.RoleEmployer:
		return caller.ID == userID
	default:
		return false
	}
}

func (u *JobRecommendation) GetRecommendations(ctx context.Context, caller user.User, userID int64) (RecommendationResult, error) {
	if userID <= 0 {
		return RecommendationResult{}, invalid("Invalid user id")
	}
	if !canViewRecommendations(caller, userID) {
		return RecommendationResult{}, ErrForbidden
	}

	callerSkills, err := u.userSkills.SkillIDsByUserID(ctx, userID)
	if err != nil {
		return RecommendationResult{}, u.internal("load user skills", userID, err)
	}
	if len(callerSkills) == 0 {
		return RecommendationResult{Jobs: []Recommendation{}, Message: MsgNoSkillsForRecommendations}, nil
	}

	candidates, err := u.jobs.ListRecentActive(ctx, RecommendationCandidatePool)
	if err != nil {
		return RecommendationResult{}, u.internal("load candidates", userID, err)
	}
	if len(candidates) == 0 {
		return RecommendationResult{Jobs: []Recommendation{}}, nil
	}

	ids := make([]int64, 0, len(candidates))
	for _, j := range candidates {
		ids = append(ids, j.ID)
	}
	skillsByJob, err := u.jobSkills.SkillIDsByJobIDs(ctx, ids)
	if err != nil {
		return RecommendationResult{}, u.internal("load job skills", userID, err)
	}

	type scored struct {
		job     job.Job
		score   int
		matched []int64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, j := range candidates {
		required := skillsByJob[j.ID]
		ranked = append(ranked, scored{
			job:     j,
			score:   matching.Match(callerSkills, required),
			matched: matching.MatchedSkills(callerSkills, required),
		})
	}

	// candidates arrive newest first; a stable sort keeps that order for ties
	sort.SliceStable(ranked, func(i, k int) bool { return ranked[i].score > ranked[k].score })
	if len(ranked) > RecommendationLimit {
		ranked = ranked[:RecommendationLimit]
	}

	keptIDs := make([]int64, 0, len(ranked))
	for _, r := range ranked {
		keptIDs = append(keptIDs, r.job.ID)
	}
	details, err := u.jobSkills.FindByJobIDs(ctx, keptIDs)
	if err != nil {
		return RecommendationResult{}, u.internal("hydrate skills", userID, err)
	}

	out := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		s := details[r.job.ID]
		if s == nil {
			s = []job.SkillRequirement{}
		}
		out = append(out, Recommendation{
			JobWithSkills: JobWithSkills{Job: r.job, Skills: s},
			MatchScore:    r.score,
			MatchedSkills: r.matched,
		})
	}
	return RecommendationResult{Jobs: out}, nil
}

func (u *JobRecommendation) internal(step string, userID int64, err error) error {
	if u.logger != nil {
		u.logger.Printf("[Recommendations] %s failed user_id=%d err=%v", step, userID, err)
	}
	return ErrInternal
}
