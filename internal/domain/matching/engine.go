package matching

import "math"

// Match scores how much of a job's required-skill set the caller covers, as a
// whole percentage in [0,100]. Skills the caller has beyond the job's set do
// not affect the score. Duplicate ids in either input count once.
func Match(callerSkills, jobSkills []int64) int {
	required := toSet(jobSkills)
	if len(required) == 0 {
		return 0
	}
	have := toSet(callerSkills)
	if len(have) == 0 {
		return 0
	}

	matched := 0
	for id := range required {
		if _, ok := have[id]; ok {
			matched++
		}
	}

	return roundHalfUp(100 * float64(matched) / float64(len(required)))
}

// MatchedSkills returns the ids of jobSkills the caller has, in jobSkills
// order and without duplicates.
func MatchedSkills(callerSkills, jobSkills []int64) []int64 {
	have := toSet(callerSkills)
	seen := make(map[int64]struct{}, len(jobSkills))
	out := make([]int64, 0, len(jobSkills))
	for _, id := range jobSkills {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := have[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []int64) map[int64]struct{} {
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
