package matching

// Gap splits a job's required skills into those the candidate has and those
// they lack.
type Gap struct {
	Matched []string `json:"matched_skills"`
	Missing []string `json:"missing_skills"`
}

// ComputeGap keeps the job's own skill order in both lists. Duplicate job
// skills are reported as many times as they appear.
func ComputeGap(jobSkills []string, userSkills map[string]struct{}) Gap {
	g := Gap{
		Matched: make([]string, 0, len(jobSkills)),
		Missing: make([]string, 0, len(jobSkills)),
	}
	for _, s := range jobSkills {
		if _, ok := userSkills[s]; ok {
			g.Matched = append(g.Matched, s)
			continue
		}
		g.Missing = append(g.Missing, s)
	}
	return g
}

// SkillSet builds a lookup set from a list of tokens.
func SkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}
